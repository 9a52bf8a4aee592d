package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/listing"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/client/session"
)

// getMultiline and getChoice are indirections used to facilitate testing.
var getMultiline = GetMultiline
var getChoice = GetChoice

const msgOwnersOnly = "Only car owners can list cars."

// AddCar collects a new listing and submits it. It needs a session with the
// owner role. Validation and server failures are reported as notices by the
// listing service.
func (a *App) AddCar(ctx context.Context) error {
	a.state.Navigation.Navigate(addCarRoute)

	return a.requireSession(func(s session.Snapshot) error {
		if !s.IsOwner {
			a.println(msgOwnersOnly)
			return nil
		}

		l, imagePath, err := a.promptListing()
		if err != nil {
			a.notifyInvalid(ctx, err)
			return err
		}

		// an empty path is left to validation, which reports the missing image
		var img *client.Image
		if imagePath != "" {
			if img, err = listing.LoadImage(imagePath); err != nil {
				a.notifyInvalid(ctx, err)
				return err
			}
		}

		if _, err := a.state.Listing.Submit(ctx, l, img); err != nil {
			a.logger.Warn(ctx, "add car failed", "error", err)
			return err
		}

		// the new car should show up in the next listing
		_ = a.state.Catalog.Refresh(ctx)
		return nil
	})
}

func (a *App) promptListing() (models.CarListing, string, error) {
	var l models.CarListing
	text := func(prompt string, dst *string) error {
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	var year, priceText, seating, category, transmission, fuel, imagePath string
	steps := []func() error{
		func() error { return text("Car image path (jpeg, png, avif or webp)", &imagePath) },
		func() error { return text("Brand", &l.Brand) },
		func() error { return text("Model", &l.Model) },
		func() error { return text("Year", &year) },
		func() error { return text("Daily price", &priceText) },
		func() error {
			return a.choose("Category", stringsOf(models.Categories), listing.MsgCategory, &category)
		},
		func() error {
			return a.choose("Transmission", stringsOf(models.Transmissions), listing.MsgTransmission, &transmission)
		},
		func() error {
			return a.choose("Fuel type", stringsOf(models.FuelTypes), listing.MsgFuelType, &fuel)
		},
		func() error { return text("Seating capacity", &seating) },
		func() error { return text("Location", &l.Location) },
		func() error { return text("Street", &l.Address.Street) },
		func() error { return text("City", &l.Address.City) },
		func() error { return text("State", &l.Address.State) },
		func() error { return text("Zip code", &l.Address.ZipCode) },
		func() error { return text("Landmark", &l.Address.Landmark) },
		func() error {
			v, err := getMultiline(a.reader, "Description", a.out)
			l.Description = v
			return err
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return l, "", err
		}
	}

	var err error
	if l.Year, err = parseOptionalInt(year); err != nil {
		return l, "", &listing.ValidationError{Message: listing.MsgYear}
	}
	if l.PricePerDay, err = parseOptionalFloat(priceText); err != nil {
		return l, "", &listing.ValidationError{Message: listing.MsgPrice}
	}
	if l.SeatingCapacity, err = parseOptionalInt(seating); err != nil {
		return l, "", &listing.ValidationError{Message: listing.MsgSeating}
	}
	l.Entered = models.Entered{
		Year:            year != "",
		PricePerDay:     priceText != "",
		SeatingCapacity: seating != "",
	}
	l.Category = models.Category(category)
	l.Transmission = models.Transmission(transmission)
	l.FuelType = models.FuelType(fuel)

	return l, imagePath, nil
}

// choose reads one of options into dst. An answer outside the options is
// reported with invalidMsg.
func (a *App) choose(prompt string, options []string, invalidMsg string, dst *string) error {
	v, err := getChoice(a.reader, prompt, options, a.out)
	if errors.Is(err, ErrInvalidChoice) {
		return &listing.ValidationError{Message: invalidMsg}
	}
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// notifyInvalid reports a local validation failure the same way the listing
// service does. Other errors are only logged.
func (a *App) notifyInvalid(ctx context.Context, err error) {
	var verr *listing.ValidationError
	if errors.As(err, &verr) {
		a.notifier.Notify(ctx, notice.Error(verr.Message))
		return
	}
	a.logger.Warn(ctx, "add car aborted", "error", err)
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
