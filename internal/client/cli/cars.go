package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/models"
)

// Cars prints the catalog. With cached set it prints the list saved by the
// last successful refresh instead of asking the server.
func (a *App) Cars(ctx context.Context, cached bool) error {
	if cached {
		cars, at, err := a.state.Catalog.Cached(ctx)
		if err != nil {
			a.logger.Error(ctx, "error reading cached cars", "error", err)
			return err
		}
		if at.IsZero() {
			a.println("No cached cars yet.")
			return nil
		}
		a.printf("Cached at %s\n", at.Local().Format(time.DateTime))
		a.writeCars(cars)
		return nil
	}

	// failures are reported as notices by the catalog
	if err := a.state.Catalog.Refresh(ctx); err != nil {
		return err
	}
	a.writeCars(a.state.Catalog.Cars())
	return nil
}

func (a *App) writeCars(cars []models.Car) {
	if len(cars) == 0 {
		a.println("No cars available.")
		return
	}
	writeCarTable(a.out, cars, a.config.Currency)
}

func writeCarTable(out io.Writer, cars []models.Car, currency string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAR\tCATEGORY\tSEATS\tFUEL\tTRANSMISSION\tLOCATION\tPRICE/DAY\tAVAILABLE")
	for _, c := range cars {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Title(), dash(string(c.Category)), seats(c.SeatingCapacity),
			dash(string(c.FuelType)), dash(string(c.Transmission)), dash(c.Location),
			price(currency, c.PricePerDay), yesNo(c.IsAvailable))
	}
	_ = w.Flush()
}

func writeCarDetails(out io.Writer, c models.Car, currency string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Car:\t%s\n", c.Title())
	fmt.Fprintf(w, "Category:\t%s\n", dash(string(c.Category)))
	fmt.Fprintf(w, "Seats:\t%s\n", seats(c.SeatingCapacity))
	fmt.Fprintf(w, "Fuel:\t%s\n", dash(string(c.FuelType)))
	fmt.Fprintf(w, "Transmission:\t%s\n", dash(string(c.Transmission)))
	fmt.Fprintf(w, "Location:\t%s\n", dash(c.Location))
	if addr := formatAddress(c.Address); addr != "" {
		fmt.Fprintf(w, "Address:\t%s\n", addr)
	}
	fmt.Fprintf(w, "Price:\t%s / day\n", price(currency, c.PricePerDay))
	fmt.Fprintf(w, "Available:\t%s\n", yesNo(c.IsAvailable))
	if c.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", c.Description)
	}
	_ = w.Flush()
}

func formatAddress(ad models.Address) string {
	var s string
	for _, part := range []string{ad.Street, ad.Landmark, ad.City, ad.State, ad.ZipCode} {
		if part == "" {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += part
	}
	return s
}

func price(currency string, v float64) string {
	return currency + strconv.FormatFloat(v, 'f', -1, 64)
}

func seats(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
