package listing

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

const MaxImageBytes = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/avif", "image/webp"}

const (
	MsgImageRequired    = "Please upload a car image before submitting"
	MsgBrandModel       = "Please enter the car brand and model"
	MsgCategory         = "Please select a car category"
	MsgTransmission     = "Please select transmission type"
	MsgFuelType         = "Please select fuel type"
	MsgLocation         = "Please select both state and city for pickup location"
	MsgYear             = "Please enter a valid model year"
	MsgPrice            = "Daily price must be greater than 0"
	MsgSeating          = "Seating capacity must be between 1 and 50"
	MsgImageType        = "Please upload a valid image file (JPEG, PNG, AVIF or WebP)"
	MsgImageTooLarge    = "Image file size must be less than 5MB"
	MsgImageUnreadable  = "Could not read the selected image file"
	MsgSubmitInProgress = "A car is already being submitted"
)

// ValidationError is a local check failure; nothing was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Validate runs the form checks in the order the user sees them. Year, price
// and seating are checked when entered or non-zero, so a typed 0 is refused.
func Validate(l models.CarListing, img *client.Image, now time.Time) error {
	if img == nil || len(img.Data) == 0 {
		return invalid(MsgImageRequired)
	}
	if strings.TrimSpace(l.Brand) == "" || strings.TrimSpace(l.Model) == "" {
		return invalid(MsgBrandModel)
	}
	if !slices.Contains(models.Categories, l.Category) {
		return invalid(MsgCategory)
	}
	if !slices.Contains(models.Transmissions, l.Transmission) {
		return invalid(MsgTransmission)
	}
	if !slices.Contains(models.FuelTypes, l.FuelType) {
		return invalid(MsgFuelType)
	}
	if strings.TrimSpace(l.Location) == "" || strings.TrimSpace(l.Address.State) == "" {
		return invalid(MsgLocation)
	}
	if (l.Entered.Year || l.Year != 0) && (l.Year < 1900 || l.Year > now.Year()+1) {
		return invalid(MsgYear)
	}
	if (l.Entered.PricePerDay || l.PricePerDay != 0) && !validPrice(l.PricePerDay) {
		return invalid(MsgPrice)
	}
	if (l.Entered.SeatingCapacity || l.SeatingCapacity != 0) && (l.SeatingCapacity < 1 || l.SeatingCapacity > 50) {
		return invalid(MsgSeating)
	}
	return CheckImage(img)
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p > 0
}

// CheckImage checks size and detected content type, filling in
// img.ContentType from the content.
func CheckImage(img *client.Image) error {
	if len(img.Data) > MaxImageBytes {
		return invalid(MsgImageTooLarge)
	}
	mt := mimetype.Detect(img.Data)
	for _, allowed := range allowedImageTypes {
		if mt.Is(allowed) {
			img.ContentType = allowed
			return nil
		}
	}
	return invalid(MsgImageType)
}

// LoadImage reads an image file from disk, refusing oversized files before
// reading them.
func LoadImage(path string) (*client.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("%s: %v", MsgImageUnreadable, err)}
	}
	if fi.IsDir() {
		return nil, invalid(MsgImageUnreadable)
	}
	if fi.Size() > MaxImageBytes {
		return nil, invalid(MsgImageTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("%s: %v", MsgImageUnreadable, err)}
	}
	return &client.Image{FileName: filepath.Base(path), Data: data}, nil
}
