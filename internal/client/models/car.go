package models

import "strconv"

type Category string

const (
	CategorySedan     Category = "Sedan"
	CategorySUV       Category = "SUV"
	CategoryHatchback Category = "Hatchback"
	CategoryCoupe     Category = "Coupe"
	CategoryWagon     Category = "Wagon"
	CategoryPickup    Category = "Pickup Truck"
	CategoryVan       Category = "Van"
	CategoryLuxury    Category = "Luxury"
)

var Categories = []Category{
	CategorySedan, CategorySUV, CategoryHatchback, CategoryCoupe,
	CategoryWagon, CategoryPickup, CategoryVan, CategoryLuxury,
}

type Transmission string

const (
	TransmissionAutomatic     Transmission = "Automatic"
	TransmissionManual        Transmission = "Manual"
	TransmissionSemiAutomatic Transmission = "Semi-Automatic"
)

var Transmissions = []Transmission{TransmissionAutomatic, TransmissionManual, TransmissionSemiAutomatic}

type FuelType string

const (
	FuelGas      FuelType = "Gas"
	FuelDiesel   FuelType = "Diesel"
	FuelPetrol   FuelType = "Petrol"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

var FuelTypes = []FuelType{FuelGas, FuelDiesel, FuelPetrol, FuelElectric, FuelHybrid}

// Address is the pickup address of a car.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Landmark string `json:"landmark"`
}

// Car is a rentable vehicle as listed by the public catalog endpoint.
// JSON names follow the server, including its "isAvaliable" spelling.
type Car struct {
	ID              string       `json:"_id"`
	Owner           string       `json:"owner"`
	Brand           string       `json:"brand"`
	Model           string       `json:"model"`
	Image           string       `json:"image"`
	Year            int          `json:"year"`
	Category        Category     `json:"category"`
	SeatingCapacity int          `json:"seating_capacity"`
	FuelType        FuelType     `json:"fuel_type"`
	Transmission    Transmission `json:"transmission"`
	PricePerDay     float64      `json:"pricePerDay"`
	Location        string       `json:"location"`
	Address         Address      `json:"address"`
	Description     string       `json:"description"`
	IsAvailable     bool         `json:"isAvaliable"`
}

// Title is "Brand Model (Year)".
func (c Car) Title() string {
	t := c.Brand + " " + c.Model
	if c.Year > 0 {
		t += " (" + strconv.Itoa(c.Year) + ")"
	}
	return t
}

// CarListing is the metadata part of a new-car submission.
type CarListing struct {
	Brand           string       `json:"brand"`
	Model           string       `json:"model"`
	Year            int          `json:"year"`
	PricePerDay     float64      `json:"pricePerDay"`
	Category        Category     `json:"category"`
	Transmission    Transmission `json:"transmission"`
	FuelType        FuelType     `json:"fuel_type"`
	SeatingCapacity int          `json:"seating_capacity"`
	Location        string       `json:"location"`
	Address         Address      `json:"address"`
	Description     string       `json:"description"`

	// Entered marks the numeric fields the user typed, so a typed 0 is told
	// apart from an empty field. Not sent.
	Entered Entered `json:"-"`
}

// Entered flags the numeric CarListing fields that were filled in.
type Entered struct {
	Year            bool
	PricePerDay     bool
	SeatingCapacity bool
}
