package client

import (
	"context"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/models"
)

// Client is the marketplace API surface used by the client services.
type Client interface {
	// FetchUser resolves the profile of the credential currently applied to
	// the authenticator (endpoint A).
	FetchUser(ctx context.Context) (*models.User, error)
	// FetchCars lists rentable cars (endpoint B). Never sends credentials.
	FetchCars(ctx context.Context) ([]models.Car, error)
	// AddCar submits a new listing with its image (endpoint C) and returns
	// the server's confirmation message.
	AddCar(ctx context.Context, listing models.CarListing, image Image) (string, error)
	Login(ctx context.Context, email, password string) (credential.Credential, error)
	Register(ctx context.Context, name, email, password string) (credential.Credential, error)
}

// Image is the file part of a listing submission.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}
