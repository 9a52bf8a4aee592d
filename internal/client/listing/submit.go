// Package listing submits new car listings for owners. It checks the form
// locally, uploads the image and metadata in one multipart request, and
// turns failures into user-facing messages. It never changes session state.
package listing

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

const (
	MsgTooLarge     = "Image file is too large. Please upload a smaller image."
	MsgBadRequest   = "Invalid car details. Please check all fields and try again."
	MsgUnauthorized = "You need to be logged in to add a car."
	MsgNetwork      = "Network error. Please check your internet connection."
	MsgFailed       = "Failed to add car. Please try again or contact support if the problem persists."
	MsgAdded        = "Car added successfully"
)

var ErrSubmitInProgress = errors.New("submission already in progress")

type Submitter interface {
	AddCar(ctx context.Context, listing models.CarListing, image client.Image) (string, error)
}

type Service struct {
	api      Submitter
	notifier notice.Notifier
	logger   logging.Logger
	now      func() time.Time
	busy     atomic.Bool
}

func New(api Submitter, notifier notice.Notifier, logger logging.Logger) *Service {
	return &Service{
		api:      api,
		notifier: notifier,
		logger:   logger.With("component", "listing"),
		now:      time.Now,
	}
}

// Submit validates and sends one listing. Every outcome is also shown as a
// notice. A second Submit while one is in flight is refused.
func (s *Service) Submit(ctx context.Context, l models.CarListing, img *client.Image) (string, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrSubmitInProgress
	}
	defer s.busy.Store(false)

	if err := Validate(l, img, s.now()); err != nil {
		s.notifier.Notify(ctx, notice.Error(err.Error()))
		return "", err
	}

	msg, err := s.api.AddCar(ctx, l, *img)
	if err != nil {
		s.logger.Warn(ctx, "add car failed", "status", client.StatusCode(err), "error", err)
		s.notifier.Notify(ctx, notice.Error(ErrorMessage(err)))
		return "", err
	}

	if msg == "" {
		msg = MsgAdded
	}
	s.logger.Info(ctx, "car listed", "car", l.Brand+" "+l.Model)
	s.notifier.Notify(ctx, notice.Success(msg))
	return msg, nil
}

// ErrorMessage maps a submission failure to what the user is told. A message
// from the server always wins.
func ErrorMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}

	switch client.StatusCode(err) {
	case http.StatusRequestEntityTooLarge:
		return MsgTooLarge
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	}
	if client.IsTransportFailure(err) {
		return MsgNetwork
	}
	return MsgFailed
}
