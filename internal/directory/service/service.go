package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyyur/internal/directory/db"
	"fyyur/internal/forms"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/timefmt"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// Publisher receives listing events once their change is committed.
type Publisher interface {
	PublishListing(ctx context.Context, evt models.ListingEvent) error
}

type NopPublisher struct{}

func (NopPublisher) PublishListing(context.Context, models.ListingEvent) error { return nil }

type Service struct {
	DB        db.Store
	Clock     Clock
	Formatter timefmt.Formatter
	Publisher Publisher
	Logger    *logger.Logger
	// Location is used to read show start times that carry no offset.
	Location *time.Location
}

func NewService(store db.Store, log *logger.Logger) *Service {
	return &Service{
		DB:        store,
		Clock:     SystemClock,
		Formatter: timefmt.New(time.UTC),
		Publisher: NopPublisher{},
		Logger:    log,
		Location:  time.UTC,
	}
}

func (s *Service) now() time.Time {
	return s.Clock.Now()
}

func (s *Service) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *Service) Ping(ctx context.Context) error {
	if err := s.DB.Ping(ctx); err != nil {
		return s.storageErr("ping", err)
	}
	return nil
}

// Home → counts shown on the landing page
func (s *Service) Home(ctx context.Context) (db.Counts, error) {
	counts, err := s.DB.Counts(ctx)
	if err != nil {
		return counts, s.storageErr("count listings", err)
	}
	return counts, nil
}

// NewShowForm is the blank show form with the start time set to now.
func (s *Service) NewShowForm() forms.ShowForm {
	return forms.NewShowForm(s.now(), s.location())
}

// storageErr translates storage errors into the service's error model.
// Errors already in that model pass through unchanged.
func (s *Service) storageErr(op string, err error) error {
	var verr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound), errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, db.ErrDuplicateName), errors.Is(err, ErrNameTaken):
		return ErrNameTaken
	case errors.As(err, &verr):
		return err
	}
	s.Logger.Error("DATABASE", fmt.Sprintf("%s failed: %v", op, err))
	return &StorageError{Op: op, Err: err}
}

// publish reports a committed change. Failures are logged only; the change
// stays committed.
func (s *Service) publish(ctx context.Context, entity string, action models.ListingAction, id int64, name string) {
	s.Logger.LogListing(string(action), entity, id, name)
	if s.Publisher == nil {
		return
	}
	evt := models.NewListingEvent(entity, action, id, name, s.now())
	if err := s.Publisher.PublishListing(ctx, evt); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish %s: %v", evt.Type, err))
	}
}

func validationError(errs forms.Errors) error {
	if !errs.Any() {
		return nil
	}
	return &ValidationError{Fields: errs}
}
