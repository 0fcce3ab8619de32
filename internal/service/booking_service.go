package service

import (
	"context"
	"errors"
	"fmt"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/internal/ports"
	"github.com/chrisdamba/schedulo/internal/validator"
)

// ValidationError carries the message of a rejected payload.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid booking: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

type bookingService struct {
	repo      ports.BookingRepository
	validator *validator.CustomValidator
}

func NewBookingService(repo ports.BookingRepository) *bookingService {
	return &bookingService{
		repo:      repo,
		validator: validator.NewCustomValidator(),
	}
}

func (s *bookingService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error) {
	if err := s.validator.Validate(request); err != nil {
		return nil, &ValidationError{Err: err}
	}

	booking := &models.Booking{
		Name:    request.Name,
		Phone:   request.Phone,
		Service: request.Service,
		Date:    request.Date,
		Time:    request.Time,
		Notes:   request.Notes,
		Status:  request.Status.OrDefault(),
	}

	saved, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return saved, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, fields models.Fields) error {
	if err := s.validator.ValidateID(id); err != nil {
		return models.ErrInvalidID
	}
	if fields.IsEmpty() {
		return &ValidationError{Err: models.ErrEmptyUpdate}
	}
	if err := s.validator.Validate(fields); err != nil {
		return &ValidationError{Err: err}
	}

	if err := s.repo.UpdateBooking(ctx, id, fields); err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("error updating booking: %w", err)
	}
	return nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.validator.ValidateID(id); err != nil {
		return models.ErrInvalidID
	}

	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("error deleting booking: %w", err)
	}
	return nil
}
