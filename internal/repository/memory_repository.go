package repository

import (
	"context"
	"sync"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/google/uuid"
)

// MemoryRepository keeps bookings in insertion order. Used when no database is configured.
type MemoryRepository struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) ListBookings(_ context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemoryRepository) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = booking.Status.OrDefault()
	r.bookings = append(r.bookings, *booking)
	return booking, nil
}

func (r *MemoryRepository) UpdateBooking(_ context.Context, id string, fields models.Fields) error {
	if fields.IsEmpty() {
		return models.ErrEmptyUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return models.ErrBookingNotFound
	}

	b := &r.bookings[i]
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Name, fields.Name)
	set(&b.Phone, fields.Phone)
	set(&b.Service, fields.Service)
	set(&b.Date, fields.Date)
	set(&b.Time, fields.Time)
	set(&b.Notes, fields.Notes)
	if fields.Status != nil {
		b.Status = *fields.Status
	}
	return nil
}

func (r *MemoryRepository) DeleteBooking(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return models.ErrBookingNotFound
	}
	r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
	return nil
}

func (r *MemoryRepository) index(id string) int {
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			return i
		}
	}
	return -1
}
