package ports

import (
	"context"

	models "github.com/chrisdamba/schedulo/internal"
)

// BookingStore is the remote booking collection as seen by the client.
type BookingStore interface {
	List(ctx context.Context) ([]models.Booking, error)
	Create(ctx context.Context, fields models.Fields) (*models.Booking, error)
	Update(ctx context.Context, id string, fields models.Fields) error
	Delete(ctx context.Context, id string) error
}

// Confirmer is the yes/no gate shown before destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type BookingRepository interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, fields models.Fields) error
	DeleteBooking(ctx context.Context, id string) error
}

type BookingService interface {
	AllBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, fields models.Fields) error
	DeleteBooking(ctx context.Context, id string) error
}
