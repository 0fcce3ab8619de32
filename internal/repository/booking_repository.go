package repository

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schema string

type DBConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db  DBConn
	now func() time.Time
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *BookingRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func (r *BookingRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	query := `
        SELECT id, name, phone, service, date, time, notes, status
        FROM bookings
        ORDER BY created_at, id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var (
			booking models.Booking
			status  string
		)
		err := rows.Scan(
			&booking.ID, &booking.Name, &booking.Phone, &booking.Service,
			&booking.Date, &booking.Time, &booking.Notes, &status,
		)
		if err != nil {
			return nil, err
		}
		booking.Status = models.Status(status).OrDefault()
		bookings = append(bookings, booking)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = booking.Status.OrDefault()

	query := `
        INSERT INTO bookings (id, name, phone, service, date, time, notes, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.Name, booking.Phone, booking.Service,
		booking.Date, booking.Time, booking.Notes, string(booking.Status), r.now(),
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBooking merges the non-nil fields into the stored row.
func (r *BookingRepository) UpdateBooking(ctx context.Context, id string, fields models.Fields) error {
	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Phone != nil {
		add("phone", *fields.Phone)
	}
	if fields.Service != nil {
		add("service", *fields.Service)
	}
	if fields.Date != nil {
		add("date", *fields.Date)
	}
	if fields.Time != nil {
		add("time", *fields.Time)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if len(sets) == 0 {
		return models.ErrEmptyUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}
