package models

import (
	"encoding/json"
	"errors"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
)

// ParseStatus maps wire text onto a Status. Empty text means Pending.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	}
	return "", ErrInvalidStatus
}

func (s Status) Toggle() Status {
	if s == StatusConfirmed {
		return StatusPending
	}
	return StatusConfirmed
}

func (s Status) OrDefault() Status {
	if s == "" {
		return StatusPending
	}
	return s
}

const (
	CustomSentinel       = "custom"
	CustomServiceDefault = "Custom service"
)

var PresetServices = []string{
	"Standard Clean",
	"Deep Clean",
	"End of Tenancy",
	"One-off Clean",
	"Weekly Clean",
	"Fortnightly Clean",
	"Garden Work",
	"Window Cleaning",
	"Car Valet",
}

func IsPreset(name string) bool {
	for i := range PresetServices {
		if PresetServices[i] == name {
			return true
		}
	}
	return false
}

// Service is either one of PresetServices or a custom free-text service.
type Service interface {
	Resolve() string
	isService()
}

type Preset string

func (p Preset) Resolve() string { return string(p) }
func (Preset) isService()        {}

type Custom string

// Resolve falls back to CustomServiceDefault when no text was given.
func (c Custom) Resolve() string {
	if c == "" {
		return CustomServiceDefault
	}
	return string(c)
}
func (Custom) isService() {}

// ServiceFromText classifies stored service text.
func ServiceFromText(s string) Service {
	if IsPreset(s) {
		return Preset(s)
	}
	return Custom(s)
}

type Booking struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes,omitempty"`
	Status  Status `json:"status"`
}

// UnmarshalJSON accepts either "_id" or "id" as the identifier key.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Booking(aux.plain)
	if b.ID == "" {
		b.ID = aux.AltID
	}
	b.Status = b.Status.OrDefault()
	return nil
}

func (b Booking) Fields() Fields {
	status := b.Status.OrDefault()
	return Fields{
		Name:    &b.Name,
		Phone:   &b.Phone,
		Service: &b.Service,
		Date:    &b.Date,
		Time:    &b.Time,
		Notes:   &b.Notes,
		Status:  &status,
	}
}

// Fields is a full or partial booking payload. Nil fields are left out of the request.
type Fields struct {
	Name    *string `json:"name,omitempty" validate:"omitnil,min=1,max=120"`
	Phone   *string `json:"phone,omitempty" validate:"omitnil,min=1,max=40"`
	Service *string `json:"service,omitempty" validate:"omitnil,min=1,max=120"`
	Date    *string `json:"date,omitempty" validate:"omitnil,iso_date"`
	Time    *string `json:"time,omitempty" validate:"omitnil,clock_time"`
	Notes   *string `json:"notes,omitempty" validate:"omitnil,max=1000"`
	Status  *Status `json:"status,omitempty" validate:"omitnil,booking_status"`
}

func (f Fields) IsEmpty() bool {
	return f.Name == nil && f.Phone == nil && f.Service == nil && f.Date == nil &&
		f.Time == nil && f.Notes == nil && f.Status == nil
}

// BookingRequest is the create payload accepted by the store.
type BookingRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Phone   string `json:"phone" validate:"required,max=40"`
	Service string `json:"service" validate:"required,max=120"`
	Date    string `json:"date" validate:"required,iso_date"`
	Time    string `json:"time" validate:"required,clock_time"`
	Notes   string `json:"notes" validate:"max=1000"`
	Status  Status `json:"status" validate:"omitempty,booking_status"`
}

// Result is the envelope every mutating store endpoint answers with.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidID       = errors.New("invalid booking id")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrEmptyUpdate     = errors.New("no fields to update")
)
