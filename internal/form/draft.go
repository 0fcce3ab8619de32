package form

import (
	models "github.com/chrisdamba/schedulo/internal"
)

// Draft is the editable working copy of a booking.
//
// ServiceChoice holds the selector value: a preset service name, models.CustomSentinel,
// or empty when nothing has been picked. CustomService is only read when the selector is
// on models.CustomSentinel.
type Draft struct {
	Name          string
	Phone         string
	ServiceChoice string
	CustomService string
	Date          string
	Time          string
	Notes         string
	Status        models.Status

	// EditingID is nil while creating a new booking.
	EditingID *string
}

func NewDraft() Draft {
	return Draft{Status: models.StatusPending}
}

// DraftFromBooking loads a persisted booking for editing.
func DraftFromBooking(b models.Booking) Draft {
	id := b.ID
	d := Draft{
		Name:      b.Name,
		Phone:     b.Phone,
		Date:      b.Date,
		Time:      b.Time,
		Notes:     b.Notes,
		Status:    b.Status.OrDefault(),
		EditingID: &id,
	}
	switch svc := models.ServiceFromText(b.Service).(type) {
	case models.Preset:
		d.ServiceChoice = string(svc)
	case models.Custom:
		d.ServiceChoice = models.CustomSentinel
		d.CustomService = string(svc)
	}
	return d
}

// Service returns the selector as a closed service value. ok is false when
// nothing is selected or the choice is neither a preset nor the custom sentinel.
func (d Draft) Service() (svc models.Service, ok bool) {
	switch {
	case d.ServiceChoice == models.CustomSentinel:
		return models.Custom(d.CustomService), true
	case models.IsPreset(d.ServiceChoice):
		return models.Preset(d.ServiceChoice), true
	}
	return nil, false
}

func (d Draft) Editing() bool {
	return d.EditingID != nil
}

// Fields resolves the custom service and returns the submit payload.
func (d Draft) Fields() models.Fields {
	var service string
	if svc, ok := d.Service(); ok {
		service = svc.Resolve()
	}
	status := d.Status.OrDefault()
	return models.Fields{
		Name:    &d.Name,
		Phone:   &d.Phone,
		Service: &service,
		Date:    &d.Date,
		Time:    &d.Time,
		Notes:   &d.Notes,
		Status:  &status,
	}
}

func (d Draft) clone() Draft {
	if d.EditingID != nil {
		id := *d.EditingID
		d.EditingID = &id
	}
	return d
}
