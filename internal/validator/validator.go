package validator

import (
	"time"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("iso_date", validateISODate)
	v.RegisterValidation("clock_time", validateClockTime)
	v.RegisterValidation("booking_status", validateStatus)
	v.RegisterValidation("valid_uuid", validateUUID)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidateID checks a store-assigned booking id.
func (cv *CustomValidator) ValidateID(id string) error {
	return cv.validator.Var(id, "required,valid_uuid")
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// validateStatus is strict: an explicit empty status is not Pending.
func validateStatus(fl validator.FieldLevel) bool {
	switch models.Status(fl.Field().String()) {
	case models.StatusPending, models.StatusConfirmed:
		return true
	}
	return false
}

func validateUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}
