package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/detailerhq/booking-api/pkg/timeutil"
)

// RegisterBindingValidators installs the custom binding tags used by request
// models on gin's validator engine. Call once at startup.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return err
	}
	return v.RegisterValidation("clocktime", isClockTime)
}

// isodate accepts YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS.
func isISODate(fl validator.FieldLevel) bool {
	return timeutil.IsISODate(fl.Field().String())
}

// clocktime accepts HH:MM:SS.
func isClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(timeutil.ClockFormat, fl.Field().String())
	return err == nil
}
