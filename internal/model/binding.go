package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Domain formats are registered as binding tags so malformed input is
// rejected at the transport edge; services re-check them for callers
// that bypass HTTP binding.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("phone_ru", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("insurance", func(fl validator.FieldLevel) bool {
		return insurancePattern.MatchString(fl.Field().String())
	})
}
