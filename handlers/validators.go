package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"visentry-backend/checkin"
)

var registerOnce sync.Once

// RegisterValidators adds the check-in binding tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("idtype", func(fl validator.FieldLevel) bool {
			return checkin.IDType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("placetovisit", func(fl validator.FieldLevel) bool {
			return checkin.PlaceToVisit(fl.Field().String()).Valid()
		})
	})
}
