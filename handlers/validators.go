package handlers

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"eventkompass/models"
)

// RegisterValidators adds the "category" and "lang" tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := models.LookupCategory(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("lang", func(fl validator.FieldLevel) bool {
		return models.Language(fl.Field().String()).Valid()
	})
}
