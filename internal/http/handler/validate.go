package handler

import (
	"errors"
	"strings"

	"invitation/internal/guestbook"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a struct validator that also knows the "drink" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("drink", func(fl validator.FieldLevel) bool {
		_, err := guestbook.ParseDrink(fl.Field().String())
		return err == nil
	})
	return v
}

// describe flattens validation errors into one line for the response body.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, strings.ToLower(e.Field())+": "+e.Tag())
	}
	return "invalid input: " + strings.Join(parts, ", ")
}
