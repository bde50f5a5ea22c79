package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Error is one failed field in a 400 response body.
type Error struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

func FormatValidationError(err error) []Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]Error, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, Error{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: e.Error(),
		})
	}
	return out
}
