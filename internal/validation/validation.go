package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errEngine = errors.New("validator engine is not of type *validator.Validate")

func MustRegisterGin(tag string, fn validator.Func) {
	if err := RegisterGin(tag, fn); err != nil {
		panic(err)
	}
}

func MustRegisterGinAlias(tag string, alias string) {
	if err := RegisterGinAlias(tag, alias); err != nil {
		panic(err)
	}
}

// Register adds every tag of this package to v.
func Register(v *validator.Validate) error {
	for tag, fn := range funcs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	for tag, alias := range aliases {
		v.RegisterAlias(tag, alias)
	}
	return nil
}

func RegisterGin(tag string, fn validator.Func) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errEngine
	}
	return v.RegisterValidation(tag, fn)
}

func RegisterGinAlias(tag string, alias string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errEngine
	}
	v.RegisterAlias(tag, alias)
	return nil
}
