package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	roomNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
	ownerRegex    = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)
)

var funcs = map[string]validator.Func{
	"roomname": ValidateRoomName,
	"owner":    ValidateOwner,
}

var aliases = map[string]string{
	"flowkind":   "oneof=manage create reschedule join",
	"flowaction": "oneof=create reschedule delete",
	"notemode":   "oneof=code notes",
	"isodate":    "datetime=2006-01-02",
	"clocktime":  "datetime=15:04",
}

func init() {
	for tag, fn := range funcs {
		MustRegisterGin(tag, fn)
	}
	for tag, alias := range aliases {
		MustRegisterGinAlias(tag, alias)
	}
}

// ValidateRoomName accepts a normalized room name.
func ValidateRoomName(fl validator.FieldLevel) bool {
	return roomNameRegex.MatchString(fl.Field().String())
}

// ValidateOwner accepts a notepad owner key generated by the browser.
func ValidateOwner(fl validator.FieldLevel) bool {
	return ownerRegex.MatchString(fl.Field().String())
}
