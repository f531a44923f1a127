package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)

var registerOnce sync.Once

// Register installs the custom binding tags on gin's validator:
//
//	isodate  YYYY-MM-DD
//	clock    15:04, 3:04 PM or 3 PM
//	phone    digits with an optional leading +
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		must(v.RegisterValidation("isodate", isoDate))
		must(v.RegisterValidation("clock", clock))
		must(v.RegisterValidation("phone", phone))

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func clock(fl validator.FieldLevel) bool {
	_, err := calendar.ParseClock(fl.Field().String())
	return err == nil
}

func phone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"required": "field is required",
	"isodate":  "must be a date in YYYY-MM-DD form",
	"clock":    "must be a time like 15:00 or 3:00 PM",
	"phone":    "must be a phone number",
	"email":    "must be an email address",
	"oneof":    "is not an accepted value",
	"max":      "is too long",
}

// Describe turns a binding error into per-field messages. It returns nil
// for errors that are not validation failures.
func Describe(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		msg, ok := messages[e.Tag()]
		if !ok {
			msg = e.Error()
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
