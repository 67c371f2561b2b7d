// Package forms binds and validates the HTML forms of the blog.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the Errors key for problems not tied to one input.
const NonFieldErrors = "__all__"

// Errors maps a form field name to its message.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e Errors) Any() bool { return len(e) > 0 }

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

// ReservedUsernames collide with static routes under /profile/.
var ReservedUsernames = map[string]bool{
	"edit": true,
}

func validUsername(name string) bool {
	return usernamePattern.MatchString(name) && !ReservedUsernames[strings.ToLower(name)]
}

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// Report fields by their form name so errors line up with inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return validUsername(fl.Field().String())
	})
}

// FromBindError converts a gin binding error into per-field messages.
func FromBindError(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldErrors, "The submitted form could not be read.")
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "min":
		return "Ensure this value has at least " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username: letters, digits and @/./+/-/_ only, not a reserved name."
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return "Enter a valid value."
	}
}

// Merge copies messages from other for fields that have none yet.
func (e Errors) Merge(other Errors) {
	for field, msg := range other {
		e.Add(field, msg)
	}
}
