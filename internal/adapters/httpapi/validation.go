package httpapi

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)
	validatorOnce sync.Once
)

// registerValidators adds the "handle" tag and reports json field names in errors.
func registerValidators() {
	validatorOnce.Do(setupValidator)
}

func setupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
}

// bindingMessage turns a binding error into a short client message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "handle":
			return fe.Field() + " must be 3-32 letters, digits or underscores"
		case "uuid":
			return fe.Field() + " must contain valid ids"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "invalid input"
}
