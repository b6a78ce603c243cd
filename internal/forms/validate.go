package forms

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?(\d{2})?\s?\d{3,4}\s?\d{3,4}\s?\d{3,4}$`)

var validate = newValidator()

var messages = map[string]string{
	"required": "This field is required.",
	"min":      "This field is required.",
	"url":      "Invalid URL.",
	"phone":    "Invalid phone.",
	"genre":    "Invalid genres.",
	"state":    "Invalid state.",
}

// Errors maps a form field name to its messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	if contains(e[field], message) {
		return
	}
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		return contains(Genres, fl.Field().String())
	})
	mustRegister(v, "state", func(fl validator.FieldLevel) bool {
		return contains(States, fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func check(form any) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		// genres[2] -> genres
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		errs.Add(field, msg)
	}
	return errs
}

func value(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func list(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func checkbox(values url.Values, key string) bool {
	switch strings.ToLower(value(values, key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}
