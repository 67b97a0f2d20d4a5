package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "quickcare/internal/errors"
)

var (
	mailboxRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^[\+]?[0-9\s\-\(\)]{10,}$`)
)

// Messages maps "field.tag" or "field" to the text shown for a failed rule.
type Messages map[string]string

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})

	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse("15:04", value)
		return err == nil
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return phoneRegex.MatchString(value)
	})

	v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return IsMailbox(value)
	})

	// decimals are structs, so compare them as floats with the numeric built-ins
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{v: v}
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Check validates s and translates failures into field errors using msgs.
// Only the first failed rule of each field is reported.
func (v *Validator) Check(s interface{}, msgs Messages) *apperrors.ValidationError {
	out := &apperrors.ValidationError{}
	err := v.v.Struct(s)
	if err == nil {
		return out
	}
	ve := v.ValidationErrors(err)
	if ve == nil {
		out.Add("", err.Error())
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		if out.Has(field) {
			continue
		}
		out.Add(field, msgs.lookup(field, fe))
	}
	return out
}

func (m Messages) lookup(field string, fe validator.FieldError) string {
	if msg, ok := m[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fe.Error()
}

// IsMailbox reports whether s looks like an email address.
func IsMailbox(s string) bool {
	return mailboxRegex.MatchString(s)
}
