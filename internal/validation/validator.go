package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared and cached; validator instances are safe for
// concurrent use and cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request DTO against its struct tags and returns a
// client-facing error describing the first failing field.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("invalid payload: %w", err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("field %s failed %s validation", fieldName(fe), fe.Tag())
	}

	return err
}

func fieldName(fe validator.FieldError) string {
	// Namespace is Struct.Field; strip the struct prefix and snake-case
	// the field so messages match the JSON payload.
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
