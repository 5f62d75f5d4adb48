// Package validation validates request DTOs and reports German per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom tags registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// registration only fails for empty tags or nil funcs
		_ = v.RegisterValidation(TagISODate, isoDate)
		_ = v.RegisterValidation(TagRecordID, recordID)
		validate = v
	})
	return validate
}

// Struct validates s. Failures are returned as *apperrors.ValidationError
// keyed by JSON field name.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	result := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		result.Add(fe.Field(), Message(fe))
	}
	return result
}

// Message formats a single field error
func Message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "Ungültiger Wert"
	}
	if fe.Tag() == "max" && fe.Kind() != reflect.String {
		msg = "Darf höchstens %s sein"
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}
