// Package validation wraps go-playground/validator with the rules shared by
// the resource usecases and reports failures as apperror validation errors.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"catalog_backend/internal/shared/apperror"
)

// MoneyPattern matches a fixed-point amount with exactly two decimals, e.g. "2.26".
var MoneyPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// Validator validates usecase input structs.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that names fields by their json tag and knows the
// "money" rule and the "count" rule (a non-negative decimal integer).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails on an empty tag or a nil func
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return MoneyPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("count", func(fl validator.FieldLevel) bool {
		_, err := ParseCount(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// ParseCount parses a non-negative decimal integer such as a stock level.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Struct validates s and returns an apperror naming every offending field, or nil.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	if fields := InvalidFields(err); len(fields) > 0 {
		return apperror.Validation(fields...)
	}
	return apperror.Wrap(apperror.KindValidation, "Invalid request", err)
}

// InvalidFields extracts the distinct field names from validator errors, in
// declaration order, lower-cased. It returns nil for any other error.
func InvalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	seen := make(map[string]struct{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return fields
}
