// Package validator wraps go-playground/validator with the form rules used
// by the dashboard.
package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Custom tags
const (
	TagNumericID     = "numericid"
	TagNotBlank      = "notblank"
	TagChoiceOptions = "choiceoptions"
)

// MinChoiceOptions is the number of distinct options a closed question needs.
const MinChoiceOptions = 2

var messages = map[string]string{
	"required":       "Field is required",
	"email":          "Invalid email format",
	"min":            "Value is too short",
	"max":            "Value is too long",
	"oneof":          "Value is not allowed",
	TagNumericID:     "Must be a numeric identifier",
	TagNotBlank:      "Field must not be blank",
	TagChoiceOptions: fmt.Sprintf("At least %d different non-empty options are required", MinChoiceOptions),
}

// Validator validates structs and single values.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Register installs the custom rules and json field naming on v. It is used
// both for the standalone validator and for gin's binding engine.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		TagNumericID:     numericID,
		TagNotBlank:      notBlank,
		TagChoiceOptions: choiceOptions,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s: %w", tag, err)
		}
	}
	return nil
}

func (v *Validator) Struct(obj interface{}) error {
	return v.v.Struct(obj)
}

// Var validates a single value against tag. field names the value in the
// returned error.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	if err := v.v.Var(value, tag); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("%s: %s", field, Message(verrs[0]))
		}
		return err
	}
	return nil
}

// Message returns the user-visible text for one failed rule.
func Message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Tag()]; ok {
		return msg
	}
	return fe.Error()
}

// Fields flattens validation errors into field → message.
func Fields(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = Message(fe)
	}
	return out
}

// IsNumericID reports whether s addresses a backend row.
func IsNumericID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 63)
	return err == nil
}

func numericID(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return IsNumericID(field.String())
	case reflect.Int, reflect.Int32, reflect.Int64:
		return field.Int() >= 0
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func choiceOptions(fl validator.FieldLevel) bool {
	options, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	return DistinctLabels(options) >= MinChoiceOptions
}

// DistinctLabels counts non-empty labels that differ ignoring case, accents
// and surrounding whitespace.
func DistinctLabels(labels []string) int {
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		key := foldLabel(label)
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}
