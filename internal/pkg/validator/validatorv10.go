package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/upasthit/upasthit-api/internal/pkg/strcase"
)

var (
	// Based on NIST 800-63B guidelines; the upper bound matches bcrypt input limits.
	rePassword = regexp.MustCompile(`^.{8,72}$`)

	// Roll numbers are issued as uppercase alphanumerics, e.g. 22BCS1042.
	reRollNo = regexp.MustCompile(`^[0-9]{2}[A-Z]{2,4}[0-9]{3,6}$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and
// custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	v10CustomValidation(validate, enTrans)

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

// patternRules lists the custom tags, each backed by a regular expression and
// a translated message.
var patternRules = []struct {
	tag     string
	pattern *regexp.Regexp
	message string
}{
	{"password", rePassword, "{0} must be 8-72 characters"},
	{"rollno", reRollNo, "{0} must be a valid roll number"},
}

//nolint:errcheck,gosec // registration only fails on nil funcs
func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) {
	for _, rule := range patternRules {
		pattern := rule.pattern
		message := rule.message

		validate.RegisterValidation(rule.tag, func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && pattern.MatchString(s)
		})

		validate.RegisterTranslation(rule.tag, enTrans,
			func(tr ut.Translator) error {
				return tr.Add(rule.tag, message, false)
			},
			func(tr ut.Translator, fe validator.FieldError) string {
				t, _ := tr.T(fe.Tag(), fe.Field())
				return t
			},
		)
	}
}
