// Package validation validates input structs and reports translated messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Error is returned when a struct fails validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "invalid input: " + strings.Join(e.Messages, "; ")
}

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
	initErr    error
)

// Enum is a validation tag that accepts only the given string values.
// Empty strings pass so it composes with omitempty and required.
type Enum struct {
	Tag    string
	Values func() []string
}

var enums []Enum

// RegisterEnum adds an enum tag. It must be called from package init functions.
func RegisterEnum(e Enum) {
	enums = append(enums, e)
}

func setup() {
	validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		initErr = fmt.Errorf("failed to register default translations: %w", err)
		return
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	for _, tag := range enums {
		values := tag.Values()
		allowed := make(map[string]bool, len(values))
		for _, v := range values {
			allowed[v] = true
		}
		if err := validate.RegisterValidation(tag.Tag, func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() != reflect.String {
				return false
			}
			return field.String() == "" || allowed[field.String()]
		}); err != nil {
			initErr = fmt.Errorf("failed to register %s validation: %w", tag.Tag, err)
			return
		}
		message := fmt.Sprintf("{0} must be one of [%s]", strings.Join(values, " "))
		if err := validate.RegisterTranslation(tag.Tag, translator, func(ut ut.Translator) error {
			return ut.Add(tag.Tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag.Tag, fe.Field())
			return t
		}); err != nil {
			initErr = fmt.Errorf("failed to register %s translation: %w", tag.Tag, err)
			return
		}
	}
}

// Struct validates v using its `validate` tags.
func Struct(v interface{}) error {
	once.Do(setup)
	if initErr != nil {
		return initErr
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(translator))
	}
	return &Error{Messages: messages}
}

// IsValidationError reports whether err came from a failed validation.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}
