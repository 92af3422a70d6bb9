package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	gvalidator "github.com/go-playground/validator/v10"
)

// FieldError represents a single field validation problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Param   string `json:"param,omitempty"`
}

// Errors is returned by Struct when one or more fields fail.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator is the wrapper around go-playground validator with extra features.
type Validator struct {
	v           *gvalidator.Validate
	tagMessages map[string]func(fe gvalidator.FieldError) string
}

// New creates a Validator that reports fields by their mapstructure or json
// tag name, so messages match the config keys users type.
func New() *Validator {
	v := gvalidator.New(gvalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := getTagName(f, "mapstructure"); name != "" {
			return name
		}
		if name := getTagName(f, "json"); name != "" {
			return name
		}
		return f.Name
	})

	return &Validator{
		v:           v,
		tagMessages: make(map[string]func(gvalidator.FieldError) string),
	}
}

// helper to get tag name
func getTagName(f reflect.StructField, tagName string) string {
	tagValue := f.Tag.Get(tagName)
	if tagValue == "-" {
		return ""
	}
	return strings.SplitN(tagValue, ",", 2)[0]
}

// RegisterValidation registers a custom validator (name) to the engine.
func (vi *Validator) RegisterValidation(tag string, fn gvalidator.Func) error {
	return vi.v.RegisterValidation(tag, fn)
}

// RegisterTagMessage overrides the message produced for a failing tag.
func (vi *Validator) RegisterTagMessage(tag string, builder func(gvalidator.FieldError) string) {
	vi.tagMessages[tag] = builder
}

// Struct validates s and returns Errors when any field fails.
func (vi *Validator) Struct(s any) error {
	err := vi.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve gvalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: vi.buildMessageForField(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
		})
	}
	return out
}

// buildMessageForField uses registered tag builders or defaults
func (vi *Validator) buildMessageForField(fe gvalidator.FieldError) string {
	if b, ok := vi.tagMessages[fe.Tag()]; ok && b != nil {
		return b(fe)
	}
	if fe.Param() != "" {
		return fmt.Sprintf("field %s failed on '%s' validation (param=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s failed on '%s' validation", fe.Field(), fe.Tag())
}
