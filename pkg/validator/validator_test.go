package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	URL    string `mapstructure:"url" validate:"required,url"`
	Method string `mapstructure:"method" validate:"omitempty,httpmethod"`
	Out    string `json:"out"`
}

func TestStructReportsConfigKeys(t *testing.T) {
	vi := New()
	require.NoError(t, vi.RegisterValidation("httpmethod", func(fl gvalidator.FieldLevel) bool {
		return fl.Field().String() != "BREW"
	}))
	vi.RegisterTagMessage("required", func(fe gvalidator.FieldError) string {
		return fe.Field() + " is required"
	})

	err := vi.Struct(settings{Method: "BREW"})
	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, FieldError{Field: "url", Message: "url is required", Tag: "required"}, errs[0])
	assert.Equal(t, "method", errs[1].Field)
	assert.Equal(t, "httpmethod", errs[1].Tag)
	assert.Contains(t, err.Error(), "url is required")
}

func TestStructValid(t *testing.T) {
	vi := New()
	require.NoError(t, vi.RegisterValidation("httpmethod", func(gvalidator.FieldLevel) bool { return true }))
	assert.NoError(t, vi.Struct(settings{URL: "https://api.example.com/items"}))
}
