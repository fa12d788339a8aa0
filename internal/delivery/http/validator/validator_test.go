package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

func TestValidate_MaxBytesCountsBytes(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "ascii at limit", password: strings.Repeat("a", 72), valid: true},
		{name: "ascii over limit", password: strings.Repeat("a", 73), valid: false},
		{name: "multibyte at limit", password: strings.Repeat("é", 36), valid: true},
		{name: "multibyte over limit under rune count", password: strings.Repeat("é", 40), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&credentials{Email: "a@x.com", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Equal(t, "password: maxbytes", Describe(err))
		})
	}
}

func TestDescribe_UsesJSONNames(t *testing.T) {
	err := New().Validate(&credentials{})

	require.Error(t, err)
	assert.Equal(t, "email: required, password: required", Describe(err))
}

func TestDescribe_NonValidationError(t *testing.T) {
	assert.Empty(t, Describe(assert.AnError))
}
