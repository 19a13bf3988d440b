// Package validator_test contains tests for the validator package.
package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KartikLabhshetwar/briefli/internal/core/validator"
)

func TestValidateProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "Acme", wantErr: nil},
		{name: "exactly 100 characters", input: strings.Repeat("a", 100), wantErr: nil},
		{name: "101 characters", input: strings.Repeat("a", 101), wantErr: validator.ErrProjectNameTooLong},
		{name: "empty", input: "", wantErr: validator.ErrEmptyProjectName},
		{name: "whitespace only", input: "   \t", wantErr: validator.ErrEmptyProjectName},
		{name: "multibyte counted as characters", input: strings.Repeat("é", 100), wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.ValidateProjectName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ValidateDescription("A widget."))
	assert.NoError(t, validator.ValidateDescription(strings.Repeat("d", 500)))
	assert.ErrorIs(t, validator.ValidateDescription(strings.Repeat("d", 501)), validator.ErrDescriptionTooLong)
	assert.ErrorIs(t, validator.ValidateDescription(""), validator.ErrEmptyDescription)
	assert.ErrorIs(t, validator.ValidateDescription("  "), validator.ErrEmptyDescription)
}

func TestValidateLicense(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ValidateLicense("MIT"))
	assert.NoError(t, validator.ValidateLicense("WTFPL"), "unknown licenses are advisory only")
	assert.ErrorIs(t, validator.ValidateLicense(" "), validator.ErrEmptyLicense)

	assert.True(t, validator.IsKnownLicense("Apache-2.0"))
	assert.True(t, validator.IsKnownLicense(" MIT "))
	assert.False(t, validator.IsKnownLicense("WTFPL"))
}

func TestValidateAPIKey(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ValidateAPIKey("gsk_0123456789abcdefghij"))
	assert.ErrorIs(t, validator.ValidateAPIKey(""), validator.ErrEmptyAPIKey)
	assert.ErrorIs(t, validator.ValidateAPIKey("short-key"), validator.ErrAPIKeyTooShort)
	assert.ErrorIs(t, validator.ValidateAPIKey("   padded   "), validator.ErrAPIKeyTooShort)
}
