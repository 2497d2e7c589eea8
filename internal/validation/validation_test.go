package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid simple", "laozi", false},
		{"Valid with digits", "user42", false},
		{"Valid with interior underscore", "lao_zi", false},
		{"Valid with interior hyphen", "lao-zi", false},
		{"Valid at max length", strings.Repeat("a", 30), false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 31), true},
		{"Empty", "", true},
		{"Spaces", "lao zi", true},
		{"Special characters", "lao!zi", true},
		{"Leading underscore", "_laozi", true},
		{"Trailing hyphen", "laozi-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid minimal", "secret", false},
		{"Valid long", strings.Repeat("x", 128), false},
		{"Too short", "pass", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBio(t *testing.T) {
	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio("Seeker of stillness."))
	assert.NoError(t, ValidateBio(strings.Repeat("b", 500)))
	assert.Error(t, ValidateBio(strings.Repeat("b", 501)))
}
