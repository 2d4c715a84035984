package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymsync/internal/models"
)

func TestParseAccountRef(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValue string
		wantErr   error
		wantKind  models.AccountRefKind
	}{
		{
			name:      "canonical uuid",
			raw:       "3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e",
			wantKind:  models.AccountRefCanonical,
			wantValue: "3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e",
		},
		{
			name:      "canonical uuid is normalized to lower case",
			raw:       "3F2B8C1E-4D5A-4B6C-8D7E-9F0A1B2C3D4E",
			wantKind:  models.AccountRefCanonical,
			wantValue: "3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e",
		},
		{
			name:      "email handle",
			raw:       "alice@example.com",
			wantKind:  models.AccountRefHandle,
			wantValue: "alice@example.com",
		},
		{
			name:      "plain handle with surrounding spaces",
			raw:       "  default-user ",
			wantKind:  models.AccountRefHandle,
			wantValue: "default-user",
		},
		{
			name:    "empty",
			raw:     "   ",
			wantErr: ErrEmptyAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseAccountRef(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind)
			assert.Equal(t, tt.wantValue, ref.Value)
		})
	}
}

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		name    string
		handle  string
		wantErr bool
		errMsg  string
	}{
		{name: "valid email", handle: "bob@example.org"},
		{name: "valid username", handle: "bob_42"},
		{name: "max length", handle: strings.Repeat("a", MaxHandleLen)},
		{name: "empty", handle: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too long", handle: strings.Repeat("a", MaxHandleLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "inner space", handle: "bob smith", wantErr: true, errMsg: "whitespace"},
		{name: "control char", handle: "bob\x00", wantErr: true, errMsg: "control"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHandle(tt.handle)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
