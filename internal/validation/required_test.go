package validation

import (
	"errors"
	"testing"

	"vibematch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	t.Parallel()

	requirements := []Requirement{
		{Field: "gender", Label: "Gender"},
		{Field: "dob", Label: "Date of Birth"},
		{Field: "bio", Label: "Bio"},
	}

	tests := []struct {
		name    string
		payload map[string]string
		wantMsg string
	}{
		{
			name:    "all present",
			payload: map[string]string{"gender": "MALE", "dob": "1990-01-01", "bio": "hi"},
		},
		{
			name:    "first missing wins",
			payload: map[string]string{"dob": "1990-01-01", "bio": "hi"},
			wantMsg: "Gender is required",
		},
		{
			name:    "whitespace counts as missing",
			payload: map[string]string{"gender": "MALE", "dob": "   ", "bio": "hi"},
			wantMsg: "Date of Birth is required",
		},
		{
			name:    "reports declaration order not map order",
			payload: map[string]string{"bio": "hi"},
			wantMsg: "Gender is required",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := RequireFields(tc.payload, requirements...)
			if tc.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var apiErr *models.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, models.KindBadRequest, apiErr.Kind)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
		})
	}
}
