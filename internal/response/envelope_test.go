package response

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartchakula/internal/errors"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "domain error keeps its message",
			err:     apperrors.ErrInvalidCredentials,
			message: "Invalid credentials",
		},
		{
			name:    "wrapped domain error keeps the domain message",
			err:     fmt.Errorf("create category: %w", apperrors.NotFound("Restaurant not found with UID: r-1")),
			message: "create category: Restaurant not found with UID: r-1",
		},
		{
			name:    "store error is prefixed",
			err:     fmt.Errorf("UNIQUE constraint failed: users.email"),
			message: "Failed to register user: UNIQUE constraint failed: users.email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := FromError("Failed to register user", tt.err)
			assert.Equal(t, StatusError, env.Status)
			assert.Equal(t, tt.message, env.Message)
			assert.Nil(t, env.Data)
		})
	}
}

func TestListSerialisesEmptyData(t *testing.T) {
	var items []string
	body, err := json.Marshal(List("Categories fetched successfully", items))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Success","message":"Categories fetched successfully","data":[]}`, string(body))

	body, err = json.Marshal(ListError("Failed to fetch categories", fmt.Errorf("boom")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Error","message":"Failed to fetch categories: boom","data":[]}`, string(body))
}

func TestWithWarnings(t *testing.T) {
	env := WithWarnings("Menu item saved successfully", "item", nil)
	assert.Equal(t, StatusSuccess, env.Status)
	assert.Equal(t, "Menu item saved successfully", env.Message)

	env = WithWarnings("Menu item saved successfully", "item", []string{
		"Description truncated to 255 characters.",
		"Image URL too long, removed.",
	})
	assert.Equal(t, StatusWarning, env.Status)
	assert.Equal(t, "Menu item saved successfully. Description truncated to 255 characters. Image URL too long, removed.", env.Message)
	assert.Equal(t, "item", env.Data)
}
