package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewAppError(ErrTypeConfig, "bad config", nil),
			want: "[CONFIG] bad config",
		},
		{
			name: "with cause",
			err:  NewAppError(ErrTypeStorage, "open workbook", fmt.Errorf("no such file")),
			want: "[STORAGE] open workbook: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError([]string{"Age", "Status"})

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, "missing required columns: Age, Status", err.Message)
	assert.Equal(t, []string{"Age", "Status"}, err.Context["missing_columns"])
	assert.True(t, IsSchemaError(err))
}

func TestNewKeyColumnError(t *testing.T) {
	err := NewKeyColumnError("Transaction#")

	assert.True(t, IsSchemaError(err))
	assert.Contains(t, err.Error(), `key column "Transaction#" not found`)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewParsingError("clean cell", cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &appErr)
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestIsType(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("out of range", nil)))
	assert.False(t, IsValidationError(NewConfigError("nope", nil)))
	assert.False(t, IsSchemaError(errors.New("plain")))
	assert.False(t, IsSchemaError(nil))
}
