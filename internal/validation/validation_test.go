package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterEnum(Enum{Tag: "unit", Values: func() []string { return []string{"kg", "lb"} }})
}

type input struct {
	Name   string   `json:"name" validate:"required,max=5"`
	Unit   string   `json:"unit" validate:"unit"`
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
	Hidden int      `json:"-" validate:"gte=1"`
}

func TestStruct(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name         string
		input        input
		wantMessages []string
	}{
		{
			name:  "valid",
			input: input{Name: "Squat", Unit: "kg", Hidden: 1},
		},
		{
			name:  "empty enum passes",
			input: input{Name: "Squat", Hidden: 1},
		},
		{
			name:  "every failure is reported with json names",
			input: input{Name: "", Unit: "stone", Weight: &negative},
			wantMessages: []string{
				"name is a required field",
				"unit must be one of [kg lb]",
				"weight must be 0 or greater",
				"Hidden must be 1 or greater",
			},
		},
		{
			name:         "max length",
			input:        input{Name: "Deadlift", Hidden: 1},
			wantMessages: []string{"name must be a maximum of 5 characters in length"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantMessages == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *Error
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantMessages, vErr.Messages)
			assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestError(t *testing.T) {
	err := &Error{Messages: []string{"a is required", "b is too long"}}
	assert.Equal(t, "invalid input: a is required; b is too long", err.Error())
	assert.False(t, IsValidationError(errors.New("plain")))
}
