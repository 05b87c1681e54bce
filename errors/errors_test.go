package errors_test

import (
	"fmt"
	"testing"

	"github.com/speakeasy-api/apireader/errors"
	"github.com/stretchr/testify/assert"
)

const errNotFound = errors.Error("not found")

func TestError_Is_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{
			name:     "same constant",
			err:      errNotFound,
			target:   errNotFound,
			expected: true,
		},
		{
			name:     "wrapped constant",
			err:      errNotFound.Wrap(fmt.Errorf("schema Pet")),
			target:   errNotFound,
			expected: true,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("resolving: %w", errNotFound.Wrapf("schema %s", "Pet")),
			target:   errNotFound,
			expected: true,
		},
		{
			name:     "different constant",
			err:      errors.Error("invalid"),
			target:   errNotFound,
			expected: false,
		},
		{
			name:     "nil target",
			err:      errNotFound,
			target:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_Wrap_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not found -- schema Pet", errNotFound.Wrapf("schema %s", "Pet").Error())
	assert.Equal(t, "not found", errNotFound.Wrap(nil).Error())

	cause := errors.New("boom")
	assert.ErrorIs(t, errNotFound.Wrap(cause), cause)
}
