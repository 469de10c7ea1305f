package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: game not found: abc", NewNotFoundError("game", "abc").Error())

	cause := stderrors.New("disk full")
	err := NewInternalError(cause)
	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("start game: %w", NewValidationError("answer", "required"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "validation failed for answer: required", appErr.Message)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewBadRequestError("bad"), ErrCodeBadRequest))
	assert.False(t, IsCode(NewBadRequestError("bad"), ErrCodeNotFound))
	assert.False(t, IsCode(nil, ErrCodeNotFound))
}
