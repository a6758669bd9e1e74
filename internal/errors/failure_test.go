package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/paveg/plotframe/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestFailureOf(t *testing.T) {
	user := errors.FailureOf(errors.NewUndefinedVariableError("TransformOriginals", "price"))
	assert.False(t, user.Internal)
	assert.Equal(t, "TransformOriginals failed on variable 'price': undefined variable", user.Message)

	internal := errors.FailureOf(stderrors.New("boom"))
	assert.True(t, internal.Internal)
	assert.Equal(t, "Internal error: boom", internal.Message)
}

func TestFromPanic(t *testing.T) {
	err := errors.FromPanic("Process", "index out of range")
	assert.Equal(t, errors.KindInternal, err.Kind)
	assert.EqualError(t, err.Cause, "panic: index out of range")
	assert.False(t, errors.IsUserError(err))

	cause := stderrors.New("nil map")
	assert.ErrorIs(t, errors.FromPanic("Process", cause), cause)
}
