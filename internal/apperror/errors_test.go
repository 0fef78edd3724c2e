package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	err := NotFoundf("notebook %s", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "notebook abc")

	assert.ErrorIs(t, Validationf("bad input"), ErrValidation)
	assert.ErrorIs(t, Preconditionf("wrong state"), ErrPrecondition)
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store(cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Store(nil))
}
