package saucier_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/saucier"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := saucier.Errorf(saucier.ENOTFOUND, "recipe %q not found", "test")

	assert.Equal(t, saucier.ENOTFOUND, saucier.ErrorCode(err))
	assert.Equal(t, "recipe \"test\" not found", saucier.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, saucier.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, saucier.EINTERNAL, saucier.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, saucier.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", saucier.ErrorMessage(errors.New("boom")))
}
