package apperr_test

import (
	"errors"
	"testing"

	"github.com/jfrascon/gerona/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestWrapErrorfMessage(t *testing.T) {
	cause := errors.New("boom")
	err := apperr.WrapErrorf(cause, apperr.ErrNotFound, "no closest segment for %s", "start")

	assert.Equal(t, "no closest segment for start: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, apperr.ErrInternalServerError, apperr.CodeOf(errors.New("plain")))
}

func TestCodeOfWrappedError(t *testing.T) {
	err := apperr.WrapErrorf(nil, apperr.ErrBadInput, "invalid request")
	assert.Equal(t, apperr.ErrBadInput, apperr.CodeOf(err))
}
