package mapsync_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/mapsync"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := mapsync.Errorf(mapsync.ENOTFOUND, "row %q not found", "abc")

	assert.Equal(t, mapsync.ENOTFOUND, mapsync.ErrorCode(err))
	assert.Equal(t, "row \"abc\" not found", mapsync.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mapsync.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mapsync.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("query rows: %w", mapsync.Errorf(mapsync.EUNAVAILABLE, "rate limited"))

	assert.Equal(t, mapsync.EUNAVAILABLE, mapsync.ErrorCode(err))
	assert.Equal(t, "rate limited", mapsync.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, mapsync.EINTERNAL, mapsync.ErrorCode(err))
	assert.Equal(t, "Internal error.", mapsync.ErrorMessage(err))
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, mapsync.IsTransient(mapsync.Errorf(mapsync.EUNAVAILABLE, "busy")))
	assert.False(t, mapsync.IsTransient(mapsync.Errorf(mapsync.EINVALID, "bad property")))
	assert.False(t, mapsync.IsTransient(errors.New("boom")))
	assert.False(t, mapsync.IsTransient(nil))
}
