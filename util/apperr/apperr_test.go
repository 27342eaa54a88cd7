package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"shareit/util/apperr"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("user %d", 1)))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(apperr.Validation("bad window")))
	assert.Equal(t, apperr.KindUnknownEnum, apperr.KindOf(apperr.UnknownEnum("Unknown state: %s", "x")))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflict("email taken")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("listing bookings: %w", apperr.NotFound("user with id %d not found", 7))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsValidation(err))
}

func TestMessageFormatting(t *testing.T) {
	err := apperr.NotFound("item with id %d not found", 42)
	assert.Equal(t, "item with id 42 not found", err.Error())
}
