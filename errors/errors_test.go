package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Invalid, KindOf(E(Invalid, "bad input", nil)))
	assert.Equal(t, NotFound, KindOf(NotFoundErr("account", "Alice_1111")))
	assert.Equal(t, Other, KindOf(stderrors.New("plain")))

	// Kind survives wrapping.
	wrapped := fmt.Errorf("request failed: %w", E(Internal, "store write", nil))
	assert.Equal(t, Internal, KindOf(wrapped))
}

func TestValidationErrs(t *testing.T) {
	ve := ValidationErrs()
	assert.True(t, ve.Empty())
	assert.NoError(t, ve.Err())

	ve.Add("Account Name", "is required")
	ve.Add("Card Number", "is required")
	assert.False(t, ve.Empty())
	assert.EqualError(t, ve.Err(), "Account Name is required, Card Number is required")
}
