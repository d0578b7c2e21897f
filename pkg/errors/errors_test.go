package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "Car not found", NotFound("Car").Message)
	assert.Equal(t, KindNotFound, NotFound("Car").Kind)
	assert.Equal(t, KindValidation, Validation("bad input").Kind)
	assert.Equal(t, KindAuthorization, Authorization("nope").Kind)
	assert.Equal(t, KindConflict, Conflict("taken").Kind)
	assert.Equal(t, KindConfig, Config("missing row").Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("plain")))

	wrapped := fmt.Errorf("context: %w", NotFound("Service"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("db down")
	err := Wrap(KindInternal, "query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "db down")
}
