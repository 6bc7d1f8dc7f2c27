package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"validation", Validation("content", "must not be empty"), KindValidation},
		{"storage", Storage("add memo", errors.New("disk full")), KindStorage},
		{"cancelled", Cancelled("select memo", context.Canceled), KindCancelled},
		{"unknown command", UnknownCommand("-l -r"), KindUnknownCommand},
		{"wrapped", fmt.Errorf("outer: %w", Cancelled("read input", nil)), KindCancelled},
		{"storage over validation", Storage("get all memos", Validation("content", "must not be empty")), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.False(t, Is(nil, KindUnknown))
	assert.True(t, Is(Validation("id", "must not be negative"), KindValidation))
	assert.False(t, Is(Validation("id", "must not be negative"), KindStorage))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "content: must not be empty", Validation("content", "must not be empty").Error())
	assert.Equal(t, "add memo: disk full", Storage("add memo", errors.New("disk full")).Error())
	assert.Equal(t, "select memo: canceled by user", Cancelled("select memo", nil).Error())
	assert.Equal(t, "-l -r", UnknownCommand("-l -r").Error())
}

func TestStorageDoesNotDoubleWrap(t *testing.T) {
	inner := Storage("add memo", errors.New("disk full"))
	assert.Same(t, inner, Storage("add memo", inner))
	assert.NotSame(t, inner, Storage("get all memos", inner))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("add memo", cause)
	assert.ErrorIs(t, err, cause)
}

func TestFieldOf(t *testing.T) {
	assert.Equal(t, "created_at", FieldOf(Storage("get all memos", Validation("created_at", "invalid"))))
	assert.Equal(t, "", FieldOf(Storage("add memo", errors.New("disk full"))))
	assert.Equal(t, "", FieldOf(nil))
}
