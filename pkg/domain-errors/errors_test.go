package domainerrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("plain error defaults to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})

	t.Run("domain error keeps its code", func(t *testing.T) {
		err := New(CodeConflict, "taken")
		assert.Equal(t, CodeConflict, CodeOf(err))
	})

	t.Run("wrapped domain error is found through the chain", func(t *testing.T) {
		inner := New(CodeNotFound, "missing")
		outer := errors.Join(errors.New("context"), inner)
		assert.Equal(t, CodeNotFound, CodeOf(outer))
	})
}

func TestIs(t *testing.T) {
	err := Wrap(errors.New("pq: duplicate key"), CodeConflict, "slug taken")
	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(errors.New("boom"), CodeConflict))
}

func TestWrapHidesCauseFromMessage(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeInternal, "Sunucu hatası")
	assert.Equal(t, "Sunucu hatası", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
