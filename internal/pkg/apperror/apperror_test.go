package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, New(InvalidInput, "x").Status())
	assert.Equal(t, http.StatusInternalServerError, New(MalformedUpstreamResponse, "x").Status())
	assert.Equal(t, http.StatusInternalServerError, New(UpstreamUnavailable, "x").Status())
	assert.Equal(t, http.StatusNotFound, New(CollectionNotFound, "x").Status())
	assert.Equal(t, http.StatusInternalServerError, New(Kind("made-up"), "x").Status())
}

func TestWrapAndAs(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("handler: %w", Wrap(UpstreamUnavailable, "Failed", cause).WithRaw("raw"))

	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "connection reset", e.Details)
	assert.Equal(t, "raw", e.Raw)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, UpstreamUnavailable, KindOf(err))
	assert.Equal(t, Internal, KindOf(cause))
}
