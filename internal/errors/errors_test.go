package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/infrastructure"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestEmptyFilterResultError(t *testing.T) {
	err := EmptyFilterResultError([]int{7, 8})
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "EMPTY_FILTER_RESULT", err.ErrorCode)
	assert.Contains(t, err.Details.(string), "[7 8]")
}

func TestSourceUnavailableError(t *testing.T) {
	err := SourceUnavailableError(fmt.Errorf("file locked"))
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.Equal(t, "SOURCE_UNAVAILABLE", err.ErrorCode)
}

func TestHandleErrorRendersAPIError(t *testing.T) {
	handler := NewErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, ErrEmptyFilterResult)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_FILTER_RESULT")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHandleErrorUnwrapsAPIError(t *testing.T) {
	handler := NewErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrapped := fmt.Errorf("while filtering: %w", ErrEmptyFilterResult)
	handler.HandleError(rec, req, wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleErrorDefaultsToInternal(t *testing.T) {
	handler := NewErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, fmt.Errorf("unexpected"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestHandleErrorLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := NewErrorHandler(logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req = req.WithContext(infrastructure.WithTraceID(req.Context(), "req-7c2a"))
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, ErrEmptyFilterResult)

	assert.Contains(t, buf.String(), `"request_id":"req-7c2a"`)
}

func TestHandleErrorNil(t *testing.T) {
	handler := NewErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
