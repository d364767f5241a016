package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, http.StatusOK, "ok", map[string]int{"total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Message)
	assert.Equal(t, map[string]interface{}{"total": float64(3)}, body.Data)
}

func TestServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceUnavailable(rec, "", 0)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "Service unavailable", decode(t, rec).Message)

	rec = httptest.NewRecorder()
	ServiceUnavailable(rec, "loading", 2)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.False(t, decode(t, rec).Success)
}

func TestNotFoundDefaultsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", decode(t, rec).Message)
}
