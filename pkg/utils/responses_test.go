package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseJSON_StatusFollowsCode(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		code   int
		status bool
		msg    string
	}{
		{"success", func(w http.ResponseWriter) { ResponseSuccess(w, "OK", map[string]int{"n": 1}) }, http.StatusOK, true, "OK"},
		{"created", func(w http.ResponseWriter) { ResponseCreated(w, "Created", nil) }, http.StatusCreated, true, "Created"},
		{"bad request", func(w http.ResponseWriter) { ResponseBadRequest(w, "Invalid", map[string]string{"email": "Required"}) }, http.StatusBadRequest, false, "Invalid"},
		{"conflict", func(w http.ResponseWriter) { ResponseConflict(w, "Taken") }, http.StatusConflict, false, "Taken"},
		{"empty message falls back", func(w http.ResponseWriter) { ResponseNotFound(w, "") }, http.StatusNotFound, false, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestResponseJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseCreated(rec, "Created", map[string]float64{"price": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestResponseImage(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseImage(rec, []byte("\x89PNG"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
}
