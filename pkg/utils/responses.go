package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with an explicit status code. Status is
// true for any 2xx code. A payload that cannot be encoded turns into a 500.
func ResponseJSON(w http.ResponseWriter, code int, message string, data, errors any) {
	body, err := json.Marshal(Response{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
	if err != nil {
		code = http.StatusInternalServerError
		body, _ = json.Marshal(Response{Message: "Internal server error"})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

// ResponseImage writes a raw PNG body. Tickets are per user so nothing is cached.
func ResponseImage(w http.ResponseWriter, body []byte) {
	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, message, data, nil)
}

// ResponseBadRequest carries per-field messages in errors, keyed by JSON field name.
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, message, nil, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	responseError(w, http.StatusUnauthorized, message)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	responseError(w, http.StatusForbidden, message)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	responseError(w, http.StatusNotFound, message)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	responseError(w, http.StatusConflict, message)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	responseError(w, http.StatusInternalServerError, message)
}

func responseError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = http.StatusText(code)
	}
	ResponseJSON(w, code, message, nil, nil)
}
