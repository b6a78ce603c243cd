package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fyyur/internal/logger"
)

func TestSendJSONResponseLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{Logger: logger.New(&buf)}
	rec := httptest.NewRecorder()

	h.sendJSONResponse(rec, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "Failed to encode JSON response")
}

func TestSendJSONResponseWritesBody(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{Logger: logger.New(&buf)}
	rec := httptest.NewRecorder()

	h.sendJSONResponse(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Empty(t, buf.String())
}
