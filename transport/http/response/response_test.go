package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"reservation/shared/failure"
	"reservation/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure",
			err:      failure.SlotConflict,
			wantCode: http.StatusConflict,
			wantBody: `{"error":"interval unavailable"}`,
		},
		{
			name:     "wrapped failure keeps its message",
			err:      fmt.Errorf("failed to acquire room lock: %w", failure.LockTimeout),
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"error":"slot contention, please retry"}`,
		},
		{
			name:     "plain error is hidden",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "b1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"b1"}}`, rec.Body.String())
}
