package response_test

import (
	"errors"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its message",
			err:      failure.Conflict("Room 101 is not available"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Room 101 is not available"}`,
		},
		{
			name:     "internal error is hidden",
			err:      errors.New("database disk image is malformed"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Something went wrong, please try again"}`,
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

func TestWithJSONAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"total": 8})
	assert.JSONEq(t, `{"data":{"total":8}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithUnhealthy(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"SERVER UNHEALTHY"}`, rec.Body.String())
}
