package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hueareyou/internal/api"
	"hueareyou/internal/service"
	"hueareyou/internal/validation"
)

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", recorder.Body.String(), err)
	}
	return body
}

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, zap.NewNop(), 418, "teapot", "I am a teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	body := decodeError(t, recorder)
	if body.Message != "I am a teapot" || body.Code != "teapot" || body.Error != http.StatusText(418) {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRespondWithErrorLogsServerFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	respondWithError(httptest.NewRecorder(), logger, 500, api.CodeInternal, "internal server error", "", errors.New("boom"))
	respondWithError(httptest.NewRecorder(), logger, 401, api.CodeUnauthorized, "authentication required", "", errors.New("bad token"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel || entries[0].Message != "internal server error" {
		t.Errorf("unexpected 5xx entry %+v", entries[0])
	}
	if entries[0].ContextMap()["error"] != "boom" {
		t.Errorf("expected log to include error, got %v", entries[0].ContextMap())
	}
	if entries[1].Level != zap.DebugLevel {
		t.Errorf("4xx should log at debug, got %v", entries[1].Level)
	}
}

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{name: "validation", err: validation.ValidationError{Field: "email", Message: "invalid email format"}, status: 400, code: api.CodeValidation, field: "email"},
		{name: "name taken", err: service.ErrNameTaken, status: 409, code: api.CodeDuplicateAccount, field: "name"},
		{name: "email taken", err: service.ErrEmailTaken, status: 409, code: api.CodeDuplicateAccount, field: "email"},
		{name: "bad credentials", err: service.ErrInvalidCredentials, status: 401, code: api.CodeInvalidCredentials},
		{name: "expired", err: service.ErrSessionExpired, status: 401, code: api.CodeSessionExpired},
		{name: "unknown session", err: service.ErrSessionNotFound, status: 401, code: api.CodeUnauthorized},
		{name: "forbidden", err: service.ErrForbidden, status: 403, code: api.CodeForbidden},
		{name: "wrapped internal", err: fmt.Errorf("query: %w", errors.New("disk full")), status: 500, code: api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithServiceError(recorder, zap.NewNop(), tt.err)

			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
			body := decodeError(t, recorder)
			if body.Code != tt.code || body.Field != tt.field {
				t.Errorf("body = %+v, want code %q field %q", body, tt.code, tt.field)
			}
			if body.Message == "" {
				t.Error("message should never be empty")
			}
		})
	}
}
