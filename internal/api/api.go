// Package api holds the JSON payloads exchanged between the client and the server.
package api

// Paths relative to the API base URL
const (
	PathLogin      = "login"
	PathSignUp     = "sign-in"
	PathSaveResult = "hue-are-you/save-result"
	PathGetData    = "hue-are-you/get-data"
)

// Machine-readable error codes
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidation         = "validation_failed"
	CodeDuplicateAccount   = "duplicate_account"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeSessionExpired     = "session_expired"
	CodeForbidden          = "forbidden"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionPayload is returned by login and sign-up and sent back by get-data
type SessionPayload struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
	Role   string `json:"role,omitempty"`
}

type SaveResultRequest struct {
	Name   string            `json:"name"`
	Choice map[string]string `json:"choice"`
}

type GetDataRequest struct {
	Session   SessionPayload `json:"session"`
	DataRange []int          `json:"data-range"`
}

type RecordPayload struct {
	Name   string            `json:"name"`
	Choice map[string]string `json:"choice"`
}

type GetDataResponse struct {
	Records []RecordPayload `json:"records"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}
