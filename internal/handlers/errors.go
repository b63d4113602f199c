package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hueareyou/internal/api"
	"hueareyou/internal/service"
	"hueareyou/internal/validation"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// respondWithError writes a JSON error body. err is logged at error level for 5xx responses
// and at debug level otherwise, so client mistakes never show up as server failures.
func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, code, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		if status >= http.StatusInternalServerError {
			logger.Error(logMsg, zap.Error(err))
		} else {
			logger.Debug(logMsg, zap.Int("status", status), zap.Error(err))
		}
	}

	writeJSON(w, status, api.ErrorResponse{
		Error:   http.StatusText(status),
		Message: userMsg,
		Code:    code,
	})
}

func respondWithValidation(w http.ResponseWriter, ve validation.ValidationError) {
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: ve.Message,
		Code:    api.CodeValidation,
		Field:   ve.Field,
	})
}

// respondWithServiceError maps a service failure onto its HTTP status and error code
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		respondWithValidation(w, ve)
		return
	}

	switch {
	case errors.Is(err, service.ErrNameTaken):
		writeJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:   http.StatusText(http.StatusConflict),
			Message: "this name is already registered",
			Code:    api.CodeDuplicateAccount,
			Field:   "name",
		})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:   http.StatusText(http.StatusConflict),
			Message: "this email is already registered",
			Code:    api.CodeDuplicateAccount,
			Field:   "email",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, logger, http.StatusUnauthorized, api.CodeInvalidCredentials, "invalid name or password", "", err)
	case errors.Is(err, service.ErrSessionExpired):
		respondWithError(w, logger, http.StatusUnauthorized, api.CodeSessionExpired, "session expired, please log in again", "", err)
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, logger, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", "", err)
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, logger, http.StatusForbidden, api.CodeForbidden, "admin role required", "", err)
	default:
		respondWithError(w, logger, http.StatusInternalServerError, api.CodeInternal, "internal server error", "request failed", err)
	}
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
