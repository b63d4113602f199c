package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"hueareyou/internal/api"
	"hueareyou/internal/models"
	"hueareyou/internal/service"
	"hueareyou/internal/validation"
)

// HueHandler serves saving and reading classification records
type HueHandler struct {
	hueService  *service.HueService
	authService *service.AuthService
	logger      *zap.Logger
}

// NewHueHandler creates a new hue handler
func NewHueHandler(hueService *service.HueService, authService *service.AuthService, logger *zap.Logger) *HueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HueHandler{
		hueService:  hueService,
		authService: authService,
		logger:      logger,
	}
}

// SaveResult stores a record. It must be wrapped by RequireAuth.
func (h *HueHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", "", nil)
		return
	}

	var req api.SaveResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body", "", err)
		return
	}

	if _, err := h.hueService.SaveRecord(r.Context(), user, req.Name, req.Choice); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetData returns the records in the requested range to an admin.
// The request is read from the JSON body and, when the body is empty, from the
// "session" and "data-range" query parameters holding JSON values.
func (h *HueHandler) GetData(w http.ResponseWriter, r *http.Request) {
	req, err := readGetDataRequest(w, r)
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request", "", err)
		return
	}

	token := bearerToken(r)
	if token == "" {
		token = req.Session.Token
	}
	if token == "" {
		respondWithError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required", "", nil)
		return
	}

	user, err := h.authService.ValidateToken(r.Context(), token)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if req.Session.UserID != "" && req.Session.UserID != user.ID {
		respondWithError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "session does not match user", "", nil)
		return
	}

	if len(req.DataRange) != 2 {
		respondWithValidation(w, validation.ValidationError{Field: "data-range", Message: "data-range must be [begin, end]"})
		return
	}
	rng := models.RecordRange{Begin: req.DataRange[0], End: req.DataRange[1]}

	records, err := h.hueService.GetRecords(r.Context(), user, rng)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	resp := api.GetDataResponse{Records: make([]api.RecordPayload, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, api.RecordPayload{Name: rec.UserName, Choice: rec.Choices})
	}
	writeJSON(w, http.StatusOK, resp)
}

func readGetDataRequest(w http.ResponseWriter, r *http.Request) (api.GetDataRequest, error) {
	var req api.GetDataRequest

	err := decodeJSON(w, r, &req)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, io.EOF) {
		return req, err
	}

	q := r.URL.Query()
	if raw := q.Get("session"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Session); err != nil {
			return req, err
		}
	}
	if raw := q.Get("data-range"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.DataRange); err != nil {
			return req, err
		}
	}
	return req, nil
}
