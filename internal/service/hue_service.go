package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hueareyou/internal/models"
	"hueareyou/internal/palette"
	"hueareyou/internal/repository"
	"hueareyou/internal/validation"
)

var ErrForbidden = errors.New("admin role required")

// MaxRecordRange bounds the number of records returned by one fetch
const MaxRecordRange = 1000

// HueService stores and retrieves classification records
type HueService struct {
	records *repository.HueRepository
	logger  *zap.Logger
}

// NewHueService creates a new hue record service
func NewHueService(records *repository.HueRepository, logger *zap.Logger) *HueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HueService{records: records, logger: logger}
}

// SaveRecord validates and stores a record on behalf of user
func (s *HueService) SaveRecord(ctx context.Context, user *models.User, name string, choices map[string]string) (*models.HueRecord, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateDisplayName(name); err != nil {
		return nil, err
	}

	cleaned, err := validateChoices(choices)
	if err != nil {
		return nil, err
	}

	record, err := s.records.SaveRecord(ctx, name, cleaned)
	if err != nil {
		return nil, err
	}

	s.logger.Info("record saved",
		zap.Int64("record_id", record.ID),
		zap.String("user_id", user.ID),
		zap.Int("words", len(cleaned)),
	)
	return record, nil
}

func validateChoices(choices map[string]string) (map[string]string, error) {
	if len(choices) == 0 {
		return nil, validation.ValidationError{Field: "choice", Message: "at least one word must be colored"}
	}

	cleaned := make(map[string]string, len(choices))
	for word, label := range choices {
		w := strings.TrimSpace(word)
		if w == "" {
			return nil, validation.ValidationError{Field: "choice", Message: "words must not be blank"}
		}
		c, err := palette.Parse(label)
		if err != nil {
			return nil, validation.ValidationError{Field: "choice", Message: fmt.Sprintf("unknown color %q for %q", label, w)}
		}
		cleaned[w] = string(c)
	}
	return cleaned, nil
}

// GetRecords returns the records in rng. Only admins may read records.
func (s *HueService) GetRecords(ctx context.Context, user *models.User, rng models.RecordRange) ([]models.HueRecord, error) {
	if user == nil || !user.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, err := models.NewRecordRange(rng.Begin, rng.End); err != nil {
		return nil, validation.ValidationError{Field: "data-range", Message: "range must satisfy 0 <= begin <= end"}
	}
	if rng.Count() > MaxRecordRange {
		return nil, validation.ValidationError{Field: "data-range", Message: fmt.Sprintf("range may cover at most %d records", MaxRecordRange)}
	}
	return s.records.FindRange(ctx, rng)
}
