package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hueareyou/internal/database"
	"hueareyou/internal/models"
)

// HueRepository stores classification records
type HueRepository struct {
	db *database.DB
}

// NewHueRepository creates a new hue record repository
func NewHueRepository(db *database.DB) *HueRepository {
	return &HueRepository{db: db}
}

// SaveRecord stores a word→color mapping under userName
func (r *HueRepository) SaveRecord(ctx context.Context, userName string, choices map[string]string) (*models.HueRecord, error) {
	record := &models.HueRecord{
		UserName:  userName,
		Choices:   choices,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ImportRecord stores a record keeping its creation time; the id is reassigned
func (r *HueRepository) ImportRecord(ctx context.Context, record *models.HueRecord) error {
	record.CreatedAt = record.CreatedAt.UTC()
	return r.insert(ctx, record)
}

func (r *HueRepository) insert(ctx context.Context, record *models.HueRecord) error {
	encoded, err := json.Marshal(record.Choices)
	if err != nil {
		return fmt.Errorf("failed to encode choices: %w", err)
	}

	query := `
		INSERT INTO hue_records (user_name, choices, created_at)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, record.UserName, string(encoded), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	record.ID = id
	return nil
}

// FindRange returns the records at positions [r.Begin, r.End] in creation order
func (r *HueRepository) FindRange(ctx context.Context, rng models.RecordRange) ([]models.HueRecord, error) {
	query := `
		SELECT id, user_name, choices, created_at
		FROM hue_records
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`
	return r.query(ctx, query, rng.Count(), rng.Begin)
}

// AllRecords returns every record in creation order
func (r *HueRepository) AllRecords(ctx context.Context) ([]models.HueRecord, error) {
	return r.query(ctx, "SELECT id, user_name, choices, created_at FROM hue_records ORDER BY created_at, id")
}

// CountRecords returns the number of stored records
func (r *HueRepository) CountRecords(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM hue_records").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (r *HueRepository) query(ctx context.Context, query string, args ...any) ([]models.HueRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []models.HueRecord{}
	for rows.Next() {
		var rec models.HueRecord
		var raw []byte
		if err := rows.Scan(&rec.ID, &rec.UserName, &raw, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal(raw, &rec.Choices); err != nil {
			return nil, fmt.Errorf("failed to decode choices of record %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}
