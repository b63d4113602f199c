package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"hueareyou/internal/database"
	"hueareyou/internal/models"
	"hueareyou/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Users      []UserBackup   `json:"users"`
	Records    []RecordBackup `json:"records"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordBackup represents a hue record for backup
type RecordBackup struct {
	ID        int64             `json:"id"`
	UserName  string            `json:"user_name"`
	Choices   map[string]string `json:"choices"`
	CreatedAt time.Time         `json:"created_at"`
}

// BackupService exports and imports users and records as JSON. Login sessions are not carried over.
type BackupService struct {
	db      *database.DB
	users   *repository.UserRepository
	records *repository.HueRepository
	logger  *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		db:      db,
		users:   repository.NewUserRepository(db),
		records: repository.NewHueRepository(db),
		logger:  logger,
	}
}

// clearOrder lists tables children first so foreign keys hold while deleting
var clearOrder = []string{"hue_records", "login_sessions", "users"}

// Clear deletes every user, session and record in one transaction
func (s *BackupService) Clear(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, table := range clearOrder {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			s.logger.Info("cleared table", zap.String("table", table))
		}
		return nil
	})
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	s.logger.Info("database exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a complete backup as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Users:      []UserBackup{},
		Records:    []RecordBackup{},
	}

	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         string(u.Role),
			CreatedAt:    u.CreatedAt,
			UpdatedAt:    u.UpdatedAt,
		})
	}

	records, err := s.records.AllRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}
	for _, r := range records {
		backup.Records = append(backup.Records, RecordBackup{
			ID:        r.ID,
			UserName:  r.UserName,
			Choices:   r.Choices,
			CreatedAt: r.CreatedAt,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("export complete", zap.Int("users", len(backup.Users)), zap.Int("records", len(backup.Records)))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores users and records. Users that already exist are skipped.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.Info("importing backup", zap.Time("exported_at", backup.ExportedAt))

	skipped := 0
	for _, u := range backup.Users {
		err := s.users.ImportUser(ctx, &models.User{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         models.Role(u.Role),
			CreatedAt:    u.CreatedAt.UTC(),
			UpdatedAt:    u.UpdatedAt.UTC(),
		})
		if err == repository.ErrDuplicate {
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.ID, err)
		}
	}

	for _, r := range backup.Records {
		rec := &models.HueRecord{UserName: r.UserName, Choices: r.Choices, CreatedAt: r.CreatedAt}
		if err := s.records.ImportRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to import record %d: %w", r.ID, err)
		}
	}

	s.logger.Info("import complete",
		zap.Int("users", len(backup.Users)-skipped),
		zap.Int("users_skipped", skipped),
		zap.Int("records", len(backup.Records)),
	)
	return nil
}
