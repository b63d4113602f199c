package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hueareyou/internal/database"
	"hueareyou/internal/models"
)

// ErrDuplicate is returned when an insert collides with a unique column
var ErrDuplicate = errors.New("duplicate entry")

const userColumns = "id, name, email, password_hash, role, created_at, updated_at"

// UserRepository handles database operations for users and login sessions
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user. The first user becomes admin.
func (r *UserRepository) CreateUser(ctx context.Context, id, name, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		var userCount int
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		user.Role = models.RoleUser
		if userCount == 0 {
			user.Role = models.RoleAdmin
		}

		return insertUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ImportUser inserts a user exactly as given, keeping its id and role
func (r *UserRepository) ImportUser(ctx context.Context, user *models.User) error {
	return insertUser(ctx, r.db, user)
}

func insertUser(ctx context.Context, db database.DBTX, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if db.GetDialect().IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByName retrieves a user by account name
func (r *UserRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return r.getUser(ctx, "name", name)
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// column is never user input
func (r *UserRepository) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + column + " = ?"

	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

// GetAllUsers retrieves all users in registration order
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// CreateSession creates a new login session for a user
func (r *UserRepository) CreateSession(ctx context.Context, sessionID, userID string, expiresAt time.Time) (*models.LoginSession, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO login_sessions (id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(ctx, query, sessionID, userID, expiresAt.UTC(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.LoginSession{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: now,
	}, nil
}

// GetSession retrieves a login session by ID
func (r *UserRepository) GetSession(ctx context.Context, sessionID string) (*models.LoginSession, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM login_sessions
		WHERE id = ?
	`
	session := &models.LoginSession{}
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a login session
func (r *UserRepository) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM login_sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session that expired before now and returns how many were removed
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM login_sessions WHERE expires_at <= ?", now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n, nil
}
