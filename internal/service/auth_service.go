package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hueareyou/internal/models"
	"hueareyou/internal/repository"
	"hueareyou/internal/security"
	"hueareyou/internal/validation"
)

var (
	ErrNameTaken          = errors.New("name already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// WelcomeMailer sends the mail that follows a sign-up
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	tokens          *security.TokenIssuer
	mailer          WelcomeMailer
	sessionDuration time.Duration
	logger          *zap.Logger
}

// NewAuthService creates a new auth service. mailer may be nil.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, mailer WelcomeMailer, sessionDuration time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:        userRepo,
		tokens:          tokens,
		mailer:          mailer,
		sessionDuration: sessionDuration,
		logger:          logger,
	}
}

// SignUp creates an account and its first login session
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.User, *models.IssuedSession, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validation.ValidateName(name); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, err
	}

	if err := s.checkAvailable(ctx, name, email); err != nil {
		return nil, nil, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, security.GenerateUserID(), name, email, passwordHash)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent sign-up
		if err := s.checkAvailable(ctx, name, email); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrNameTaken
	}
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			s.logger.Warn("failed to send welcome email", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	issued, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, issued, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, name, email string) error {
	existing, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return ErrNameTaken
	}

	existing, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}
	return nil
}

// Login authenticates a user by name and creates a session
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, *models.IssuedSession, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	issued, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, issued, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*models.IssuedSession, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(ctx, sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, session.ID, string(user.Role), session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &models.IssuedSession{Session: *session, Token: token}, nil
}

// ValidateToken checks a session token and returns the user it belongs to.
// The signature, the session row, its owner and its expiry must all agree.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if errors.Is(err, security.ErrTokenExpired) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.userRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}

	if session.IsExpired() {
		if err := s.userRepo.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("failed to delete expired session", zap.String("session_id", session.ID), zap.Error(err))
		}
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// CleanupExpiredSessions removes expired sessions
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.userRepo.DeleteExpiredSessions(ctx, time.Now())
}

// RunCleanup deletes expired sessions every interval until ctx is done
func (s *AuthService) RunCleanup(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.CleanupExpiredSessions(ctx)
			if err != nil {
				s.logger.Error("failed to clean up expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
