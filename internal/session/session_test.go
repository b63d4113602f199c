package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"hueareyou/internal/models"
	"hueareyou/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct {
	session models.Session
	err     error

	loginCalls  int
	signUpCalls int
	lastCreds   models.Credentials
	lastSignUp  models.SignUpRequest
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	f.loginCalls++
	f.lastCreds = creds
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	return f.session, f.err
}

func (f *fakeAuth) SignUp(ctx context.Context, req models.SignUpRequest) (models.Session, error) {
	f.signUpCalls++
	f.lastSignUp = req
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	return f.session, f.err
}

func TestLoginSuccess(t *testing.T) {
	auth := &fakeAuth{session: models.Session{UserID: "u-1", Token: "tok", Role: models.RoleUser}}
	m := NewManager(auth, nil)
	require.Equal(t, StateAnonymous, m.State())

	s, err := m.Login(context.Background(), "  alice  ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "alice", auth.lastCreds.Name)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "alice", m.Username())
	assert.False(t, m.IsAdmin())
}

func TestAdminFlagFollowsResponse(t *testing.T) {
	auth := &fakeAuth{session: models.Session{UserID: "u-1", Token: "tok", Role: models.RoleAdmin}}
	m := NewManager(auth, nil)

	_, err := m.Login(context.Background(), "root", "secret")
	require.NoError(t, err)
	assert.True(t, m.IsAdmin())

	m.Logout()
	assert.False(t, m.IsAdmin())
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{name: "empty username", username: "", password: "secret", wantField: "username"},
		{name: "blank username", username: "   ", password: "secret", wantField: "username"},
		{name: "blank password", username: "alice", password: "  ", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{session: models.Session{Token: "tok"}}
			m := NewManager(auth, nil)

			_, err := m.Login(context.Background(), tt.username, tt.password)
			ve, ok := validation.AsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Zero(t, auth.loginCalls)
			assert.False(t, m.Authenticated())
		})
	}
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		confirm   string
		wantField string
	}{
		{name: "mismatched confirmation", username: "bob", email: "bob@example.com", password: "password1", confirm: "password2", wantField: "confirm"},
		{name: "missing email", username: "bob", email: " ", password: "password1", confirm: "password1", wantField: "email"},
		{name: "missing username", username: "", email: "bob@example.com", password: "password1", confirm: "password1", wantField: "username"},
		{name: "missing password", username: "bob", email: "bob@example.com", password: "", confirm: "", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{session: models.Session{Token: "tok"}}
			m := NewManager(auth, nil)

			_, err := m.SignUp(context.Background(), tt.username, tt.email, tt.password, tt.confirm)
			ve, ok := validation.AsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Zero(t, auth.signUpCalls)
			assert.Zero(t, auth.loginCalls)
		})
	}
}

func TestSignUpSuccess(t *testing.T) {
	auth := &fakeAuth{session: models.Session{UserID: "u-9", Token: "tok"}}
	m := NewManager(auth, nil)

	_, err := m.SignUp(context.Background(), "bob", " bob@example.com ", "password1", "password1")
	require.NoError(t, err)
	assert.Equal(t, 1, auth.signUpCalls)
	assert.Equal(t, "bob@example.com", auth.lastSignUp.Email)
	assert.True(t, m.Authenticated())
}

func TestFailureLeavesStateUnchanged(t *testing.T) {
	auth := &fakeAuth{session: models.Session{UserID: "u-1", Token: "first", Role: models.RoleAdmin}}
	m := NewManager(auth, nil)
	_, err := m.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	auth.err = errors.New("invalid credentials")
	auth.session = models.Session{}
	_, err = m.Login(context.Background(), "mallory", "wrong")
	require.Error(t, err)

	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "first", s.Token)
	assert.Equal(t, "alice", s.Username)
	assert.True(t, m.IsAdmin())
}

func TestCanceledLogin(t *testing.T) {
	auth := &fakeAuth{session: models.Session{Token: "tok"}}
	m := NewManager(auth, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Login(ctx, "alice", "secret")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.Authenticated())
}

// lateAuth answers successfully after the caller has already given up
type lateAuth struct {
	cancel context.CancelFunc
}

func (a lateAuth) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	a.cancel()
	return models.Session{UserID: "u-1", Token: "tok"}, nil
}

func (a lateAuth) SignUp(ctx context.Context, req models.SignUpRequest) (models.Session, error) {
	a.cancel()
	return models.Session{UserID: "u-1", Token: "tok"}, nil
}

func TestCanceledAfterResponseLeavesStateUntouched(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		m := NewManager(lateAuth{cancel: cancel}, nil)

		_, err := m.Login(ctx, "alice", "secret")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, m.Authenticated())
		assert.Equal(t, "", m.Username())
	})

	t.Run("sign-up", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		m := NewManager(lateAuth{cancel: cancel}, nil)

		_, err := m.SignUp(ctx, "alice", "alice@example.com", "password1", "password1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateAnonymous, m.State())
	})
}

func TestLogoutWhenAnonymous(t *testing.T) {
	m := NewManager(&fakeAuth{}, nil)
	m.Logout()
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, "", m.Username())
}
