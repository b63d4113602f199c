package security

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHashPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes due to salt")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "mySecurePassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "correct password", password: password, hash: hash, want: true},
		{name: "wrong password", password: "wrongPassword", hash: hash, want: false},
		{name: "empty password", password: "", hash: hash, want: false},
		{name: "malformed hash", password: password, hash: "not-a-hash", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateIDs(t *testing.T) {
	a, b := GenerateSessionID(), GenerateSessionID()
	if a == b {
		t.Error("GenerateSessionID() returned the same id twice")
	}
	if !IsUUID(a) || !IsUUID(GenerateUserID()) {
		t.Error("generated ids should be UUIDs")
	}
	if IsUUID("not-a-uuid") {
		t.Error("IsUUID(not-a-uuid) = true, want false")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}

	token, err := issuer.Issue("user-1", "session-1", "admin", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "user-1" || claims.ID != "session-1" || claims.Role != "admin" {
		t.Errorf("Parse() claims = %+v", claims)
	}
}

func TestTokenRejected(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret")
	other, _ := NewTokenIssuer("other-secret")

	expired, err := issuer.Issue("user-1", "session-1", "user", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, err := other.Issue("user-1", "session-1", "user", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: expired, wantErr: ErrTokenExpired},
		{name: "wrong secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "garbage", token: "abc.def.ghi", wantErr: ErrInvalidToken},
		{name: "empty", token: "", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); err != tt.wantErr {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(""); err == nil {
		t.Error("NewTokenIssuer(\"\") error = nil, want error")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request within window should be denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other visitors have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("bucket should refill after the window")
	}

	now = now.Add(3 * time.Minute)
	rl.cleanupVisitors()
	if n := rl.size(); n != 0 {
		t.Errorf("visitors after cleanup = %d, want 0", n)
	}
}

func TestRateLimiterRunStops(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.Run(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, remote: "10.0.0.1:5555", want: "203.0.113.5"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, remote: "10.0.0.1:5555", want: "198.51.100.7"},
		{name: "remote without port", remote: "10.0.0.9", want: "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", strings.NewReader(""))
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
