package models

import (
	"errors"
	"testing"
	"time"

	"hueareyou/internal/palette"
)

func TestLoginSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := LoginSession{
				ID:        "test-session",
				UserID:    "user-1",
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("LoginSession.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRecordRange(t *testing.T) {
	tests := []struct {
		name      string
		begin     int
		end       int
		wantCount int
		wantErr   bool
	}{
		{name: "single record", begin: 0, end: 0, wantCount: 1},
		{name: "ten records", begin: 10, end: 19, wantCount: 10},
		{name: "negative begin", begin: -1, end: 3, wantErr: true},
		{name: "reversed", begin: 5, end: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecordRange(tt.begin, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRecordRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("NewRecordRange() error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if r.Count() != tt.wantCount {
				t.Errorf("Count() = %d, want %d", r.Count(), tt.wantCount)
			}
		})
	}
}

func TestChoicesMap(t *testing.T) {
	choices := Choices{
		{Word: "海", Color: palette.Blue},
		{Word: "空", Color: palette.Red},
	}
	m := choices.Map()
	if len(m) != 2 || m["海"] != "青" || m["空"] != "赤" {
		t.Errorf("Map() = %v", m)
	}
}

func TestSessionIsAdmin(t *testing.T) {
	if (Session{Role: RoleUser}).IsAdmin() {
		t.Error("user role should not be admin")
	}
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
	if (Session{}).IsAdmin() {
		t.Error("missing role should not be admin")
	}
}
