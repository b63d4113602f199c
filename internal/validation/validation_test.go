package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "John Doe",
			wantErr: false,
		},
		{
			name:    "single name",
			input:   "John",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNameRunes(t *testing.T) {
	if err := ValidateName("太郎"); err != nil {
		t.Errorf("ValidateName(%q) error = %v, want nil", "太郎", err)
	}
	if err := ValidateName("太"); err == nil {
		t.Errorf("ValidateName(%q) error = nil, want error", "太")
	}
	if err := ValidateName(strings.Repeat("あ", MaxNameLength+1)); err == nil {
		t.Error("ValidateName() accepted an over-long name")
	}
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "single rune", input: "A", wantErr: false},
		{name: "japanese", input: "花子", wantErr: false},
		{name: "blank", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("x", MaxNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplayName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "present", value: "alice", wantErr: false},
		{name: "padded", value: "  alice ", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: " \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required("username", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Required(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("Required() error type = %T, want ValidationError", err)
			}
			if ve.Field != "username" {
				t.Errorf("Required() field = %q, want %q", ve.Field, "username")
			}
		})
	}
}

func TestMatch(t *testing.T) {
	if err := Match("confirm", "password1", "password1"); err != nil {
		t.Errorf("Match() error = %v, want nil", err)
	}
	err := Match("confirm", "password1", "password2")
	ve, ok := AsValidationError(err)
	if !ok || ve.Field != "confirm" {
		t.Errorf("Match() error = %v, want ValidationError on confirm", err)
	}
}
