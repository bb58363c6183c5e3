package errors

import (
	"errors"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no credentials",
			input:    "simple error message",
			expected: "simple error message",
		},
		{
			name:     "telegram bot token",
			input:    "bot token 1234567890:ABCdefGHI_jklMNOpqrSTUvwxYZ-12345678",
			expected: "bot token [REDACTED]",
		},
		{
			name:     "telegram api url",
			input:    `Post "https://api.telegram.org/bot1234567890:ABCdefGHI_jklMNOpqrSTUvwxYZ-12345678/getMe": timeout`,
			expected: `Post "https://api.telegram.org/bot[REDACTED]/getMe": timeout`,
		},
		{
			name:     "bearer token",
			input:    "Token: Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
			expected: "Token: [REDACTED]",
		},
		{
			name:     "authorization header",
			input:    "request failed with authorization: secret-value",
			expected: "request failed with [REDACTED]",
		},
		{
			name:     "token in query string",
			input:    "https://example.com/hook?token=secret123456&x=1",
			expected: "https://example.com/hook?[REDACTED]&x=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeString(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	if SanitizeError(nil) != nil {
		t.Error("SanitizeError(nil) should be nil")
	}

	clean := errors.New("connection timeout")
	if got := SanitizeError(clean); got != clean {
		t.Errorf("SanitizeError() should return the original error when nothing is redacted, got %v", got)
	}

	dirty := errors.New("telegram error: 1234567890:ABCdefGHI_jklMNOpqrSTUvwxYZ-12345678")
	got := SanitizeError(dirty)
	if got.Error() != "telegram error: [REDACTED]" {
		t.Errorf("SanitizeError().Error() = %q", got.Error())
	}
	if !errors.Is(got, dirty) {
		t.Error("sanitized error should unwrap to the original")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "wrapped") != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(errors.New("status 500"), "send %s failed", "summary")
	if err.Error() != "send summary failed: status 500" {
		t.Errorf("Wrapf().Error() = %q", err.Error())
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		want string
	}{
		{
			name: "structural",
			err:  Structural("gpx.Parse", errors.New("unexpected EOF"), "element %q not closed", "wpt"),
			kind: ErrStructural,
			want: `gpx.Parse: structural error: element "wpt" not closed: unexpected EOF`,
		},
		{
			name: "invalid argument",
			err:  InvalidArgument("groundspeak.Encode", "negative id %d", -500000),
			kind: ErrInvalidArgument,
			want: "groundspeak.Encode: invalid argument: negative id -500000",
		},
		{
			name: "duplicate key",
			err:  DuplicateKey("report.AddSection", "FoundsByCountry"),
			kind: ErrDuplicateKey,
			want: `report.AddSection: duplicate key: "FoundsByCountry" already registered`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
		})
	}

	wrapped := errors.Join(errors.New("context"), DuplicateKey("op", "k"))
	if !errors.Is(wrapped, ErrDuplicateKey) {
		t.Error("kind should survive wrapping")
	}
	if errors.Is(DuplicateKey("op", "k"), ErrStructural) {
		t.Error("duplicate key must not match structural kind")
	}
}
