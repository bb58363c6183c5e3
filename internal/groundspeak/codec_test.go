package groundspeak

import (
	"errors"
	"math"
	"strings"
	"testing"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
)

func TestEncode_KnownCodes(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{30236633, "125QG6"},
		{30142402, "122JEF"},
		{303712500, "AK9HRB"},
		{859171469, "Z0QQRK"},
		{0, "DRRY"},
		{-IDOffset, "0"},
	}

	for _, tt := range tests {
		got, err := Encode(tt.id, "")
		if err != nil {
			t.Fatalf("Encode(%d) returned error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Encode(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestEncode_Prefix(t *testing.T) {
	got, err := Encode(30236633, LogPrefix)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if got != "GL125QG6" {
		t.Errorf("Encode() = %q, want GL125QG6", got)
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want string
	}{
		{"negative", -IDOffset - 1, "below the encodable range"},
		{"overflow", math.MaxInt64, "above the encodable range"},
		{"first overflowing id", math.MaxInt64 - IDOffset + 1, "above the encodable range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.id, LogPrefix)
			if !errors.Is(err, internalerrors.ErrInvalidArgument) {
				t.Fatalf("Encode() error = %v, want invalid argument", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Encode() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := Encode(math.MaxInt64-IDOffset, LogPrefix); err != nil {
		t.Errorf("Encode() of the largest id failed: %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		code    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"125QG6", "", 30236633, false},
		{"GLZ0QQRK", LogPrefix, 859171469, false},
		{"Z0QQRK", LogPrefix, 859171469, false}, // prefix is optional
		{"GC122JEF", CachePrefix, 30142402, false},
		{"GL12I4", LogPrefix, 0, true}, // I is not in the alphabet
		{"GL", LogPrefix, 0, true},
		{"ZZZZZZZZZZZZZZZZ", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Decode(tt.code, tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, internalerrors.ErrInvalidArgument) {
					t.Errorf("Decode(%q) error kind = %v, want invalid argument", tt.code, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ids := []int64{0, 1, 30, 31, 961, 411119, 411120, 999999, math.MaxInt32, 1 << 40}
	for id := int64(0); id < 5_000_000; id += 7919 {
		ids = append(ids, id)
	}

	for _, id := range ids {
		code, err := Encode(id, LogPrefix)
		if err != nil {
			t.Fatalf("Encode(%d) returned error: %v", id, err)
		}
		got, err := Decode(code, LogPrefix)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", code, err)
		}
		if got != id {
			t.Errorf("Decode(Encode(%d)) = %d (code %s)", id, got, code)
		}
	}
}

func TestLinks(t *testing.T) {
	if got := CoordInfoURL("GC12345"); got != "https://coord.info/GC12345" {
		t.Errorf("CoordInfoURL() = %q", got)
	}

	logURL, err := LogURL(30236633)
	if err != nil {
		t.Fatalf("LogURL returned error: %v", err)
	}
	if logURL != "https://coord.info/GL125QG6" {
		t.Errorf("LogURL() = %q", logURL)
	}

	if _, err := LogURL(-IDOffset - 5); err == nil {
		t.Error("LogURL() should reject ids below the encodable range")
	}

	if got := UserURL("4711"); got != "https://www.geocaching.com/p/default.aspx?id=4711" {
		t.Errorf("UserURL() = %q", got)
	}

	if got := GoogleMapsURL("52.5", "-13.25"); got != "https://www.google.com/maps/search/?api=1&query=52.5,-13.25" {
		t.Errorf("GoogleMapsURL() = %q", got)
	}
}

func TestIsFoundLogType(t *testing.T) {
	tests := []struct {
		logType string
		want    bool
	}{
		{"Found it", true},
		{"Webcam Photo Taken", true},
		{"Attended", true},
		{"Didn't find it", false},
		{"Write note", false},
		{"found it", false}, // case sensitive
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFoundLogType(tt.logType); got != tt.want {
			t.Errorf("IsFoundLogType(%q) = %v, want %v", tt.logType, got, tt.want)
		}
	}
}
