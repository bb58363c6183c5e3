package gpx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
)

func writeGPX(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "finds.gpx")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestNewReader(t *testing.T) {
	reader := NewReader(10)

	if reader == nil {
		t.Fatal("Expected reader to be created")
	}

	if reader.maxSizeMB != 10 {
		t.Errorf("Expected maxSizeMB 10, got %d", reader.maxSizeMB)
	}
}

func TestRead_ValidFile(t *testing.T) {
	path := writeGPX(t, gpxHeader+fullWaypoint+wpt("GC1", "Austria", "2021-01-01T00:00:00Z", 7, "Found it")+gpxFooter)

	records, err := NewReader(10).Read(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Code != "GC2ABCD" || records[1].Code != "GC1" {
		t.Errorf("Unexpected codes %q, %q", records[0].Code, records[1].Code)
	}
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := NewReader(10).Read("/nonexistent/finds.gpx")

	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}

	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}
}

func TestRead_Directory(t *testing.T) {
	_, err := NewReader(10).Read(t.TempDir())

	if err == nil {
		t.Fatal("Expected error for directory")
	}

	if !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("Expected 'is a directory' error, got: %v", err)
	}
}

func TestRead_FileTooBig(t *testing.T) {
	// 2MB of padding inside a valid document, limit is 1MB
	path := writeGPX(t, gpxHeader+"<!--"+strings.Repeat("X", 2*1024*1024)+"-->"+gpxFooter)

	_, err := NewReader(1).Read(path)

	if err == nil {
		t.Fatal("Expected error for file exceeding size limit")
	}

	if !strings.Contains(err.Error(), "exceeds maximum size") {
		t.Errorf("Expected 'exceeds maximum size' error, got: %v", err)
	}
}

func TestRead_Malformed(t *testing.T) {
	path := writeGPX(t, gpxHeader+`<wpt lat="1" lon="2"><name>GC1</name>`)

	records, err := NewReader(10).Read(path)

	if err == nil {
		t.Fatal("Expected error for truncated document")
	}
	if !errors.Is(err, internalerrors.ErrStructural) {
		t.Errorf("Expected ErrStructural, got: %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error to name the file, got: %v", err)
	}
	if records != nil {
		t.Error("Expected no records")
	}
}

func TestGetSourceInfo(t *testing.T) {
	content := gpxHeader + gpxFooter
	path := writeGPX(t, content)

	info, err := NewReader(10).GetSourceInfo(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if info["size_bytes"].(int64) != int64(len(content)) {
		t.Errorf("Expected size_bytes %d, got %v", len(content), info["size_bytes"])
	}

	for _, key := range []string{"size_mb", "modified", "age_hours"} {
		if _, ok := info[key]; !ok {
			t.Errorf("Expected key %q in source info", key)
		}
	}
}

func TestGetSourceInfo_Missing(t *testing.T) {
	if _, err := NewReader(10).GetSourceInfo("/nonexistent/finds.gpx"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
