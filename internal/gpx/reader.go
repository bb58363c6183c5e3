package gpx

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/olegiv/gclogs-analyzer-go/internal/analyzer"
	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
)

// Compile-time interface check
var _ analyzer.RecordSource = (*Reader)(nil)

// Reader opens GPX export files and parses them.
// Implements analyzer.RecordSource interface.
type Reader struct {
	maxSizeMB int
}

// NewReader creates a new GPX reader that refuses files above maxSizeMB.
func NewReader(maxSizeMB int) *Reader {
	return &Reader{maxSizeMB: maxSizeMB}
}

// Read implements analyzer.RecordSource.Read.
func (r *Reader) Read(sourcePath string) ([]*geocache.Record, error) {
	// Check if file exists
	fileInfo, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("GPX file not found: %s", sourcePath)
		}
		return nil, fmt.Errorf("failed to stat GPX file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("GPX path is a directory: %s", sourcePath)
	}

	// Check file permissions
	if fileInfo.Mode().Perm()&0400 == 0 {
		return nil, fmt.Errorf("GPX file is not readable: %s", sourcePath)
	}

	// Check file size
	maxBytes := int64(r.maxSizeMB) * 1024 * 1024
	if fileInfo.Size() > maxBytes {
		return nil, fmt.Errorf("GPX file exceeds maximum size of %dMB (size: %.2fMB)",
			r.maxSizeMB, float64(fileInfo.Size())/1024/1024)
	}

	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := Parse(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", sourcePath, err)
	}

	return records, nil
}

// GetSourceInfo implements analyzer.RecordSource.GetSourceInfo.
// Returns metadata about the GPX file.
func (r *Reader) GetSourceInfo(sourcePath string) (map[string]interface{}, error) {
	fileInfo, err := os.Stat(sourcePath)
	if err != nil {
		return nil, err
	}

	info := map[string]interface{}{
		"size_bytes": fileInfo.Size(),
		"size_mb":    float64(fileInfo.Size()) / 1024 / 1024,
		"modified":   fileInfo.ModTime(),
		"age_hours":  time.Since(fileInfo.ModTime()).Hours(),
	}

	return info, nil
}
