// Package fs provides file-based export of scan results.
package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/leadscan"
)

// ExportFileName returns the CSV file name for an export taken at t.
// Example: emails_1736935200000.csv
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("emails_%d.csv", t.UnixMilli())
}

// Exporter writes results as CSV files to a directory.
type Exporter struct {
	baseDir string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates a new Exporter that writes to the given base directory.
func NewExporter(baseDir string) *Exporter {
	return &Exporter{baseDir: baseDir, Now: time.Now}
}

// Export writes results to a new CSV file and returns its path.
func (e *Exporter) Export(results []*leadscan.Result) (string, error) {
	if e.baseDir == "" {
		return "", leadscan.Errorf(leadscan.EINVALID, "export directory required")
	}

	var buf bytes.Buffer
	if err := leadscan.WriteCSV(&buf, results); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(e.baseDir, ExportFileName(e.Now()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}
