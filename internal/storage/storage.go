package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DownloadsDir = "downloads"
	ResultsDir   = "results"

	// DatetimeFormat is used in result file names.
	DatetimeFormat = "2006-01-02_15-04-05"
)

// Storage handles files under a base directory
type Storage struct {
	baseDir string
}

// New creates a new Storage instance, creating baseDir if needed.
func New(baseDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(baseDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, baseDir[2:])
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating base directory: %w", err)
	}

	return &Storage{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the expanded base directory.
func (s *Storage) BaseDir() string {
	return s.baseDir
}

func (s *Storage) subdir(name string) (string, error) {
	dir := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s directory: %w", name, err)
	}
	return dir, nil
}

// SaveArchive writes data to downloads/<filename>, overwriting any existing
// file of the same name, and returns the path written.
func (s *Storage) SaveArchive(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid archive name: %q", filename)
	}

	dir, err := s.subdir(DownloadsDir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}
	return path, nil
}

// ResultPath returns results/<mode>_<timestamp>.<ext>, creating results/.
func (s *Storage) ResultPath(mode, ext string, at time.Time) (string, error) {
	dir, err := s.subdir(ResultsDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", mode, at.Format(DatetimeFormat), ext)), nil
}
