package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sitedex/sitedex/internal/model"
)

// DateLayout is the date stamp used for output directories and index files.
const DateLayout = "2006-01-02"

// indexFilePrefix is the prefix of the JSON index file name.
const indexFilePrefix = "index-"

// ErrNoRecords is returned by WriteIndex when the crawl collected nothing.
// No index file is written in that case.
var ErrNoRecords = errors.New("no records to index")

// ErrNoIndex is returned by LoadLatest when no dated output directory with
// an index file exists under the root.
var ErrNoIndex = errors.New("no index found")

// Dir is a date-stamped crawl output directory.
// It owns the per-page text files and the JSON index file for one crawl run.
type Dir struct {
	// path is the absolute path of the dated directory.
	path string

	// date is the stamp used in the directory and index file names.
	date string

	// logger records non-fatal write problems.
	logger *slog.Logger
}

// Open creates (or reuses) the dated output directory under root for the
// given time. Failure to create the directory is the only fatal error in
// the output path; everything downstream is logged and survived.
func Open(root string, now time.Time, logger *slog.Logger) (*Dir, error) {
	if logger == nil {
		logger = slog.Default()
	}

	date := now.Format(DateLayout)
	path := filepath.Join(root, date)
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Dir{path: path, date: date, logger: logger}, nil
}

// Path returns the absolute path of the output directory.
func (d *Dir) Path() string {
	return d.path
}

// IndexPath returns the path the JSON index file is (or will be) written to.
func (d *Dir) IndexPath() string {
	return filepath.Join(d.path, indexFilePrefix+d.date+".json")
}

// SaveText writes the extracted text of a page to "<derived-name>.txt".
// File names are derived deterministically from the URL, so re-processing a
// URL overwrites its own file. Distinct URLs can collide on a derived name;
// the collision is logged and the later write wins.
func (d *Dir) SaveText(pageURL, content string) error {
	name := Filename(pageURL) + ".txt"
	path := filepath.Join(d.path, name)

	if _, err := os.Stat(path); err == nil {
		d.logger.Debug("overwriting existing text file", "file", name, "url", pageURL)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write text file %s: %w", name, err)
	}
	return nil
}

// WriteIndex serializes the records as one JSON array to the index file and
// returns its path. With no records it writes nothing and returns
// ErrNoRecords.
func (d *Dir) WriteIndex(records []model.ScrapedRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal index: %w", err)
	}
	data = append(data, '\n')

	path := d.IndexPath()
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write index file: %w", err)
	}
	return path, nil
}

// Load reads a JSON index file back into records.
func Load(path string) ([]model.ScrapedRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided index path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var records []model.ScrapedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse index file %s: %w", path, err)
	}
	return records, nil
}

// LoadLatest finds the newest dated directory under root that contains an
// index file and loads it. It returns the records and the index file path.
func LoadLatest(root string) ([]model.ScrapedRecord, string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read output root %s: %w", root, err)
	}

	var latest string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, err := time.Parse(DateLayout, name); err != nil {
			continue
		}
		indexPath := filepath.Join(root, name, indexFilePrefix+name+".json")
		if _, err := os.Stat(indexPath); err != nil {
			continue
		}
		// Dates in DateLayout sort lexicographically
		if name > latest {
			latest = name
		}
	}

	if latest == "" {
		return nil, "", fmt.Errorf("%w under %s", ErrNoIndex, root)
	}

	path := filepath.Join(root, latest, indexFilePrefix+latest+".json")
	records, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return records, path, nil
}
