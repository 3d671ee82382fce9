// Package output writes the static JSON artifacts and loads last-known-good
// records for fallback.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Writer manages the public/data artifact tree:
//
//	latest.json          all records in one array
//	summary.json         derived highlights
//	resorts/<slug>.json  one file per resort (also the fallback source)
type Writer struct {
	outputDir  string
	resortsDir string
}

// New creates a Writer rooted at outputDir, creating the directory tree.
// Failure here is fatal for the run since no output could be produced.
func New(outputDir string) (*Writer, error) {
	resortsDir := filepath.Join(outputDir, "resorts")
	if err := os.MkdirAll(resortsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{outputDir: outputDir, resortsDir: resortsDir}, nil
}

// LoadResort loads the previously written record for slug, for
// last-known-good fallback. Returns nil without error when no previous
// record exists; an unreadable file is also treated as absent.
func (w *Writer) LoadResort(slug string) *resort.Conditions {
	path := filepath.Join(w.resortsDir, slug+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read previous record", logger.Fields{
				"slug":  slug,
				"error": err.Error(),
			})
		}
		return nil
	}

	var c resort.Conditions
	if err := json.Unmarshal(data, &c); err != nil {
		logger.Warn("Failed to parse previous record", logger.Fields{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil
	}
	return &c
}

// WriteResort writes one per-resort file.
func (w *Writer) WriteResort(c *resort.Conditions) error {
	return writeJSONAtomic(filepath.Join(w.resortsDir, c.Slug+".json"), c)
}

// latestFile is the shape of latest.json.
type latestFile struct {
	GeneratedAtUTC time.Time            `json:"generated_at_utc"`
	Resorts        []*resort.Conditions `json:"resorts"`
}

// WriteLatest writes latest.json with all records.
func (w *Writer) WriteLatest(resorts []*resort.Conditions) error {
	path := filepath.Join(w.outputDir, "latest.json")
	data := latestFile{
		GeneratedAtUTC: time.Now().UTC(),
		Resorts:        resorts,
	}
	if err := writeJSONAtomic(path, data); err != nil {
		return err
	}
	logger.Info("Wrote latest.json", logger.Fields{"resorts": len(resorts)})
	return nil
}

// WriteSummary writes summary.json.
func (w *Writer) WriteSummary(s *resort.Summary) error {
	return writeJSONAtomic(filepath.Join(w.outputDir, "summary.json"), s)
}

// WriteAll writes every artifact: per-resort files first, then the
// aggregates. Any write failure aborts the run.
func (w *Writer) WriteAll(resorts []*resort.Conditions, summary *resort.Summary) error {
	for _, c := range resorts {
		if err := w.WriteResort(c); err != nil {
			return fmt.Errorf("writing resort %s: %w", c.Slug, err)
		}
	}
	if err := w.WriteLatest(resorts); err != nil {
		return fmt.Errorf("writing latest.json: %w", err)
	}
	if err := w.WriteSummary(summary); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	return nil
}

// writeJSONAtomic writes JSON via a temp file in the target directory and
// an atomic rename, so readers never observe a partial file.
func writeJSONAtomic(path string, v interface{}) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding JSON: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}

	logger.Debug("Wrote artifact", logger.Fields{"path": path})
	return nil
}
