// Package materials loads teaching material into the database: weekly PDFs
// laid out by level, a YAML manifest of files, or a directory of JSON seeds.
package materials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"

	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/database"
	"github.com/edgard/arabictutor/internal/logger"
)

// ErrNoText is returned when a file yields no text.
var ErrNoText = errors.New("no text extracted")

// Store is the subset of database.Store the importer writes to.
type Store interface {
	UpsertMaterial(ctx context.Context, material *database.Material) error
	ReplaceAllMaterials(ctx context.Context, materials []database.Material) error
}

// ExtractFunc returns the plain text of a file.
type ExtractFunc func(path string) (string, error)

// Report summarises an import.
type Report struct {
	Imported []string
	Skipped  []Skip
}

// Skip names a file that was not imported and why.
type Skip struct {
	Path   string
	Reason error
}

// Importer writes materials to a Store.
type Importer struct {
	store   Store
	extract ExtractFunc
	log     *slog.Logger
}

// NewImporter creates an Importer that reads PDFs with ledongthuc/pdf.
func NewImporter(store Store, log *slog.Logger) *Importer {
	if log == nil {
		log = logger.Discard()
	}
	return &Importer{store: store, extract: ExtractText, log: log.With("component", "materials")}
}

// PDFFileName is the file holding a level's lesson for week n.
func PDFFileName(level string, week int) string {
	return fmt.Sprintf("%s_week%02d.pdf", level, week)
}

// ImportPDFs imports <dir>/<level>_weekNN.pdf for every level and week.
// Missing files and files without text are reported and skipped.
func (im *Importer) ImportPDFs(ctx context.Context, dir string) (*Report, error) {
	report := &Report{}
	for _, level := range chat.Levels {
		for week := 1; week <= chat.WeeksPerLevel; week++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			path := filepath.Join(dir, PDFFileName(level, week))
			if _, err := os.Stat(path); err != nil {
				im.log.DebugContext(ctx, "File does not exist", "path", path)
				report.Skipped = append(report.Skipped, Skip{Path: path, Reason: fs.ErrNotExist})
				continue
			}
			if err := im.importFile(ctx, level, chat.WeekID(week), path); err != nil {
				if isStoreError(err) {
					return report, err
				}
				report.Skipped = append(report.Skipped, Skip{Path: path, Reason: err})
				continue
			}
			report.Imported = append(report.Imported, path)
		}
	}
	return report, nil
}

// ManifestEntry maps one file to a level and week.
type ManifestEntry struct {
	Level string `yaml:"level"`
	Week  string `yaml:"week"`
	File  string `yaml:"file"`
}

// Manifest lists material files to import.
type Manifest struct {
	Materials []ManifestEntry `yaml:"materials"`
}

// ImportManifest imports the files listed in a YAML manifest. Relative file
// paths are resolved against the manifest's directory. Files ending in .pdf
// are extracted, anything else is read as UTF-8 text.
func (im *Importer) ImportManifest(ctx context.Context, path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	report := &Report{}
	for i, e := range m.Materials {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.Level == "" || e.Week == "" || e.File == "" {
			return report, fmt.Errorf("manifest entry %d: level, week and file are required", i)
		}
		file := e.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}
		if err := im.importFile(ctx, e.Level, e.Week, file); err != nil {
			if isStoreError(err) {
				return report, err
			}
			report.Skipped = append(report.Skipped, Skip{Path: file, Reason: err})
			continue
		}
		report.Imported = append(report.Imported, file)
	}
	return report, nil
}

// Seed is one JSON seed file.
type Seed struct {
	Level   string `json:"level"`
	Week    string `json:"week"`
	Content string `json:"content"`
}

// SeedJSON replaces all materials with the *.json files in dir.
func (im *Importer) SeedJSON(ctx context.Context, dir string) (*Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list seed files: %w", err)
	}
	sort.Strings(paths)

	report := &Report{}
	var rows []database.Material
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		var s Seed
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
		im.log.InfoContext(ctx, "Reading seed file", "path", p, "level", s.Level, "week", s.Week)
		rows = append(rows, database.Material{Level: s.Level, Week: s.Week, Content: s.Content})
		report.Imported = append(report.Imported, p)
	}

	if err := im.store.ReplaceAllMaterials(ctx, rows); err != nil {
		return nil, &storeError{err}
	}
	return report, nil
}

func (im *Importer) importFile(ctx context.Context, level, week, path string) error {
	var text string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = im.extract(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		im.log.WarnContext(ctx, "Error reading file", "path", path, "error", err)
		return err
	}
	if strings.TrimSpace(text) == "" {
		im.log.WarnContext(ctx, "No content extracted", "path", path)
		return ErrNoText
	}

	if err := im.store.UpsertMaterial(ctx, &database.Material{Level: level, Week: week, Content: text}); err != nil {
		return &storeError{err}
	}
	im.log.InfoContext(ctx, "Added file to database", "path", path, "level", level, "week", week)
	return nil
}

// ExtractText returns the plain text of every page of a PDF.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read text from %s: %w", path, err)
	}
	return buf.String(), nil
}

// storeError marks a failure writing to the database, which aborts an import.
type storeError struct{ err error }

func (e *storeError) Error() string { return "failed to store material: " + e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

func isStoreError(err error) bool {
	var se *storeError
	return errors.As(err, &se)
}
