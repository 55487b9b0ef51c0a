package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// DocumentRepositoryImpl implements the DocumentRepository interface on a
// single JSON file
type DocumentRepositoryImpl struct {
	path string
}

// NewDocumentRepository creates a new file-backed document repository
func NewDocumentRepository(path string) ports.DocumentRepository {
	return &DocumentRepositoryImpl{path: path}
}

func (r *DocumentRepositoryImpl) Location() string {
	return r.path
}

func (r *DocumentRepositoryImpl) Load(ctx context.Context) (*entities.PlannerDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.NewDefaultDocument(), nil
		}
		return nil, &entities.PersistenceError{Op: "read", Path: r.path, Err: err}
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		var internal *entities.InternalError
		if errors.As(err, &internal) {
			return nil, fmt.Errorf("load %s: %w", r.path, err)
		}
		return nil, &entities.PersistenceError{Op: "parse", Path: r.path, Err: err}
	}

	return doc, nil
}

func (r *DocumentRepositoryImpl) Save(ctx context.Context, doc *entities.PlannerDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeDocument(doc)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Path: r.path, Err: err}
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &entities.PersistenceError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return &entities.PersistenceError{Op: "write", Path: r.path, Err: err}
	}

	return nil
}

func (r *DocumentRepositoryImpl) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Save creates the directory on first write.
			return nil
		}
		return fmt.Errorf("storage health check failed: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage health check failed: %s is not a directory", dir)
	}

	return nil
}

// EncodeDocument renders the document the way it is stored on disk:
// two-space indented JSON.
func EncodeDocument(doc *entities.PlannerDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDocument parses stored bytes and normalizes them into a well-formed
// document. Comments and trailing commas are accepted so the file can be
// edited by hand.
func DecodeDocument(data []byte) (*entities.PlannerDocument, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var top any
	if err := json.Unmarshal(standardized, &top); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	fields, ok := top.(map[string]any)
	if !ok {
		return nil, &entities.InternalError{
			Message: fmt.Sprintf("planner document must be a JSON object, got %s", jsonKind(top)),
			Err:     entities.ErrMalformedState,
		}
	}

	return normalize(fields), nil
}

// normalize fills in whatever the stored document lacks. Fields that are
// missing or of the wrong type fall back to their defaults.
func normalize(fields map[string]any) *entities.PlannerDocument {
	doc := entities.NewDefaultDocument()

	if goals, ok := fields["sixMonthGoals"].([]any); ok {
		for i := 0; i < entities.GoalCount && i < len(goals); i++ {
			if text, ok := goals[i].(string); ok {
				doc.SixMonthGoals[i] = text
			}
		}
	}

	if checks, ok := fields["sixMonthChecks"].(map[string]any); ok {
		doc.SixMonthChecks = checkMapFrom(checks)
	}

	doc.MonthlyChecks = monthChecksFrom(fields["monthlyChecks"])
	doc.DateChecks = monthChecksFrom(fields["dateChecks"])

	return doc
}

func monthChecksFrom(v any) entities.MonthChecks {
	months := entities.MonthChecks{}
	if raw, ok := v.(map[string]any); ok {
		for id, inner := range raw {
			checks, ok := inner.(map[string]any)
			if !ok {
				months[entities.MonthID(id)] = entities.CheckMap{}
				continue
			}
			months[entities.MonthID(id)] = checkMapFrom(checks)
		}
	}
	return months.EnsureMonths()
}

// checkMapFrom keeps boolean entries only; anything else reads as unchecked.
func checkMapFrom(raw map[string]any) entities.CheckMap {
	checks := make(entities.CheckMap, len(raw))
	for key, v := range raw {
		if b, ok := v.(bool); ok {
			checks[key] = b
		}
	}
	return checks
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
