package ports

import (
	"context"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// DocumentRepository defines the interface for planner document storage
type DocumentRepository interface {
	// Load returns the persisted document, normalized, or the default
	// document when nothing has been persisted yet.
	Load(ctx context.Context) (*entities.PlannerDocument, error)
	// Save replaces the persisted document as a whole.
	Save(ctx context.Context, doc *entities.PlannerDocument) error
	// HealthCheck reports whether the backing storage is reachable.
	HealthCheck(ctx context.Context) error
	// Location describes where the document lives, for logs and errors.
	Location() string
}
