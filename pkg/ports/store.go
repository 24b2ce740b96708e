package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// DocumentStore persists condition trees keyed by their owner id
// (typically the transition or branch node owning the condition).
// A nil tree is a valid document: it means "always true".
type DocumentStore interface {
	// Save persists the condition for a given owner id.
	Save(ctx context.Context, id string, expr *domain.ConditionExpression) error

	// Load retrieves the condition for a given owner id.
	// Returns domain.ErrDocumentNotFound if no document exists.
	Load(ctx context.Context, id string) (*domain.ConditionExpression, error)

	// Delete removes the condition for a given owner id.
	Delete(ctx context.Context, id string) error

	// List returns the owner ids of all stored conditions.
	List(ctx context.Context) ([]string, error)
}
