package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Filter narrows property listings
type Filter struct {
	shared.Filter
	Status *Status
	Type   *PropertyType
	// Listed hides drafts from investors
	Listed bool
}

// Repository persists properties and their documents
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Property, error)
	FindAll(ctx context.Context, filter Filter) ([]Property, int64, error)
	Save(ctx context.Context, p *Property) error
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, p *Property) error
	SaveDocument(ctx context.Context, doc *Document) error
	FindDocument(ctx context.Context, propertyID, documentID uuid.UUID) (*Document, error)
}
