package investment

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Filter narrows investment listings
type Filter struct {
	shared.Filter
	InvestorID *uuid.UUID
	PropertyID *uuid.UUID
	Status     *Status
}

// Repository persists investments
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Investment, error)
	FindAll(ctx context.Context, filter Filter) ([]Investment, int64, error)
	// FindSettledByInvestor returns every settled investment of the investor
	FindSettledByInvestor(ctx context.Context, investorID uuid.UUID) ([]Investment, error)
	// CountSettledByInvestor is used to detect a first investment
	CountSettledByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error)
	Save(ctx context.Context, i *Investment) error
	SaveWithLock(ctx context.Context, i *Investment) error
}
