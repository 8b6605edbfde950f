package prediction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Filter narrows market listings
type Filter struct {
	shared.Filter
	PropertyID *uuid.UUID
	Status     *MarketStatus
}

// Repository persists markets and their positions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Market, error)
	FindAll(ctx context.Context, filter Filter) ([]Market, int64, error)
	// FindDueForClose returns open markets whose close time is at or before now
	FindDueForClose(ctx context.Context, now time.Time, limit int) ([]Market, error)
	FindPositions(ctx context.Context, marketID uuid.UUID) ([]Position, error)
	FindPositionsByInvestor(ctx context.Context, investorID uuid.UUID) ([]Position, error)
	// SaveWithPosition stores the market (version checked) and a new position atomically
	SaveWithPosition(ctx context.Context, m *Market, p *Position) error
	// SaveSettlement stores the market (version checked) and every settled position atomically
	SaveSettlement(ctx context.Context, m *Market, positions []Position) error
	Save(ctx context.Context, m *Market) error
	SaveWithLock(ctx context.Context, m *Market) error
}
