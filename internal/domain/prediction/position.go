package prediction

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// Position is one investor's stake on one side of a market
type Position struct {
	ID         uuid.UUID
	MarketID   uuid.UUID
	InvestorID uuid.UUID
	Side       Side
	Stake      valueobject.Money
	Payout     valueobject.Money
	Refunded   bool
	CreatedAt  time.Time
}

// Profit is payout minus stake; zero until the market settles
func (p Position) Profit() valueobject.Money {
	diff, _ := p.Payout.Subtract(p.Stake)
	return diff
}
