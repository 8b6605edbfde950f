package prediction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// Side is a market outcome
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// IsValid checks if the side is YES or NO
func (s Side) IsValid() bool { return s == SideYes || s == SideNo }

// MarketStatus is the lifecycle state of a market
type MarketStatus string

const (
	MarketStatusOpen      MarketStatus = "OPEN"
	MarketStatusClosed    MarketStatus = "CLOSED"
	MarketStatusResolved  MarketStatus = "RESOLVED"
	MarketStatusCancelled MarketStatus = "CANCELLED"
)

// IsValid checks if the status is known
func (s MarketStatus) IsValid() bool {
	switch s {
	case MarketStatusOpen, MarketStatusClosed, MarketStatusResolved, MarketStatusCancelled:
		return true
	}
	return false
}

// CanCancel returns true if the market has not been settled yet
func (s MarketStatus) CanCancel() bool {
	return s == MarketStatusOpen || s == MarketStatusClosed
}

// CanResolve returns true once staking has stopped. Open markets must be
// closed first so no stake lands after the outcome is known.
func (s MarketStatus) CanResolve() bool {
	return s == MarketStatusClosed
}

// Market is a yes/no question about a property (or the market at large)
// with stakes pooled per side.
type Market struct {
	shared.BaseAggregateRoot
	Question   string
	PropertyID *uuid.UUID
	CreatedBy  uuid.UUID
	ClosesAt   time.Time
	Status     MarketStatus
	Outcome    *Side
	YesPool    valueobject.Money
	NoPool     valueobject.Money
	ResolvedAt *time.Time
}

// NewMarket opens a market
func NewMarket(question string, propertyID *uuid.UUID, createdBy uuid.UUID, closesAt, now time.Time) (*Market, error) {
	question = strings.TrimSpace(question)
	if len(question) < 10 || len(question) > 500 {
		return nil, shared.NewDomainError("INVALID_QUESTION", "Question must be between 10 and 500 characters")
	}
	if !closesAt.After(now) {
		return nil, shared.NewDomainError("INVALID_CLOSE_TIME", "Close time must be in the future")
	}
	m := &Market{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Question:          question,
		PropertyID:        propertyID,
		CreatedBy:         createdBy,
		ClosesAt:          closesAt,
		Status:            MarketStatusOpen,
		YesPool:           valueobject.Zero(valueobject.DefaultCurrency),
		NoPool:            valueobject.Zero(valueobject.DefaultCurrency),
	}
	m.AddDomainEvent(newMarketEvent(EventTypeMarketOpened, m))
	return m, nil
}

// AcceptsStakes reports whether positions can be taken at now
func (m *Market) AcceptsStakes(now time.Time) bool {
	return m.Status == MarketStatusOpen && now.Before(m.ClosesAt)
}

// PlaceStake takes a position and adds it to the side's pool
func (m *Market) PlaceStake(investorID uuid.UUID, side Side, stake valueobject.Money, minStake decimal.Decimal, now time.Time) (*Position, error) {
	if !m.AcceptsStakes(now) {
		return nil, shared.NewDomainError("MARKET_CLOSED", "Market is not accepting stakes")
	}
	if !side.IsValid() {
		return nil, shared.NewDomainError("INVALID_SIDE", fmt.Sprintf("Unknown side %q", side))
	}
	if stake.Currency() != m.YesPool.Currency() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Stake currency does not match market")
	}
	if !stake.IsPositive() || stake.Amount().LessThan(minStake) {
		return nil, shared.NewDomainError("INVALID_STAKE", fmt.Sprintf("Stake must be at least %s", minStake.StringFixed(2)))
	}
	pos := &Position{
		ID:         uuid.New(),
		MarketID:   m.ID,
		InvestorID: investorID,
		Side:       side,
		Stake:      stake,
		Payout:     valueobject.Zero(stake.Currency()),
		CreatedAt:  now,
	}
	if side == SideYes {
		m.YesPool, _ = m.YesPool.Add(stake)
	} else {
		m.NoPool, _ = m.NoPool.Add(stake)
	}
	m.Touch()
	m.AddDomainEvent(newStakePlacedEvent(m, pos))
	return pos, nil
}

// Close stops accepting stakes
func (m *Market) Close(now time.Time) error {
	if m.Status != MarketStatusOpen {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot close market in %s status", m.Status))
	}
	m.Status = MarketStatusClosed
	m.UpdatedAt = now
	m.AddDomainEvent(newMarketEvent(EventTypeMarketClosed, m))
	return nil
}

// TotalPool is the sum of both sides
func (m *Market) TotalPool() valueobject.Money {
	total, _ := m.YesPool.Add(m.NoPool)
	return total
}

// ImpliedYesProbability is yes_pool / total, 0.5 for an empty market
func (m *Market) ImpliedYesProbability() decimal.Decimal {
	total := m.TotalPool().Amount()
	if total.IsZero() {
		return decimal.NewFromFloat(0.5)
	}
	return m.YesPool.Amount().Div(total).Round(4)
}

func (m *Market) pool(side Side) valueobject.Money {
	if side == SideYes {
		return m.YesPool
	}
	return m.NoPool
}

// Resolve settles the market on outcome and computes every position's payout.
// Winners split the pool less the platform fee in proportion to their stake.
// When nobody backed the winning side every stake is refunded in full.
func (m *Market) Resolve(outcome Side, positions []Position, feePercent decimal.Decimal, now time.Time) ([]Position, error) {
	if !m.Status.CanResolve() {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot resolve market in %s status", m.Status))
	}
	if !outcome.IsValid() {
		return nil, shared.NewDomainError("INVALID_SIDE", fmt.Sprintf("Unknown outcome %q", outcome))
	}
	if feePercent.IsNegative() || feePercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Platform fee must be in [0, 100)")
	}

	settled := make([]Position, len(positions))
	winningStake := m.pool(outcome).Amount()
	if winningStake.IsZero() {
		for i, p := range positions {
			p.Payout = p.Stake
			p.Refunded = true
			settled[i] = p
		}
	} else {
		distributable := m.TotalPool().Percentage(decimal.NewFromInt(100).Sub(feePercent))
		for i, p := range positions {
			p.Payout = valueobject.Zero(p.Stake.Currency())
			if p.Side == outcome {
				p.Payout = distributable.
					Multiply(p.Stake.Amount().Div(winningStake)).
					Round(valueobject.CentsPlaces)
			}
			settled[i] = p
		}
	}

	m.Status = MarketStatusResolved
	m.Outcome = &outcome
	m.ResolvedAt = &now
	m.UpdatedAt = now
	m.AddDomainEvent(newMarketEvent(EventTypeMarketResolved, m))
	return settled, nil
}

// Cancel voids the market and refunds every stake
func (m *Market) Cancel(positions []Position, now time.Time) ([]Position, error) {
	if !m.Status.CanCancel() {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot cancel market in %s status", m.Status))
	}
	refunded := make([]Position, len(positions))
	for i, p := range positions {
		p.Payout = p.Stake
		p.Refunded = true
		refunded[i] = p
	}
	m.Status = MarketStatusCancelled
	m.UpdatedAt = now
	m.AddDomainEvent(newMarketEvent(EventTypeMarketCancelled, m))
	return refunded, nil
}
