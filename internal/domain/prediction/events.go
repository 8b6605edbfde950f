package prediction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// AggregateTypeMarket is the aggregate type carried by market events
const AggregateTypeMarket = "PredictionMarket"

const (
	EventTypeMarketOpened    = "MarketOpened"
	EventTypeMarketClosed    = "MarketClosed"
	EventTypeMarketResolved  = "MarketResolved"
	EventTypeMarketCancelled = "MarketCancelled"
	EventTypeStakePlaced     = "StakePlaced"
)

// MarketEvent carries market lifecycle transitions
type MarketEvent struct {
	shared.BaseDomainEvent
	Status  MarketStatus    `json:"status"`
	Outcome *Side           `json:"outcome,omitempty"`
	YesPool decimal.Decimal `json:"yes_pool"`
	NoPool  decimal.Decimal `json:"no_pool"`
}

func newMarketEvent(eventType string, m *Market) *MarketEvent {
	return &MarketEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeMarket, m.ID),
		Status:          m.Status,
		Outcome:         m.Outcome,
		YesPool:         m.YesPool.Amount(),
		NoPool:          m.NoPool.Amount(),
	}
}

// StakePlacedEvent is raised for each new position
type StakePlacedEvent struct {
	shared.BaseDomainEvent
	PositionID  uuid.UUID       `json:"position_id"`
	InvestorID  uuid.UUID       `json:"investor_id"`
	Side        Side            `json:"side"`
	Stake       decimal.Decimal `json:"stake"`
	Probability decimal.Decimal `json:"yes_probability"`
}

func newStakePlacedEvent(m *Market, p *Position) *StakePlacedEvent {
	return &StakePlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStakePlaced, AggregateTypeMarket, m.ID),
		PositionID:      p.ID,
		InvestorID:      p.InvestorID,
		Side:            p.Side,
		Stake:           p.Stake.Amount(),
		Probability:     m.ImpliedYesProbability(),
	}
}
