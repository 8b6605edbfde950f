package prediction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/prediction"
)

// CreateMarketInput opens a market
type CreateMarketInput struct {
	Question   string
	PropertyID *uuid.UUID
	ClosesAt   time.Time
	CreatedBy  uuid.UUID
}

// PlaceStakeInput takes a position
type PlaceStakeInput struct {
	MarketID   uuid.UUID
	InvestorID uuid.UUID
	Side       string
	Amount     decimal.Decimal
}

// ListMarketsInput filters market listings
type ListMarketsInput struct {
	Page       int
	PageSize   int
	PropertyID *uuid.UUID
	Status     string
}

// MarketResponse is the wire form of a market
type MarketResponse struct {
	ID             uuid.UUID       `json:"id"`
	Question       string          `json:"question"`
	PropertyID     *uuid.UUID      `json:"property_id,omitempty"`
	ClosesAt       time.Time       `json:"closes_at"`
	Status         string          `json:"status"`
	Outcome        *string         `json:"outcome,omitempty"`
	YesPool        decimal.Decimal `json:"yes_pool"`
	NoPool         decimal.Decimal `json:"no_pool"`
	TotalPool      decimal.Decimal `json:"total_pool"`
	YesProbability decimal.Decimal `json:"yes_probability"`
	Currency       string          `json:"currency"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Version        int             `json:"version"`
}

// PositionResponse is the wire form of a position
type PositionResponse struct {
	ID         uuid.UUID       `json:"id"`
	MarketID   uuid.UUID       `json:"market_id"`
	InvestorID uuid.UUID       `json:"investor_id"`
	Side       string          `json:"side"`
	Stake      decimal.Decimal `json:"stake"`
	Payout     decimal.Decimal `json:"payout"`
	Profit     decimal.Decimal `json:"profit"`
	Refunded   bool            `json:"refunded"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SettlementResponse is a market after resolution or cancellation
type SettlementResponse struct {
	Market    MarketResponse     `json:"market"`
	Positions []PositionResponse `json:"positions"`
}

// ToMarketResponse converts a domain market
func ToMarketResponse(m *prediction.Market) MarketResponse {
	resp := MarketResponse{
		ID:             m.ID,
		Question:       m.Question,
		PropertyID:     m.PropertyID,
		ClosesAt:       m.ClosesAt,
		Status:         string(m.Status),
		YesPool:        m.YesPool.Amount(),
		NoPool:         m.NoPool.Amount(),
		TotalPool:      m.TotalPool().Amount(),
		YesProbability: m.ImpliedYesProbability(),
		Currency:       string(m.YesPool.Currency()),
		ResolvedAt:     m.ResolvedAt,
		CreatedAt:      m.CreatedAt,
		Version:        m.GetVersion(),
	}
	if m.Outcome != nil {
		o := string(*m.Outcome)
		resp.Outcome = &o
	}
	return resp
}

// ToPositionResponse converts a domain position
func ToPositionResponse(p prediction.Position) PositionResponse {
	return PositionResponse{
		ID:         p.ID,
		MarketID:   p.MarketID,
		InvestorID: p.InvestorID,
		Side:       string(p.Side),
		Stake:      p.Stake.Amount(),
		Payout:     p.Payout.Amount(),
		Profit:     p.Profit().Amount(),
		Refunded:   p.Refunded,
		CreatedAt:  p.CreatedAt,
	}
}

func toPositionResponses(ps []prediction.Position) []PositionResponse {
	out := make([]PositionResponse, len(ps))
	for i, p := range ps {
		out[i] = ToPositionResponse(p)
	}
	return out
}
