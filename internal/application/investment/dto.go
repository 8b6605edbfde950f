package investment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// BuyInput purchases tokens of a property
type BuyInput struct {
	InvestorID uuid.UUID
	PropertyID uuid.UUID
	Tokens     int64
}

// ListInput filters investment listings
type ListInput struct {
	Page       int
	PageSize   int
	InvestorID *uuid.UUID
	PropertyID *uuid.UUID
	Status     string
}

// InvestmentResponse is the wire form of an investment
type InvestmentResponse struct {
	ID               uuid.UUID         `json:"id"`
	InvestorID       uuid.UUID         `json:"investor_id"`
	PropertyID       uuid.UUID         `json:"property_id"`
	Tokens           int64             `json:"tokens"`
	HeldTokens       int64             `json:"held_tokens"`
	ReservedTokens   int64             `json:"reserved_tokens"`
	RedeemedTokens   int64             `json:"redeemed_tokens"`
	RedeemableTokens int64             `json:"redeemable_tokens"`
	TokenPrice       valueobject.Money `json:"token_price"`
	TotalAmount      valueobject.Money `json:"total_amount"`
	Status           string            `json:"status"`
	SettledAt        *time.Time        `json:"settled_at,omitempty"`
	FailureReason    string            `json:"failure_reason,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Version          int               `json:"version"`
}

// ToInvestmentResponse converts a domain investment
func ToInvestmentResponse(i *investment.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:               i.ID,
		InvestorID:       i.InvestorID,
		PropertyID:       i.PropertyID,
		Tokens:           i.Tokens,
		HeldTokens:       i.HeldTokens(),
		ReservedTokens:   i.ReservedTokens,
		RedeemedTokens:   i.RedeemedTokens,
		RedeemableTokens: i.RedeemableTokens(),
		TokenPrice:       i.TokenPrice,
		TotalAmount:      i.TotalAmount,
		Status:           string(i.Status),
		SettledAt:        i.SettledAt,
		FailureReason:    i.FailureReason,
		CreatedAt:        i.CreatedAt,
		Version:          i.GetVersion(),
	}
}

// HoldingSummary values one settled investment
type HoldingSummary struct {
	InvestmentID       uuid.UUID         `json:"investment_id"`
	PropertyID         uuid.UUID         `json:"property_id"`
	PropertyName       string            `json:"property_name"`
	HeldTokens         int64             `json:"held_tokens"`
	ReservedTokens     int64             `json:"reserved_tokens"`
	CostBasis          valueobject.Money `json:"cost_basis"`
	CurrentValue       valueobject.Money `json:"current_value"`
	HoldingMonths      int               `json:"holding_months"`
	FeePercent         decimal.Decimal   `json:"fee_percent"`
	EstimatedNetPayout valueobject.Money `json:"estimated_net_payout"`
}

// RedemptionSummary is an open redemption in the portfolio
type RedemptionSummary struct {
	ID               uuid.UUID         `json:"id"`
	RedemptionNumber string            `json:"redemption_number"`
	InvestmentID     uuid.UUID         `json:"investment_id"`
	Tokens           int64             `json:"tokens"`
	Status           string            `json:"status"`
	NetPayout        valueobject.Money `json:"net_payout"`
}

// PredictionSummary aggregates the investor's market positions
type PredictionSummary struct {
	Positions   int               `json:"positions"`
	TotalStaked valueobject.Money `json:"total_staked"`
	TotalPayout valueobject.Money `json:"total_payout"`
}

// PortfolioSummary is the investor dashboard
type PortfolioSummary struct {
	InvestorID         uuid.UUID           `json:"investor_id"`
	Holdings           []HoldingSummary    `json:"holdings"`
	TotalInvested      valueobject.Money   `json:"total_invested"`
	CurrentValue       valueobject.Money   `json:"current_value"`
	EstimatedNetPayout valueobject.Money   `json:"estimated_net_payout"`
	OpenRedemptions    []RedemptionSummary `json:"open_redemptions"`
	PendingPayout      valueobject.Money   `json:"pending_payout"`
	Predictions        PredictionSummary   `json:"predictions"`
	GeneratedAt        time.Time           `json:"generated_at"`
}
