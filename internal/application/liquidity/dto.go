package liquidity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/liquidity"
)

// FeeTierDTO is the wire form of a fee tier
type FeeTierDTO struct {
	MinMonths  int             `json:"min_months" binding:"min=0"`
	MaxMonths  *int            `json:"max_months,omitempty"`
	FeePercent decimal.Decimal `json:"fee_percent"`
}

// FeeScheduleResponse lists the tiers in effect
type FeeScheduleResponse struct {
	Tiers  []FeeTierDTO   `json:"tiers"`
	Covers bool           `json:"covers"`
	Source ScheduleSource `json:"source"`
}

// ReplaceFeeTiersInput replaces the whole schedule
type ReplaceFeeTiersInput struct {
	Tiers     []FeeTierDTO
	UpdatedBy uuid.UUID
}

// QuoteInput is a calculator request
type QuoteInput struct {
	Tokens        int64
	TokenValue    decimal.Decimal
	HoldingMonths int
}

// QuoteResponse is a payout quote
type QuoteResponse struct {
	Tokens           int64           `json:"tokens"`
	TokenValue       decimal.Decimal `json:"token_value"`
	HoldingMonths    int             `json:"holding_months"`
	Tier             FeeTierDTO      `json:"tier"`
	GrossValue       decimal.Decimal `json:"gross_value"`
	FeeAmount        decimal.Decimal `json:"fee_amount"`
	NetPayout        decimal.Decimal `json:"net_payout"`
	EffectiveFeeRate decimal.Decimal `json:"effective_fee_rate"`
	Currency         string          `json:"currency"`
}

// CreateRedemptionInput opens a redemption request
type CreateRedemptionInput struct {
	InvestorID   uuid.UUID
	InvestmentID uuid.UUID
	Tokens       int64
	Notes        string
}

// ListRedemptionsInput filters redemption listings
type ListRedemptionsInput struct {
	Page         int
	PageSize     int
	InvestorID   *uuid.UUID
	InvestmentID *uuid.UUID
	Status       string
}

// RedemptionResponse is the wire form of a redemption request
type RedemptionResponse struct {
	ID               uuid.UUID       `json:"id"`
	RedemptionNumber string          `json:"redemption_number"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	InvestmentID     uuid.UUID       `json:"investment_id"`
	PropertyID       uuid.UUID       `json:"property_id"`
	Tokens           int64           `json:"tokens"`
	TokenValue       decimal.Decimal `json:"token_value"`
	HoldingMonths    int             `json:"holding_months"`
	Tier             FeeTierDTO      `json:"tier"`
	GrossValue       decimal.Decimal `json:"gross_value"`
	FeeAmount        decimal.Decimal `json:"fee_amount"`
	NetPayout        decimal.Decimal `json:"net_payout"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	ReviewedBy       *uuid.UUID      `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewed_at,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// StatementFile is a rendered PDF statement
type StatementFile struct {
	FileName string
	Data     []byte
}

func toTierDTO(t liquidity.FeeTier) FeeTierDTO {
	return FeeTierDTO{MinMonths: t.MinMonths, MaxMonths: t.MaxMonths, FeePercent: t.FeePercent}
}

func toTierDTOs(tiers []liquidity.FeeTier) []FeeTierDTO {
	out := make([]FeeTierDTO, len(tiers))
	for i, t := range tiers {
		out[i] = toTierDTO(t)
	}
	return out
}

func fromTierDTOs(in []FeeTierDTO) []liquidity.FeeTier {
	out := make([]liquidity.FeeTier, len(in))
	for i, t := range in {
		out[i] = liquidity.NewFeeTier(t.MinMonths, t.MaxMonths, t.FeePercent)
	}
	return out
}

// ToQuoteResponse converts a domain quote
func ToQuoteResponse(q liquidity.PayoutQuote) QuoteResponse {
	return QuoteResponse{
		Tokens:           q.Tokens,
		TokenValue:       q.TokenValue.Amount(),
		HoldingMonths:    q.HoldingMonths,
		Tier:             toTierDTO(q.Tier),
		GrossValue:       q.GrossValue.Amount(),
		FeeAmount:        q.FeeAmount.Amount(),
		NetPayout:        q.NetPayout.Amount(),
		EffectiveFeeRate: q.EffectiveFeeRate().Round(4),
		Currency:         string(q.GrossValue.Currency()),
	}
}

// ToRedemptionResponse converts a domain redemption request
func ToRedemptionResponse(r *liquidity.RedemptionRequest) RedemptionResponse {
	return RedemptionResponse{
		ID:               r.ID,
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
		InvestmentID:     r.InvestmentID,
		PropertyID:       r.PropertyID,
		Tokens:           r.Tokens,
		TokenValue:       r.TokenValue.Amount(),
		HoldingMonths:    r.HoldingMonths,
		Tier:             toTierDTO(r.Tier()),
		GrossValue:       r.GrossValue.Amount(),
		FeeAmount:        r.FeeAmount.Amount(),
		NetPayout:        r.NetPayout.Amount(),
		Currency:         string(r.NetPayout.Currency()),
		Status:           r.Status.String(),
		Notes:            r.Notes,
		ReviewedBy:       r.ReviewedBy,
		ReviewedAt:       r.ReviewedAt,
		RejectionReason:  r.RejectionReason,
		CancelledAt:      r.CancelledAt,
		PaidAt:           r.PaidAt,
		PaymentReference: r.PaymentReference,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Version:          r.Version,
	}
}
