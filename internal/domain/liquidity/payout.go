package liquidity

import (
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// QuoteRequest holds the inputs of a payout calculation
type QuoteRequest struct {
	Tokens        int64
	TokenValue    valueobject.Money
	HoldingMonths int
}

// PayoutQuote is the result of a payout calculation.
// FeeAmount + NetPayout always equals GrossValue exactly.
type PayoutQuote struct {
	Tokens        int64             `json:"tokens"`
	TokenValue    valueobject.Money `json:"token_value"`
	HoldingMonths int               `json:"holding_months"`
	Tier          FeeTier           `json:"tier"`
	GrossValue    valueobject.Money `json:"gross_value"`
	FeeAmount     valueobject.Money `json:"fee_amount"`
	NetPayout     valueobject.Money `json:"net_payout"`
}

// CalculatePayout selects the fee tier for the holding period and splits the
// gross token value into fee and net payout.
//
//	gross = tokens × token_value
//	fee   = gross × fee_percent / 100, rounded to cents
//	net   = gross − fee
//
// tiers need not be sorted and are not modified. An empty tier list is an
// error rather than a zero fee.
func CalculatePayout(tiers []FeeTier, req QuoteRequest) (PayoutQuote, error) {
	if len(tiers) == 0 {
		return PayoutQuote{}, ErrNoFeeTiers
	}
	if req.Tokens < 0 {
		return PayoutQuote{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "tokens cannot be negative")
	}
	if req.HoldingMonths < 0 {
		return PayoutQuote{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "holding_months cannot be negative")
	}
	if req.TokenValue.IsNegative() {
		return PayoutQuote{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "token_value cannot be negative")
	}
	if req.TokenValue.Currency() == "" {
		req.TokenValue = valueobject.USDAmount(req.TokenValue.Amount())
	}

	tier := selectTier(sortedTiers(tiers), req.HoldingMonths)

	gross := req.TokenValue.MultiplyByInt(req.Tokens)
	fee := gross.Percentage(tier.FeePercent).Round(valueobject.CentsPlaces)
	net, err := gross.Subtract(fee)
	if err != nil {
		return PayoutQuote{}, err
	}

	return PayoutQuote{
		Tokens:        req.Tokens,
		TokenValue:    req.TokenValue,
		HoldingMonths: req.HoldingMonths,
		Tier:          tier,
		GrossValue:    gross,
		FeeAmount:     fee,
		NetPayout:     net,
	}, nil
}

// EffectiveFeeRate returns fee/gross as a percentage, zero for empty quotes
func (q PayoutQuote) EffectiveFeeRate() decimal.Decimal {
	if q.GrossValue.IsZero() {
		return decimal.Zero
	}
	return q.FeeAmount.Amount().Div(q.GrossValue.Amount()).Mul(hundred)
}
