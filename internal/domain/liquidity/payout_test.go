package liquidity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

func usd(v string) valueobject.Money {
	return valueobject.USDAmount(decimal.RequireFromString(v))
}

func TestCalculatePayout_Examples(t *testing.T) {
	tests := []struct {
		name          string
		holdingMonths int
		wantPercent   string
		wantFee       string
		wantNet       string
	}{
		{"second tier", 18, "7", "350", "4650"},
		{"open ended tier", 40, "3", "150", "4850"},
		{"first tier", 0, "10", "500", "4500"},
		{"boundary goes to next tier", 24, "5", "250", "4750"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := CalculatePayout(standardTiers(), QuoteRequest{
				Tokens:        100,
				TokenValue:    usd("50"),
				HoldingMonths: tt.holdingMonths,
			})
			require.NoError(t, err)

			assert.True(t, q.GrossValue.Equals(usd("5000")), q.GrossValue.String())
			assert.Equal(t, tt.wantPercent, q.Tier.FeePercent.String())
			assert.True(t, q.FeeAmount.Equals(usd(tt.wantFee)), q.FeeAmount.String())
			assert.True(t, q.NetPayout.Equals(usd(tt.wantNet)), q.NetPayout.String())
		})
	}
}

func TestCalculatePayout_UnsortedInput(t *testing.T) {
	tiers := standardTiers()
	reversed := []FeeTier{tiers[3], tiers[2], tiers[1], tiers[0]}

	q, err := CalculatePayout(reversed, QuoteRequest{Tokens: 100, TokenValue: usd("50"), HoldingMonths: 18})
	require.NoError(t, err)
	assert.Equal(t, "7", q.Tier.FeePercent.String())
	assert.Equal(t, 36, reversed[0].MinMonths, "input must not be reordered")
}

func TestCalculatePayout_EmptyTiers(t *testing.T) {
	_, err := CalculatePayout(nil, QuoteRequest{Tokens: 1, TokenValue: usd("1")})
	assert.ErrorIs(t, err, ErrNoFeeTiers)

	_, err = CalculatePayout([]FeeTier{}, QuoteRequest{Tokens: 1, TokenValue: usd("1")})
	assert.ErrorIs(t, err, ErrNoFeeTiers)
}

func TestCalculatePayout_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  QuoteRequest
	}{
		{"negative tokens", QuoteRequest{Tokens: -1, TokenValue: usd("1")}},
		{"negative months", QuoteRequest{Tokens: 1, TokenValue: usd("1"), HoldingMonths: -1}},
		{"negative value", QuoteRequest{Tokens: 1, TokenValue: usd("-1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculatePayout(standardTiers(), tt.req)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestCalculatePayout_ZeroCurrencyDefaultsToUSD(t *testing.T) {
	q, err := CalculatePayout(standardTiers(), QuoteRequest{Tokens: 2, HoldingMonths: 5})
	require.NoError(t, err)
	assert.Equal(t, valueobject.USD, q.GrossValue.Currency())
	assert.True(t, q.NetPayout.IsZero())
}

// fee + net must equal gross exactly for every holding period and a spread
// of awkward token values.
func TestCalculatePayout_FeePlusNetEqualsGross(t *testing.T) {
	values := []string{"0", "0.01", "1", "33.33", "49.995", "1234.5678", "99999.99"}
	tiers := append(standardTiers(), NewFeeTier(6, months(9), decimal.RequireFromString("12.345")))

	for _, v := range values {
		for tokens := int64(0); tokens <= 1000; tokens += 137 {
			for m := 0; m <= 60; m++ {
				q, err := CalculatePayout(tiers, QuoteRequest{Tokens: tokens, TokenValue: usd(v), HoldingMonths: m})
				require.NoError(t, err)

				sum, err := q.FeeAmount.Add(q.NetPayout)
				require.NoError(t, err)
				require.True(t, sum.Equals(q.GrossValue), "value=%s tokens=%d months=%d", v, tokens, m)
			}
		}
	}
}

func TestCalculatePayout_ExactlyOneTierMatches(t *testing.T) {
	s, err := NewFeeSchedule(standardTiers())
	require.NoError(t, err)
	require.True(t, s.Covers())

	for m := 0; m <= 120; m++ {
		matches := 0
		for _, tier := range s.Tiers() {
			if tier.Contains(m) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "months=%d", m)
	}
}

func TestPayoutQuote_EffectiveFeeRate(t *testing.T) {
	s, err := NewFeeSchedule(standardTiers())
	require.NoError(t, err)

	q, err := s.Quote(QuoteRequest{Tokens: 100, TokenValue: usd("50"), HoldingMonths: 18})
	require.NoError(t, err)
	assert.Equal(t, "7", q.EffectiveFeeRate().String())

	assert.True(t, PayoutQuote{}.EffectiveFeeRate().IsZero())
}
