package investment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

func settled(t *testing.T, tokens int64, at time.Time) *Investment {
	t.Helper()
	inv, err := NewInvestment(uuid.New(), uuid.New(), tokens, valueobject.USDAmount(decimal.NewFromInt(50)))
	require.NoError(t, err)
	require.NoError(t, inv.Settle(at))
	inv.ClearDomainEvents()
	return inv
}

func TestNewInvestment(t *testing.T) {
	inv, err := NewInvestment(uuid.New(), uuid.New(), 100, valueobject.USDAmount(decimal.RequireFromString("50.125")))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, inv.Status)
	assert.Equal(t, "5012.5", inv.TotalAmount.Amount().String())
	assert.Equal(t, int64(0), inv.HeldTokens(), "pending investments hold nothing")
	require.Len(t, inv.GetDomainEvents(), 1)

	_, err = NewInvestment(uuid.New(), uuid.New(), 0, valueobject.USDAmount(decimal.NewFromInt(1)))
	assert.Error(t, err)
	_, err = NewInvestment(uuid.Nil, uuid.New(), 1, valueobject.USDAmount(decimal.NewFromInt(1)))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestInvestment_SettleAndFail(t *testing.T) {
	inv, err := NewInvestment(uuid.New(), uuid.New(), 10, valueobject.USDAmount(decimal.NewFromInt(5)))
	require.NoError(t, err)

	require.NoError(t, inv.Settle(time.Now()))
	assert.Equal(t, StatusSettled, inv.Status)
	assert.ErrorIs(t, inv.Settle(time.Now()), shared.ErrInvalidState)
	assert.ErrorIs(t, inv.Fail("x"), shared.ErrInvalidState)

	other, err := NewInvestment(uuid.New(), uuid.New(), 10, valueobject.USDAmount(decimal.NewFromInt(5)))
	require.NoError(t, err)
	require.NoError(t, other.Fail(""))
	assert.Equal(t, "settlement failed", other.FailureReason)
}

func TestInvestment_RedemptionReservations(t *testing.T) {
	inv := settled(t, 100, time.Now())

	require.NoError(t, inv.ReserveForRedemption(60))
	assert.Equal(t, int64(40), inv.RedeemableTokens())
	assert.ErrorIs(t, inv.ReserveForRedemption(41), shared.ErrInsufficientTokens)

	require.NoError(t, inv.ReleaseReservation(20))
	assert.Equal(t, int64(60), inv.RedeemableTokens())

	require.NoError(t, inv.CompleteRedemption(40))
	assert.Equal(t, int64(60), inv.HeldTokens())
	assert.Equal(t, int64(0), inv.ReservedTokens)
	assert.Equal(t, int64(60), inv.RedeemableTokens())

	assert.Error(t, inv.ReleaseReservation(1))
}

func TestInvestment_ReserveRequiresSettled(t *testing.T) {
	inv, err := NewInvestment(uuid.New(), uuid.New(), 10, valueobject.USDAmount(decimal.NewFromInt(5)))
	require.NoError(t, err)
	assert.ErrorIs(t, inv.ReserveForRedemption(1), shared.ErrInvalidState)
}

func TestWholeMonthsBetween(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 12, 0, 0, 0, time.UTC) }
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", d(2024, 1, 15), d(2024, 1, 15), 0},
		{"end before start", d(2024, 3, 1), d(2024, 1, 1), 0},
		{"one day short", d(2024, 1, 15), d(2024, 2, 14), 0},
		{"exact month", d(2024, 1, 15), d(2024, 2, 15), 1},
		{"eighteen months", d(2023, 1, 10), d(2024, 7, 10), 18},
		{"clamped month end", d(2024, 1, 31), d(2024, 2, 29), 1},
		{"month end not reached", d(2024, 1, 31), d(2024, 2, 28), 0},
		{"forty months", d(2020, 5, 1), d(2023, 9, 2), 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WholeMonthsBetween(tt.start, tt.end))
		})
	}
}

func TestInvestment_HoldingMonths(t *testing.T) {
	start := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	inv := settled(t, 1, start)
	assert.Equal(t, 18, inv.HoldingMonths(start.AddDate(0, 18, 0)))

	pending, err := NewInvestment(uuid.New(), uuid.New(), 1, valueobject.USDAmount(decimal.NewFromInt(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, pending.HoldingMonths(time.Now()))
}
