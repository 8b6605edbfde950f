package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*telemetry.BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	bm, err := telemetry.NewBusinessMetrics(mp.Meter("test"), nil)
	require.NoError(t, err)
	return bm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumTotal(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func histCount(t *testing.T, data metricdata.Aggregation) uint64 {
	t.Helper()
	h, ok := data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected float64 histogram, got %T", data)
	var count uint64
	for _, dp := range h.DataPoints {
		count += dp.Count
	}
	return count
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewBusinessMetrics(nil, nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestBusinessMetrics_LiquidityObservations(t *testing.T) {
	bm, reader := newTestMetrics(t)

	tier := liquidity.NewFeeTier(0, nil, decimal.NewFromInt(2))
	bm.ObserveQuote(tier)
	bm.ObserveQuote(tier)

	payout, err := valueobject.NewMoneyFromString("975.50", valueobject.USD)
	require.NoError(t, err)
	bm.ObserveRedemption(liquidity.RedemptionStatusPending, payout)
	bm.ObserveRedemption(liquidity.RedemptionStatusPaid, payout)

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumTotal(t, data["tokenestate_payout_quotes_total"]))
	assert.Equal(t, int64(2), sumTotal(t, data["tokenestate_redemptions_total"]))
	// only paid redemptions carry a payout value
	assert.Equal(t, uint64(1), histCount(t, data["tokenestate_redemption_net_payout"]))
}

func TestBusinessMetrics_HandlesEvents(t *testing.T) {
	bm, reader := newTestMetrics(t)
	ctx := context.Background()
	yes := prediction.SideYes

	events := []shared.DomainEvent{
		&investment.InvestmentSettledEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(investment.EventTypeInvestmentSettled, investment.AggregateTypeInvestment, uuid.New()),
			Tokens:          25,
		},
		&investment.InvestmentFailedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(investment.EventTypeInvestmentFailed, investment.AggregateTypeInvestment, uuid.New()),
		},
		&prediction.StakePlacedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(prediction.EventTypeStakePlaced, prediction.AggregateTypeMarket, uuid.New()),
			Side:            prediction.SideNo,
			Stake:           decimal.NewFromInt(100),
		},
		&prediction.MarketEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(prediction.EventTypeMarketResolved, prediction.AggregateTypeMarket, uuid.New()),
			Status:          prediction.MarketStatusResolved,
			Outcome:         &yes,
		},
		&prediction.MarketEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(prediction.EventTypeMarketCancelled, prediction.AggregateTypeMarket, uuid.New()),
			Status:          prediction.MarketStatusCancelled,
		},
	}
	for _, e := range events {
		require.NoError(t, bm.Handle(ctx, e))
	}

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumTotal(t, data["tokenestate_investments_total"]))
	assert.Equal(t, int64(25), sumTotal(t, data["tokenestate_tokens_sold_total"]))
	assert.Equal(t, int64(1), sumTotal(t, data["tokenestate_market_stakes_total"]))
	assert.Equal(t, uint64(1), histCount(t, data["tokenestate_market_stake_amount"]))
	assert.Equal(t, int64(2), sumTotal(t, data["tokenestate_markets_resolved_total"]))
}

func TestBusinessMetrics_ObserveJob(t *testing.T) {
	bm, reader := newTestMetrics(t)

	bm.ObserveJob("market-close", 3, 120*time.Millisecond, nil)
	bm.ObserveJob("market-close", 0, time.Second, errors.New("db down"))

	data := collect(t, reader)
	runs, ok := data["tokenestate_scheduler_runs_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, runs.DataPoints, 2, "success and failure are separate series")
	assert.Equal(t, uint64(2), histCount(t, data["tokenestate_scheduler_run_duration"]))
}

func TestBusinessMetrics_EventTypes(t *testing.T) {
	bm, _ := newTestMetrics(t)
	assert.ElementsMatch(t, []string{
		investment.EventTypeInvestmentSettled,
		investment.EventTypeInvestmentFailed,
		prediction.EventTypeStakePlaced,
		prediction.EventTypeMarketResolved,
		prediction.EventTypeMarketCancelled,
	}, bm.EventTypes())
}
