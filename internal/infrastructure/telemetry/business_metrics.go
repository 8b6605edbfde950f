package telemetry

import (
	"context"
	"time"

	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics records platform activity as OpenTelemetry instruments.
// It is fed three ways: the liquidity service calls it directly, the
// scheduler reports job runs, and it listens on the event bus for
// investment and market events.
type BusinessMetrics struct {
	logger *zap.Logger

	quotes          *Counter
	redemptions     *Counter
	redemptionValue *Histogram
	investments     *Counter
	tokensSold      *Counter
	stakes          *Counter
	stakeValue      *Histogram
	marketsResolved *Counter
	jobRuns         *Counter
	jobDuration     *Histogram
}

// NewBusinessMetrics creates the platform instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&bm.quotes, "tokenestate_payout_quotes_total", "Payout quotes calculated by fee tier", "{quotes}"},
		{&bm.redemptions, "tokenestate_redemptions_total", "Redemption transitions by resulting status", "{redemptions}"},
		{&bm.investments, "tokenestate_investments_total", "Investment outcomes", "{investments}"},
		{&bm.tokensSold, "tokenestate_tokens_sold_total", "Tokens transferred to investors", "{tokens}"},
		{&bm.stakes, "tokenestate_market_stakes_total", "Prediction market stakes by side", "{stakes}"},
		{&bm.marketsResolved, "tokenestate_markets_resolved_total", "Prediction markets settled by outcome", "{markets}"},
		{&bm.jobRuns, "tokenestate_scheduler_runs_total", "Scheduled job runs by outcome", "{runs}"},
	}
	for _, c := range counters {
		if *c.dst, err = NewCounter(meter, c.name, c.desc, c.unit); err != nil {
			return nil, err
		}
	}

	if bm.redemptionValue, err = NewHistogram(meter, "tokenestate_redemption_net_payout", "Net payout per redemption", "USD", AmountBuckets...); err != nil {
		return nil, err
	}
	if bm.stakeValue, err = NewHistogram(meter, "tokenestate_market_stake_amount", "Stake size", "USD", AmountBuckets...); err != nil {
		return nil, err
	}
	if bm.jobDuration, err = NewHistogram(meter, "tokenestate_scheduler_run_duration", "Scheduled job run time", "s", JobDurationBuckets...); err != nil {
		return nil, err
	}
	return bm, nil
}

// ObserveQuote counts a payout quote against its tier
func (bm *BusinessMetrics) ObserveQuote(tier liquidity.FeeTier) {
	bm.quotes.Inc(context.Background(), AttrFeeTier.String(tier.String()))
}

// ObserveRedemption counts a redemption transition
func (bm *BusinessMetrics) ObserveRedemption(status liquidity.RedemptionStatus, netPayout valueobject.Money) {
	ctx := context.Background()
	bm.redemptions.Inc(ctx, AttrRedemptionStatus.String(string(status)))
	if status == liquidity.RedemptionStatusPaid {
		f, _ := netPayout.Amount().Float64()
		bm.redemptionValue.Record(ctx, f)
	}
}

// ObserveJob records a scheduled job run
func (bm *BusinessMetrics) ObserveJob(name string, _ int, duration time.Duration, err error) {
	ctx := context.Background()
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	bm.jobRuns.Inc(ctx, AttrJob.String(name), AttrOutcome.String(outcome))
	bm.jobDuration.RecordDuration(ctx, duration, AttrJob.String(name))
}

// EventTypes lists the bus events the metrics listen to
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		investment.EventTypeInvestmentSettled,
		investment.EventTypeInvestmentFailed,
		prediction.EventTypeStakePlaced,
		prediction.EventTypeMarketResolved,
		prediction.EventTypeMarketCancelled,
	}
}

// Handle implements shared.EventHandler
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *investment.InvestmentSettledEvent:
		bm.investments.Inc(ctx, AttrInvestmentStatus.String("settled"))
		bm.tokensSold.Add(ctx, e.Tokens)
	case *investment.InvestmentFailedEvent:
		bm.investments.Inc(ctx, AttrInvestmentStatus.String("failed"))
	case *prediction.StakePlacedEvent:
		bm.stakes.Inc(ctx, AttrMarketSide.String(string(e.Side)))
		f, _ := e.Stake.Float64()
		bm.stakeValue.Record(ctx, f)
	case *prediction.MarketEvent:
		outcome := "cancelled"
		if e.Outcome != nil {
			outcome = string(*e.Outcome)
		}
		bm.marketsResolved.Inc(ctx, AttrOutcome.String(outcome))
	default:
		bm.logger.Debug("Ignoring event in business metrics", zap.String("event_type", event.EventType()))
	}
	return nil
}
