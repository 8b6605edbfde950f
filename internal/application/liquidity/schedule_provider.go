package liquidity

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const scheduleCacheKey = "liquidity:fee_schedule"

// TiersFromConfig converts configured tiers to domain tiers
func TiersFromConfig(cfg []config.FeeTierConfig) []liquidity.FeeTier {
	tiers := make([]liquidity.FeeTier, 0, len(cfg))
	for _, c := range cfg {
		var maxMonths *int
		if c.MaxMonths != nil {
			m := *c.MaxMonths
			maxMonths = &m
		}
		tiers = append(tiers, liquidity.NewFeeTier(c.MinMonths, maxMonths, decimal.NewFromFloat(c.FeePercent)))
	}
	return tiers
}

// ScheduleSource tells where the current schedule came from
type ScheduleSource string

const (
	SourceStored   ScheduleSource = "stored"
	SourceDefaults ScheduleSource = "defaults"
)

type cachedSchedule struct {
	Tiers  []liquidity.FeeTier `json:"tiers"`
	Source ScheduleSource      `json:"source"`
}

// ScheduleProvider resolves the fee schedule in effect. Tiers saved by an
// admin win; while none are saved the configured defaults apply, so a
// config reload changes the live schedule until an admin overrides it.
type ScheduleProvider struct {
	repo   liquidity.FeeTierRepository
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.RWMutex
	defaults []liquidity.FeeTier
}

// NewScheduleProvider creates a provider. cache may be nil.
func NewScheduleProvider(repo liquidity.FeeTierRepository, store cache.Store, cfg config.LiquidityConfig, l *zap.Logger) *ScheduleProvider {
	if l == nil {
		l = zap.NewNop()
	}
	return &ScheduleProvider{
		repo:     repo,
		cache:    store,
		ttl:      cfg.ScheduleCacheTTL,
		logger:   l,
		defaults: TiersFromConfig(cfg.DefaultTiers),
	}
}

// Schedule returns the schedule in effect
func (p *ScheduleProvider) Schedule(ctx context.Context) (*liquidity.FeeSchedule, error) {
	s, _, err := p.Current(ctx)
	return s, err
}

// Current returns the schedule in effect and its source
func (p *ScheduleProvider) Current(ctx context.Context) (*liquidity.FeeSchedule, ScheduleSource, error) {
	if p.cache != nil {
		var cached cachedSchedule
		if ok, err := cache.GetJSON(ctx, p.cache, scheduleCacheKey, &cached); err == nil && ok {
			if s, err := liquidity.NewFeeSchedule(cached.Tiers); err == nil {
				return s, cached.Source, nil
			}
		}
	}

	tiers, err := p.repo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}
	source := SourceStored
	if len(tiers) == 0 {
		p.mu.RLock()
		tiers = append([]liquidity.FeeTier(nil), p.defaults...)
		p.mu.RUnlock()
		source = SourceDefaults
	}
	schedule, err := liquidity.NewFeeSchedule(tiers)
	if err != nil {
		return nil, "", err
	}

	if p.cache != nil {
		if err := cache.SetJSON(ctx, p.cache, scheduleCacheKey, cachedSchedule{Tiers: schedule.Tiers(), Source: source}, p.ttl); err != nil {
			logger.Enrich(ctx, p.logger).Warn("Failed to cache fee schedule", zap.Error(err))
		}
	}
	return schedule, source, nil
}

// Replace validates and stores a new schedule
func (p *ScheduleProvider) Replace(ctx context.Context, tiers []liquidity.FeeTier) (*liquidity.FeeSchedule, error) {
	schedule, err := liquidity.NewFeeSchedule(tiers)
	if err != nil {
		return nil, err
	}
	if err := p.repo.ReplaceAll(ctx, schedule.Tiers()); err != nil {
		return nil, err
	}
	p.Invalidate(ctx)
	return schedule, nil
}

// SetDefaults swaps the configured defaults, used on config reload
func (p *ScheduleProvider) SetDefaults(ctx context.Context, tiers []liquidity.FeeTier) error {
	if _, err := liquidity.NewFeeSchedule(tiers); err != nil {
		return err
	}
	p.mu.Lock()
	p.defaults = append([]liquidity.FeeTier(nil), tiers...)
	p.mu.Unlock()
	p.Invalidate(ctx)
	p.logger.Info("Default fee tiers reloaded", zap.Int("tiers", len(tiers)))
	return nil
}

// Invalidate drops the cached schedule
func (p *ScheduleProvider) Invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, scheduleCacheKey); err != nil {
		logger.Enrich(ctx, p.logger).Warn("Failed to invalidate fee schedule cache", zap.Error(err))
	}
}
