package prediction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	// stakeRetries bounds reloads after a concurrent pool update
	stakeRetries   = 3
	closeBatchSize = 100
)

// Service runs prediction markets
type Service struct {
	repo       prediction.Repository
	properties property.Repository
	feePercent decimal.Decimal
	minStake   decimal.Decimal
	publisher  shared.EventPublisher
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates a prediction market service. properties may be nil, in
// which case linked properties are not checked.
func NewService(repo prediction.Repository, properties property.Repository, cfg config.PredictionConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		properties: properties,
		feePercent: decimal.NewFromFloat(cfg.PlatformFeePercent),
		minStake:   decimal.NewFromFloat(cfg.MinStake),
		now:        time.Now,
		logger:     logger,
	}
}

// SetEventPublisher sets the publisher for market events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CreateMarket opens a market
func (s *Service) CreateMarket(ctx context.Context, in CreateMarketInput) (*MarketResponse, error) {
	if in.PropertyID != nil && s.properties != nil {
		if _, err := s.properties.FindByID(ctx, *in.PropertyID); err != nil {
			return nil, err
		}
	}
	m, err := prediction.NewMarket(in.Question, in.PropertyID, in.CreatedBy, in.ClosesAt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Prediction market opened",
		zap.String("market_id", m.ID.String()),
		zap.Time("closes_at", m.ClosesAt))
	s.publish(ctx, m)

	resp := ToMarketResponse(m)
	return &resp, nil
}

// GetMarket returns a market
func (s *Service) GetMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMarketResponse(m)
	return &resp, nil
}

// ListMarkets returns a page of markets
func (s *Service) ListMarkets(ctx context.Context, in ListMarketsInput) (*shared.Paginated[MarketResponse], error) {
	filter := prediction.Filter{Filter: shared.DefaultFilter(), PropertyID: in.PropertyID}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	if in.Status != "" {
		status := prediction.MarketStatus(strings.ToUpper(in.Status))
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown market status: "+in.Status)
		}
		filter.Status = &status
	}
	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]MarketResponse, len(items))
	for i := range items {
		out[i] = ToMarketResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarketPositions lists every position of a market
func (s *Service) MarketPositions(ctx context.Context, marketID uuid.UUID) ([]PositionResponse, error) {
	ps, err := s.repo.FindPositions(ctx, marketID)
	if err != nil {
		return nil, err
	}
	return toPositionResponses(ps), nil
}

// InvestorPositions lists the investor's positions across markets
func (s *Service) InvestorPositions(ctx context.Context, investorID uuid.UUID) ([]PositionResponse, error) {
	ps, err := s.repo.FindPositionsByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	return toPositionResponses(ps), nil
}

// PlaceStake takes a position. A concurrent stake on the same market makes
// the pool update conflict, in which case the market is reloaded and the
// stake retried.
func (s *Service) PlaceStake(ctx context.Context, in PlaceStakeInput) (_ *PositionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "prediction", "place_stake",
		telemetry.SpanAttrMarketID, in.MarketID,
		telemetry.SpanAttrInvestorID, in.InvestorID,
		telemetry.SpanAttrAmount, in.Amount)
	defer func() { telemetry.End(span, err) }()

	side := prediction.Side(strings.ToUpper(in.Side))
	stake := valueobject.USDAmount(in.Amount)

	for attempt := 1; ; attempt++ {
		m, err := s.repo.FindByID(ctx, in.MarketID)
		if err != nil {
			return nil, err
		}
		pos, err := m.PlaceStake(in.InvestorID, side, stake, s.minStake, s.now())
		if err != nil {
			return nil, err
		}
		err = s.repo.SaveWithPosition(ctx, m, pos)
		if errors.Is(err, shared.ErrConcurrencyConflict) && attempt < stakeRetries {
			logger.Enrich(ctx, s.logger).Debug("Market pool changed, retrying stake",
				zap.String("market_id", m.ID.String()), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		logger.Enrich(ctx, s.logger).Info("Stake placed",
			zap.String("market_id", m.ID.String()),
			zap.String("position_id", pos.ID.String()),
			zap.String("side", string(pos.Side)),
			zap.String("stake", pos.Stake.String()))
		s.publish(ctx, m)

		resp := ToPositionResponse(*pos)
		return &resp, nil
	}
}

// CloseMarket stops a market from accepting stakes ahead of its close time
func (s *Service) CloseMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Close(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, m); err != nil {
		return nil, err
	}
	s.publish(ctx, m)
	resp := ToMarketResponse(m)
	return &resp, nil
}

// CloseDue closes open markets whose close time has passed and returns how
// many were closed
func (s *Service) CloseDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.repo.FindDueForClose(ctx, now, closeBatchSize)
	if err != nil {
		return 0, err
	}
	log := logger.Enrich(ctx, s.logger)
	closed := 0
	for i := range due {
		m := &due[i]
		if err := m.Close(now); err != nil {
			continue
		}
		if err := s.repo.SaveWithLock(ctx, m); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				log.Debug("Market changed during close, skipping", zap.String("market_id", m.ID.String()))
				continue
			}
			return closed, err
		}
		closed++
		s.publish(ctx, m)
	}
	if closed > 0 {
		log.Info("Prediction markets closed", zap.Int("count", closed))
	}
	return closed, nil
}

// Resolve settles a market on outcome and pays out the winners
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, outcome string) (*SettlementResponse, error) {
	side := prediction.Side(strings.ToUpper(outcome))
	return s.settle(ctx, id, func(m *prediction.Market, ps []prediction.Position) ([]prediction.Position, error) {
		return m.Resolve(side, ps, s.feePercent, s.now())
	})
}

// Cancel voids a market and refunds every stake
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*SettlementResponse, error) {
	return s.settle(ctx, id, func(m *prediction.Market, ps []prediction.Position) ([]prediction.Position, error) {
		return m.Cancel(ps, s.now())
	})
}

func (s *Service) settle(ctx context.Context, id uuid.UUID, fn func(*prediction.Market, []prediction.Position) ([]prediction.Position, error)) (*SettlementResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	positions, err := s.repo.FindPositions(ctx, id)
	if err != nil {
		return nil, err
	}
	settled, err := fn(m, positions)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSettlement(ctx, m, settled); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Prediction market settled",
		zap.String("market_id", m.ID.String()),
		zap.String("status", string(m.Status)),
		zap.Int("positions", len(settled)))
	s.publish(ctx, m)

	return &SettlementResponse{Market: ToMarketResponse(m), Positions: toPositionResponses(settled)}, nil
}

func (s *Service) publish(ctx context.Context, m *prediction.Market) {
	if err := shared.PublishAndClear(ctx, s.publisher, m); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish market events", zap.Error(err))
	}
}
