package investment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/application/txn"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// openRedemptionLimit bounds the open redemptions listed in a portfolio
const openRedemptionLimit = 100

// ErrAccreditationRequired is returned when an unaccredited investor buys
var ErrAccreditationRequired = shared.NewDomainError("ACCREDITATION_REQUIRED",
	"An approved accreditation is required to invest")

// AccreditationChecker reports whether an investor may invest
type AccreditationChecker interface {
	IsAccredited(ctx context.Context, investorID uuid.UUID) (bool, error)
}

// FeeScheduleSource supplies the current redemption fee schedule
type FeeScheduleSource interface {
	Schedule(ctx context.Context) (*liquidity.FeeSchedule, error)
}

// Service handles token purchases and portfolio views
type Service struct {
	investments   investment.Repository
	properties    property.Repository
	redemptions   liquidity.RedemptionRepository
	markets       prediction.Repository
	scope         txn.TransactionScope
	accreditation AccreditationChecker
	schedule      FeeScheduleSource
	publisher     shared.EventPublisher
	now           func() time.Time
	logger        *zap.Logger
}

// NewService creates an investment service
func NewService(
	investments investment.Repository,
	properties property.Repository,
	redemptions liquidity.RedemptionRepository,
	markets prediction.Repository,
	scope txn.TransactionScope,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		investments: investments,
		properties:  properties,
		redemptions: redemptions,
		markets:     markets,
		scope:       scope,
		now:         time.Now,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for investment and property events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// RequireAccreditation makes Buy check the investor's accreditation
func (s *Service) RequireAccreditation(c AccreditationChecker) { s.accreditation = c }

// SetFeeScheduleSource enables estimated payouts in the portfolio summary
func (s *Service) SetFeeScheduleSource(src FeeScheduleSource) { s.schedule = src }

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Buy records a pending purchase and settles it by reserving tokens on the
// property. When settlement fails the purchase is stored as FAILED with the
// reason and the settlement error is returned.
func (s *Service) Buy(ctx context.Context, in BuyInput) (*InvestmentResponse, error) {
	log := logger.Enrich(ctx, s.logger)

	if s.accreditation != nil {
		ok, err := s.accreditation.IsAccredited(ctx, in.InvestorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAccreditationRequired
		}
	}

	prop, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.Status.IsInvestable() {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "Property is not open for investment")
	}

	inv, err := investment.NewInvestment(in.InvestorID, prop.ID, in.Tokens, prop.TokenPrice)
	if err != nil {
		return nil, err
	}
	if err := s.investments.Save(ctx, inv); err != nil {
		return nil, err
	}

	var reserved *property.Property
	err = s.scope.Execute(ctx, func(ctx context.Context, repos txn.TransactionalRepositories) error {
		p, err := repos.Properties().FindByID(ctx, inv.PropertyID)
		if err != nil {
			return err
		}
		if err := p.ReserveTokens(inv.Tokens); err != nil {
			return err
		}
		if err := repos.Properties().SaveWithLock(ctx, p); err != nil {
			return err
		}
		if err := inv.Settle(s.now()); err != nil {
			return err
		}
		if err := repos.Investments().SaveWithLock(ctx, inv); err != nil {
			return err
		}
		reserved = p
		return nil
	})
	if err != nil {
		log.Warn("Investment settlement failed",
			zap.String("investment_id", inv.ID.String()),
			zap.String("property_id", inv.PropertyID.String()),
			zap.Int64("tokens", inv.Tokens),
			zap.Error(err))
		s.recordFailure(ctx, inv.ID, err)
		return nil, err
	}

	log.Info("Investment settled",
		zap.String("investment_id", inv.ID.String()),
		zap.String("property_id", inv.PropertyID.String()),
		zap.Int64("tokens", inv.Tokens),
		zap.String("total", inv.TotalAmount.String()))
	s.publish(ctx, inv)
	s.publish(ctx, reserved)

	resp := ToInvestmentResponse(inv)
	return &resp, nil
}

// recordFailure reloads the pending purchase, since the rolled back unit of
// work may have left the in-memory aggregate settled, and marks it FAILED.
func (s *Service) recordFailure(ctx context.Context, id uuid.UUID, cause error) {
	log := logger.Enrich(ctx, s.logger)
	inv, err := s.investments.FindByID(ctx, id)
	if err != nil {
		log.Error("Failed to reload investment after settlement failure", zap.String("investment_id", id.String()), zap.Error(err))
		return
	}
	reason := cause.Error()
	var domainErr *shared.DomainError
	if errors.As(cause, &domainErr) {
		reason = domainErr.Message
	}
	if err := inv.Fail(reason); err != nil {
		log.Warn("Investment could not be marked failed", zap.String("investment_id", id.String()), zap.Error(err))
		return
	}
	if err := s.investments.SaveWithLock(ctx, inv); err != nil {
		log.Error("Failed to store failed investment", zap.String("investment_id", id.String()), zap.Error(err))
		return
	}
	s.publish(ctx, inv)
}

// Get returns an investment. Other investors' investments are reported as
// not found unless the requester is an admin.
func (s *Service) Get(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*InvestmentResponse, error) {
	inv, err := s.investments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && inv.InvestorID != requesterID {
		return nil, shared.ErrNotFound
	}
	resp := ToInvestmentResponse(inv)
	return &resp, nil
}

// List returns a page of investments
func (s *Service) List(ctx context.Context, in ListInput) (*shared.Paginated[InvestmentResponse], error) {
	filter := investment.Filter{Filter: shared.DefaultFilter(), InvestorID: in.InvestorID, PropertyID: in.PropertyID}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	if in.Status != "" {
		status := investment.Status(in.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown investment status: "+in.Status)
		}
		filter.Status = &status
	}
	items, total, err := s.investments.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentResponse, len(items))
	for i := range items {
		out[i] = ToInvestmentResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// PortfolioSummary values the investor's holdings, open redemptions and
// prediction positions. The three parts are loaded concurrently.
func (s *Service) PortfolioSummary(ctx context.Context, investorID uuid.UUID) (*PortfolioSummary, error) {
	now := s.now()
	summary := &PortfolioSummary{
		InvestorID:    investorID,
		GeneratedAt:   now,
		PendingPayout: valueobject.Zero(valueobject.USD),
		Predictions: PredictionSummary{
			TotalStaked: valueobject.Zero(valueobject.USD),
			TotalPayout: valueobject.Zero(valueobject.USD),
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.summarizeHoldings(gctx, investorID, now, summary)
	})
	g.Go(func() error {
		return s.summarizeRedemptions(gctx, investorID, summary)
	})
	if s.markets != nil {
		g.Go(func() error {
			return s.summarizePredictions(gctx, investorID, summary)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) summarizeHoldings(ctx context.Context, investorID uuid.UUID, now time.Time, out *PortfolioSummary) error {
	invs, err := s.investments.FindSettledByInvestor(ctx, investorID)
	if err != nil {
		return err
	}
	out.Holdings = make([]HoldingSummary, 0, len(invs))
	out.TotalInvested = valueobject.Zero(valueobject.USD)
	out.CurrentValue = valueobject.Zero(valueobject.USD)
	out.EstimatedNetPayout = valueobject.Zero(valueobject.USD)
	if len(invs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(invs))
	seen := make(map[uuid.UUID]bool, len(invs))
	for _, inv := range invs {
		if !seen[inv.PropertyID] {
			seen[inv.PropertyID] = true
			ids = append(ids, inv.PropertyID)
		}
	}
	props, err := s.properties.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*property.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	var schedule *liquidity.FeeSchedule
	if s.schedule != nil {
		if schedule, err = s.schedule.Schedule(ctx); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Fee schedule unavailable, omitting payout estimates", zap.Error(err))
			schedule = nil
		}
	}

	for i := range invs {
		inv := &invs[i]
		held := inv.HeldTokens()
		if held == 0 {
			continue
		}
		price := inv.TokenPrice
		h := HoldingSummary{
			InvestmentID:   inv.ID,
			PropertyID:     inv.PropertyID,
			HeldTokens:     held,
			ReservedTokens: inv.ReservedTokens,
			CostBasis:      inv.TokenPrice.MultiplyByInt(held).Round(valueobject.CentsPlaces),
			HoldingMonths:  inv.HoldingMonths(now),
		}
		if p, ok := byID[inv.PropertyID]; ok {
			h.PropertyName = p.Name
			price = p.TokenPrice
		}
		h.CurrentValue = inv.CurrentValue(price).Round(valueobject.CentsPlaces)
		h.EstimatedNetPayout = h.CurrentValue
		if schedule != nil {
			q, err := schedule.Quote(liquidity.QuoteRequest{Tokens: held, TokenValue: price, HoldingMonths: h.HoldingMonths})
			if err != nil {
				return err
			}
			h.FeePercent = q.Tier.FeePercent
			h.EstimatedNetPayout = q.NetPayout
		}

		if out.TotalInvested, err = out.TotalInvested.Add(h.CostBasis); err != nil {
			return err
		}
		if out.CurrentValue, err = out.CurrentValue.Add(h.CurrentValue); err != nil {
			return err
		}
		if out.EstimatedNetPayout, err = out.EstimatedNetPayout.Add(h.EstimatedNetPayout); err != nil {
			return err
		}
		out.Holdings = append(out.Holdings, h)
	}
	return nil
}

func (s *Service) summarizeRedemptions(ctx context.Context, investorID uuid.UUID, out *PortfolioSummary) error {
	filter := liquidity.RedemptionFilter{Filter: shared.DefaultFilter(), InvestorID: &investorID}
	filter.PageSize = openRedemptionLimit
	out.OpenRedemptions = []RedemptionSummary{}
	for _, status := range []liquidity.RedemptionStatus{liquidity.RedemptionStatusPending, liquidity.RedemptionStatusApproved} {
		status := status
		filter.Status = &status
		items, _, err := s.redemptions.FindAll(ctx, filter)
		if err != nil {
			return err
		}
		for i := range items {
			r := &items[i]
			out.OpenRedemptions = append(out.OpenRedemptions, RedemptionSummary{
				ID:               r.ID,
				RedemptionNumber: r.RedemptionNumber,
				InvestmentID:     r.InvestmentID,
				Tokens:           r.Tokens,
				Status:           string(r.Status),
				NetPayout:        r.NetPayout,
			})
			if out.PendingPayout, err = out.PendingPayout.Add(r.NetPayout); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) summarizePredictions(ctx context.Context, investorID uuid.UUID, out *PortfolioSummary) error {
	positions, err := s.markets.FindPositionsByInvestor(ctx, investorID)
	if err != nil {
		return err
	}
	out.Predictions.Positions = len(positions)
	for _, p := range positions {
		if out.Predictions.TotalStaked, err = out.Predictions.TotalStaked.Add(p.Stake); err != nil {
			return err
		}
		if out.Predictions.TotalPayout, err = out.Predictions.TotalPayout.Add(p.Payout); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, agg shared.AggregateRoot) {
	if agg == nil {
		return
	}
	if err := shared.PublishAndClear(ctx, s.publisher, agg); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish events", zap.Error(err))
	}
}
