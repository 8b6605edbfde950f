package liquidity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/application/txn"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/statement"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StatementRenderer turns a redemption statement into a PDF
type StatementRenderer interface {
	RenderRedemption(ctx context.Context, s *statement.RedemptionStatement) ([]byte, error)
}

// StatementUploader stores rendered statements
type StatementUploader interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// Metrics records redemption activity
type Metrics interface {
	ObserveQuote(tier liquidity.FeeTier)
	ObserveRedemption(status liquidity.RedemptionStatus, netPayout valueobject.Money)
}

// Service runs the redemption workflow on top of the fee schedule
type Service struct {
	schedule    *ScheduleProvider
	redemptions liquidity.RedemptionRepository
	properties  property.Repository
	users       identity.UserRepository
	scope       txn.TransactionScope
	publisher   shared.EventPublisher
	renderer    StatementRenderer
	uploader    StatementUploader
	metrics     Metrics
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a liquidity service
func NewService(
	schedule *ScheduleProvider,
	redemptions liquidity.RedemptionRepository,
	properties property.Repository,
	users identity.UserRepository,
	scope txn.TransactionScope,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		schedule:    schedule,
		redemptions: redemptions,
		properties:  properties,
		users:       users,
		scope:       scope,
		now:         time.Now,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for redemption events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// SetStatementRenderer enables PDF statements; uploader may be nil
func (s *Service) SetStatementRenderer(r StatementRenderer, u StatementUploader) {
	s.renderer = r
	s.uploader = u
}

// SetMetrics sets the redemption metrics sink
func (s *Service) SetMetrics(m Metrics) { s.metrics = m }

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// GetFeeTiers returns the schedule in effect
func (s *Service) GetFeeTiers(ctx context.Context) (*FeeScheduleResponse, error) {
	schedule, source, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &FeeScheduleResponse{Tiers: toTierDTOs(schedule.Tiers()), Covers: schedule.Covers(), Source: source}, nil
}

// ReplaceFeeTiers stores a new schedule. Existing redemption requests keep
// the quote they were created with.
func (s *Service) ReplaceFeeTiers(ctx context.Context, in ReplaceFeeTiersInput) (*FeeScheduleResponse, error) {
	schedule, err := s.schedule.Replace(ctx, fromTierDTOs(in.Tiers))
	if err != nil {
		return nil, err
	}
	log := logger.Enrich(ctx, s.logger)
	if !schedule.Covers() {
		log.Warn("Fee schedule has gaps or overlaps, the last tier is used as fallback",
			zap.Int("tiers", len(in.Tiers)))
	}
	log.Info("Fee schedule replaced",
		zap.String("updated_by", in.UpdatedBy.String()),
		zap.Int("tiers", len(in.Tiers)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, liquidity.NewFeeScheduleUpdatedEvent(schedule, in.UpdatedBy)); err != nil {
			log.Warn("Failed to publish fee schedule event", zap.Error(err))
		}
	}
	return &FeeScheduleResponse{Tiers: toTierDTOs(schedule.Tiers()), Covers: schedule.Covers(), Source: SourceStored}, nil
}

// Quote runs the payout calculator against the current schedule
func (s *Service) Quote(ctx context.Context, in QuoteInput) (*QuoteResponse, error) {
	schedule, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := schedule.Quote(liquidity.QuoteRequest{
		Tokens:        in.Tokens,
		TokenValue:    valueobject.USDAmount(in.TokenValue),
		HoldingMonths: in.HoldingMonths,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveQuote(quote.Tier)
	}
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// CreateRedemption quotes the investor's tokens at the property's current
// price and reserves them on the investment.
func (s *Service) CreateRedemption(ctx context.Context, in CreateRedemptionInput) (_ *RedemptionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "liquidity", "create_redemption",
		telemetry.SpanAttrInvestmentID, in.InvestmentID,
		telemetry.SpanAttrInvestorID, in.InvestorID,
		telemetry.SpanAttrTokens, in.Tokens)
	defer func() { telemetry.End(span, err) }()

	if in.Tokens <= 0 {
		return nil, shared.NewDomainError("INVALID_TOKENS", "Tokens to redeem must be positive")
	}
	schedule, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, err
	}

	var req *liquidity.RedemptionRequest
	err = s.scope.Execute(ctx, func(ctx context.Context, repos txn.TransactionalRepositories) error {
		inv, err := repos.Investments().FindByID(ctx, in.InvestmentID)
		if err != nil {
			return err
		}
		if inv.InvestorID != in.InvestorID {
			return shared.NewDomainError(shared.ErrForbidden.Code, "Investment belongs to another investor")
		}
		prop, err := repos.Properties().FindByID(ctx, inv.PropertyID)
		if err != nil {
			return err
		}

		quote, err := schedule.Quote(liquidity.QuoteRequest{
			Tokens:        in.Tokens,
			TokenValue:    prop.TokenPrice,
			HoldingMonths: inv.HoldingMonths(s.now()),
		})
		if err != nil {
			return err
		}
		if err := inv.ReserveForRedemption(in.Tokens); err != nil {
			return err
		}

		number, err := repos.Redemptions().GenerateRedemptionNumber(ctx)
		if err != nil {
			return fmt.Errorf("generate redemption number: %w", err)
		}
		req, err = liquidity.NewRedemptionRequest(number, in.InvestorID, inv.ID, prop.ID, quote, in.Notes)
		if err != nil {
			return err
		}
		if err := repos.Redemptions().Save(ctx, req); err != nil {
			return err
		}
		return repos.Investments().SaveWithLock(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrRedemptionID, req.ID)
	logger.Enrich(ctx, s.logger).Info("Redemption requested",
		zap.String("redemption_id", req.ID.String()),
		zap.String("redemption_number", req.RedemptionNumber),
		zap.Int64("tokens", req.Tokens),
		zap.Int("holding_months", req.HoldingMonths),
		zap.String("net_payout", req.NetPayout.String()))
	s.afterTransition(ctx, req)

	resp := ToRedemptionResponse(req)
	return &resp, nil
}

// GetRedemption returns a request visible to the requester
func (s *Service) GetRedemption(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*RedemptionResponse, error) {
	r, err := s.redemptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && r.InvestorID != requesterID {
		return nil, shared.ErrNotFound
	}
	resp := ToRedemptionResponse(r)
	return &resp, nil
}

// ListRedemptions returns a page of redemption requests
func (s *Service) ListRedemptions(ctx context.Context, in ListRedemptionsInput) (*shared.Paginated[RedemptionResponse], error) {
	filter := liquidity.RedemptionFilter{
		Filter:       shared.DefaultFilter(),
		InvestorID:   in.InvestorID,
		InvestmentID: in.InvestmentID,
	}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	if in.Status != "" {
		status := liquidity.RedemptionStatus(in.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown redemption status: "+in.Status)
		}
		filter.Status = &status
	}

	items, total, err := s.redemptions.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]RedemptionResponse, len(items))
	for i := range items {
		out[i] = ToRedemptionResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Approve accepts a pending request
func (s *Service) Approve(ctx context.Context, id, reviewerID uuid.UUID) (*RedemptionResponse, error) {
	return s.transition(ctx, id, func(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error {
		return r.Approve(reviewerID)
	})
}

// Reject declines a pending request and releases the reserved tokens
func (s *Service) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*RedemptionResponse, error) {
	return s.transition(ctx, id, func(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error {
		if err := r.Reject(reviewerID, reason); err != nil {
			return err
		}
		return s.releaseReservation(ctx, repos, r)
	})
}

// Cancel withdraws the investor's pending request and releases the tokens
func (s *Service) Cancel(ctx context.Context, id, investorID uuid.UUID) (*RedemptionResponse, error) {
	return s.transition(ctx, id, func(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error {
		if r.InvestorID != investorID {
			return shared.ErrNotFound
		}
		if err := r.Cancel(investorID); err != nil {
			return err
		}
		return s.releaseReservation(ctx, repos, r)
	})
}

// MarkPaid records the payout, burns the tokens on the investment and
// returns them to the property's available supply.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, reference string) (*RedemptionResponse, error) {
	var prop *property.Property
	resp, err := s.transition(ctx, id, func(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error {
		if err := r.MarkPaid(reference); err != nil {
			return err
		}
		inv, err := repos.Investments().FindByID(ctx, r.InvestmentID)
		if err != nil {
			return err
		}
		if err := inv.CompleteRedemption(r.Tokens); err != nil {
			return err
		}
		if err := repos.Investments().SaveWithLock(ctx, inv); err != nil {
			return err
		}
		prop, err = repos.Properties().FindByID(ctx, r.PropertyID)
		if err != nil {
			return err
		}
		if err := prop.ReleaseTokens(r.Tokens); err != nil {
			return err
		}
		return repos.Properties().SaveWithLock(ctx, prop)
	})
	if err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, prop); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish property events", zap.Error(err))
	}
	return resp, nil
}

// RenderStatement produces the PDF statement of a paid redemption
func (s *Service) RenderStatement(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*StatementFile, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError(shared.ErrServiceUnavailable.Code, "Statement rendering is not enabled")
	}
	r, err := s.redemptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && r.InvestorID != requesterID {
		return nil, shared.ErrNotFound
	}
	if r.Status != liquidity.RedemptionStatusPaid {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "Statements are only available for paid redemptions")
	}

	data := &statement.RedemptionStatement{
		Number:           r.RedemptionNumber,
		Tokens:           r.Tokens,
		HoldingMonths:    r.HoldingMonths,
		Tier:             r.Tier().String(),
		FeePercent:       r.FeePercent,
		TokenValue:       r.TokenValue,
		GrossValue:       r.GrossValue,
		FeeAmount:        r.FeeAmount,
		NetPayout:        r.NetPayout,
		RequestedAt:      r.CreatedAt,
		PaidAt:           r.PaidAt,
		PaymentReference: r.PaymentReference,
	}
	if s.users != nil {
		if u, err := s.users.FindByID(ctx, r.InvestorID); err == nil {
			data.InvestorName = u.Name()
			data.InvestorEmail = u.Email
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	p, err := s.properties.FindByID(ctx, r.PropertyID)
	if err != nil {
		return nil, err
	}
	data.PropertyName = p.Name
	data.PropertyLocation = p.Location

	pdf, err := s.renderer.RenderRedemption(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	fileName := r.RedemptionNumber + ".pdf"
	if s.uploader != nil {
		key := "statements/redemptions/" + fileName
		if err := s.uploader.Upload(ctx, key, pdf, "application/pdf"); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to store statement",
				zap.String("storage_key", key), zap.Error(err))
		}
	}
	return &StatementFile{FileName: fileName, Data: pdf}, nil
}

func (s *Service) releaseReservation(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error {
	inv, err := repos.Investments().FindByID(ctx, r.InvestmentID)
	if err != nil {
		return err
	}
	if err := inv.ReleaseReservation(r.Tokens); err != nil {
		return err
	}
	return repos.Investments().SaveWithLock(ctx, inv)
}

// transition loads a request, applies fn and saves everything in one
// transaction, then publishes the request's events.
func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, repos txn.TransactionalRepositories, r *liquidity.RedemptionRequest) error,
) (*RedemptionResponse, error) {
	var req *liquidity.RedemptionRequest
	err := s.scope.Execute(ctx, func(ctx context.Context, repos txn.TransactionalRepositories) error {
		r, err := repos.Redemptions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, repos, r); err != nil {
			return err
		}
		if err := repos.Redemptions().SaveWithLock(ctx, r); err != nil {
			return err
		}
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Redemption status changed",
		zap.String("redemption_id", req.ID.String()),
		zap.String("status", req.Status.String()))
	s.afterTransition(ctx, req)

	resp := ToRedemptionResponse(req)
	return &resp, nil
}

func (s *Service) afterTransition(ctx context.Context, r *liquidity.RedemptionRequest) {
	if s.metrics != nil {
		s.metrics.ObserveRedemption(r.Status, r.NetPayout)
	}
	if err := shared.PublishAndClear(ctx, s.publisher, r); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish redemption events",
			zap.String("redemption_id", r.ID.String()), zap.Error(err))
	}
}
