package accreditation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const (
	evidencePrefix  = "kyc"
	expiryBatchSize = 200
	uploadURLTTL    = 15 * time.Minute
)

var allowedEvidenceTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Service runs the KYC review workflow
type Service struct {
	repo      accreditation.Repository
	storage   storage.ObjectStorage
	validity  time.Duration
	publisher shared.EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates an accreditation service
func NewService(repo accreditation.Repository, objects storage.ObjectStorage, cfg config.AccreditationConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	days := cfg.ValidityDays
	if days <= 0 {
		days = 365
	}
	return &Service{
		repo:     repo,
		storage:  objects,
		validity: time.Duration(days) * 24 * time.Hour,
		now:      time.Now,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher for accreditation events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CreateUploadURL returns a presigned URL the investor uploads evidence to
func (s *Service) CreateUploadURL(ctx context.Context, in UploadURLInput) (*UploadURLResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError(shared.ErrServiceUnavailable.Code, "Document storage is not enabled")
	}
	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	if !allowedEvidenceTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Evidence must be a PDF, JPEG or PNG file")
	}
	key := storage.NewObjectKey(evidencePrefix, in.InvestorID, in.FileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return nil, err
	}
	return &UploadURLResponse{UploadURL: url, StorageKey: key, ExpiresAt: expiresAt}, nil
}

// Submit opens a submission. An investor with a submission still in review
// must wait for the decision.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*AccreditationResponse, error) {
	latest, err := s.repo.FindLatestByInvestor(ctx, in.InvestorID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status.CanDecide() {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "An accreditation is already under review")
	}

	prefix := evidencePrefix + "/" + in.InvestorID.String() + "/"
	docs := make([]accreditation.Document, 0, len(in.Documents))
	for _, d := range in.Documents {
		if !strings.HasPrefix(d.StorageKey, prefix) {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Document was not uploaded by this investor")
		}
		docs = append(docs, accreditation.Document{Name: d.Name, StorageKey: d.StorageKey})
	}

	a, err := accreditation.Submit(in.InvestorID, accreditation.Type(in.Type), docs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Accreditation submitted",
		zap.String("accreditation_id", a.ID.String()),
		zap.String("type", string(a.Type)),
		zap.Int("documents", len(docs)))
	s.publish(ctx, a)

	resp := ToResponse(a, s.now())
	return &resp, nil
}

// GetLatest returns the investor's newest submission
func (s *Service) GetLatest(ctx context.Context, investorID uuid.UUID) (*AccreditationResponse, error) {
	a, err := s.repo.FindLatestByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(a, s.now())
	return &resp, nil
}

// Get returns one submission
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AccreditationResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(a, s.now())
	return &resp, nil
}

// List returns a page of submissions
func (s *Service) List(ctx context.Context, in ListInput) (*shared.Paginated[AccreditationResponse], error) {
	filter := accreditation.Filter{Filter: shared.DefaultFilter(), InvestorID: in.InvestorID}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	if in.Status != "" {
		status := accreditation.Status(in.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown accreditation status: "+in.Status)
		}
		filter.Status = &status
	}
	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]AccreditationResponse, len(items))
	for i := range items {
		out[i] = ToResponse(&items[i], now)
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// StartReview marks a submission as picked up by a reviewer
func (s *Service) StartReview(ctx context.Context, id, reviewerID uuid.UUID) (*AccreditationResponse, error) {
	return s.decide(ctx, id, func(a *accreditation.Accreditation) error {
		return a.StartReview(reviewerID)
	})
}

// Approve accredits the investor for the configured validity period
func (s *Service) Approve(ctx context.Context, id, reviewerID uuid.UUID) (*AccreditationResponse, error) {
	return s.decide(ctx, id, func(a *accreditation.Accreditation) error {
		return a.Approve(reviewerID, s.now(), s.validity)
	})
}

// Reject declines a submission
func (s *Service) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*AccreditationResponse, error) {
	return s.decide(ctx, id, func(a *accreditation.Accreditation) error {
		return a.Reject(reviewerID, reason, s.now())
	})
}

// IsAccredited reports whether the investor holds an active approval
func (s *Service) IsAccredited(ctx context.Context, investorID uuid.UUID) (bool, error) {
	a, err := s.repo.FindLatestByInvestor(ctx, investorID)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.IsActive(s.now()), nil
}

// ExpireDue moves approvals past their expiry to EXPIRED and returns how
// many changed. Rows updated concurrently are skipped and retried next run.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.repo.FindExpiring(ctx, now, expiryBatchSize)
	if err != nil {
		return 0, err
	}
	log := logger.Enrich(ctx, s.logger)
	expired := 0
	for i := range due {
		a := &due[i]
		if !a.Expire(now) {
			continue
		}
		if err := s.repo.SaveWithLock(ctx, a); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				log.Debug("Accreditation changed during expiry, skipping", zap.String("accreditation_id", a.ID.String()))
				continue
			}
			return expired, err
		}
		expired++
		s.publish(ctx, a)
	}
	if expired > 0 {
		log.Info("Accreditations expired", zap.Int("count", expired))
	}
	return expired, nil
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, fn func(a *accreditation.Accreditation) error) (*AccreditationResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(a); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Accreditation status changed",
		zap.String("accreditation_id", a.ID.String()),
		zap.String("status", string(a.Status)))
	s.publish(ctx, a)

	resp := ToResponse(a, s.now())
	return &resp, nil
}

func (s *Service) publish(ctx context.Context, a *accreditation.Accreditation) {
	if err := shared.PublishAndClear(ctx, s.publisher, a); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish accreditation events", zap.Error(err))
	}
}
