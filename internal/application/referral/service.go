package referral

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/referral"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/email"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// codeAttempts bounds retries when a generated code collides
const codeAttempts = 5

// Config holds referral program settings
type Config struct {
	Reward    valueobject.Money
	SignupURL string
}

// Service runs the referral program
type Service struct {
	repo        referral.Repository
	users       identity.UserRepository
	investments investment.Repository
	sender      email.Sender
	composer    *email.Composer
	cfg         Config
	publisher   shared.EventPublisher
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a referral service
func NewService(
	repo referral.Repository,
	users identity.UserRepository,
	investments investment.Repository,
	sender email.Sender,
	composer *email.Composer,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		users:       users,
		investments: investments,
		sender:      sender,
		composer:    composer,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for referral events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Invite records an invitation and e-mails the invitee. A delivery failure
// is logged and reported through EmailSent; the invite itself stands.
func (s *Service) Invite(ctx context.Context, in InviteInput) (*ReferralResponse, error) {
	log := logger.Enrich(ctx, s.logger)

	addr, err := referral.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	referrer, err := s.users.FindByID(ctx, in.ReferrerID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(referrer.Email, addr) {
		return nil, shared.NewDomainError("SELF_REFERRAL", "Investors cannot refer themselves")
	}
	exists, err := s.repo.ExistsByReferrerAndEmail(ctx, in.ReferrerID, addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "This address has already been invited")
	}
	if registered, err := s.users.ExistsByEmail(ctx, addr); err != nil {
		return nil, err
	} else if registered {
		return nil, shared.NewDomainError("ALREADY_REGISTERED", "This address already has an account")
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	r, err := referral.NewReferral(in.ReferrerID, addr, code)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	log.Info("Referral invite created", zap.String("referral_id", r.ID.String()))
	s.publish(ctx, r)

	resp := ToReferralResponse(r)
	resp.EmailSent = s.sendInvite(ctx, referrer, r)
	return &resp, nil
}

func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := referral.GenerateCode()
		if err != nil {
			return "", err
		}
		_, err = s.repo.FindByCode(ctx, code)
		if errors.Is(err, shared.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", shared.NewDomainError("CODE_EXHAUSTED", "Could not allocate a referral code")
}

func (s *Service) sendInvite(ctx context.Context, referrer *identity.User, r *referral.Referral) bool {
	if s.sender == nil || s.composer == nil {
		return false
	}
	log := logger.Enrich(ctx, s.logger).With(zap.String("referral_id", r.ID.String()))
	msg, err := s.composer.ReferralInvite(r.InviteeEmail, email.ReferralInvite{
		ReferrerName: referrer.Name(),
		Code:         r.Code,
		SignupURL:    s.signupURL(r.Code),
		Reward:       s.cfg.Reward,
	})
	if err != nil {
		log.Error("Failed to compose referral invite", zap.Error(err))
		return false
	}
	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		log.Warn("Referral invite not delivered", zap.Error(err))
		return false
	}
	log.Info("Referral invite sent", zap.String("message_id", id))
	return true
}

func (s *Service) signupURL(code string) string {
	base := s.cfg.SignupURL
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("ref", code)
	u.RawQuery = q.Encode()
	return u.String()
}

// LinkSignup marks the referral behind code as signed up by inviteeID
func (s *Service) LinkSignup(ctx context.Context, code string, inviteeID uuid.UUID) error {
	r, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if err := r.MarkSignedUp(inviteeID, s.now()); err != nil {
		return err
	}
	if err := s.repo.SaveWithLock(ctx, r); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Referral signed up",
		zap.String("referral_id", r.ID.String()),
		zap.String("invitee_id", inviteeID.String()))
	s.publish(ctx, r)
	return nil
}

// Summary lists a referrer's invitations with totals
func (s *Service) Summary(ctx context.Context, referrerID uuid.UUID) (*ReferralSummary, error) {
	items, err := s.repo.FindByReferrer(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	out := &ReferralSummary{TotalReward: decimal.Zero, Referrals: make([]ReferralResponse, 0, len(items))}
	for i := range items {
		r := &items[i]
		out.Invited++
		switch r.Status {
		case referral.StatusSignedUp:
			out.SignedUp++
		case referral.StatusRewarded:
			out.SignedUp++
			out.Rewarded++
			out.TotalReward = out.TotalReward.Add(r.Reward.Amount())
		}
		out.Referrals = append(out.Referrals, ToReferralResponse(r))
	}
	return out, nil
}

// RewardFirstInvestment grants the referrer's reward once the invitee has a
// settled investment. The reward is paid at most once: referrals that are
// already rewarded and invitees without a referral are ignored.
func (s *Service) RewardFirstInvestment(ctx context.Context, inviteeID uuid.UUID) error {
	settled, err := s.investments.CountSettledByInvestor(ctx, inviteeID)
	if err != nil {
		return err
	}
	if settled == 0 {
		return nil
	}
	r, err := s.repo.FindByInvitee(ctx, inviteeID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if r.Status != referral.StatusSignedUp {
		return nil
	}
	if err := r.MarkRewarded(s.cfg.Reward, s.now()); err != nil {
		return err
	}
	if err := s.repo.SaveWithLock(ctx, r); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Referral rewarded",
		zap.String("referral_id", r.ID.String()),
		zap.String("referrer_id", r.ReferrerID.String()),
		zap.String("reward", r.Reward.String()))
	s.publish(ctx, r)
	return nil
}

func (s *Service) publish(ctx context.Context, r *referral.Referral) {
	if err := shared.PublishAndClear(ctx, s.publisher, r); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish referral events", zap.Error(err))
	}
}
