// Package testutil holds the mocks and fixtures shared by the TokenEstate
// application, handler and infrastructure tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tokenestate/backend/internal/application/txn"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/referral"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// MockPropertyRepository is a mock implementation of property.Repository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*property.Property, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter property.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) SaveWithLock(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) SaveDocument(ctx context.Context, doc *property.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockPropertyRepository) FindDocument(ctx context.Context, propertyID, documentID uuid.UUID) (*property.Document, error) {
	args := m.Called(ctx, propertyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Document), args.Error(1)
}

// MockInvestmentRepository is a mock implementation of investment.Repository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*investment.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) FindAll(ctx context.Context, filter investment.Filter) ([]investment.Investment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]investment.Investment), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestmentRepository) FindSettledByInvestor(ctx context.Context, investorID uuid.UUID) ([]investment.Investment, error) {
	args := m.Called(ctx, investorID)
	return args.Get(0).([]investment.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) CountSettledByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, investorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvestmentRepository) Save(ctx context.Context, i *investment.Investment) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInvestmentRepository) SaveWithLock(ctx context.Context, i *investment.Investment) error {
	return m.Called(ctx, i).Error(0)
}

// MockRedemptionRepository is a mock implementation of liquidity.RedemptionRepository
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*liquidity.RedemptionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*liquidity.RedemptionRequest), args.Error(1)
}

func (m *MockRedemptionRepository) FindAll(ctx context.Context, filter liquidity.RedemptionFilter) ([]liquidity.RedemptionRequest, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]liquidity.RedemptionRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRedemptionRepository) Save(ctx context.Context, r *liquidity.RedemptionRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRedemptionRepository) SaveWithLock(ctx context.Context, r *liquidity.RedemptionRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRedemptionRepository) GenerateRedemptionNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockFeeTierRepository is a mock implementation of liquidity.FeeTierRepository
type MockFeeTierRepository struct {
	mock.Mock
}

func (m *MockFeeTierRepository) FindAll(ctx context.Context) ([]liquidity.FeeTier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]liquidity.FeeTier), args.Error(1)
}

func (m *MockFeeTierRepository) ReplaceAll(ctx context.Context, tiers []liquidity.FeeTier) error {
	return m.Called(ctx, tiers).Error(0)
}

// MockMarketRepository is a mock implementation of prediction.Repository
type MockMarketRepository struct {
	mock.Mock
}

func (m *MockMarketRepository) FindByID(ctx context.Context, id uuid.UUID) (*prediction.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prediction.Market), args.Error(1)
}

func (m *MockMarketRepository) FindAll(ctx context.Context, filter prediction.Filter) ([]prediction.Market, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]prediction.Market), args.Get(1).(int64), args.Error(2)
}

func (m *MockMarketRepository) FindDueForClose(ctx context.Context, now time.Time, limit int) ([]prediction.Market, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]prediction.Market), args.Error(1)
}

func (m *MockMarketRepository) FindPositions(ctx context.Context, marketID uuid.UUID) ([]prediction.Position, error) {
	args := m.Called(ctx, marketID)
	return args.Get(0).([]prediction.Position), args.Error(1)
}

func (m *MockMarketRepository) FindPositionsByInvestor(ctx context.Context, investorID uuid.UUID) ([]prediction.Position, error) {
	args := m.Called(ctx, investorID)
	return args.Get(0).([]prediction.Position), args.Error(1)
}

func (m *MockMarketRepository) SaveWithPosition(ctx context.Context, market *prediction.Market, p *prediction.Position) error {
	return m.Called(ctx, market, p).Error(0)
}

func (m *MockMarketRepository) SaveSettlement(ctx context.Context, market *prediction.Market, positions []prediction.Position) error {
	return m.Called(ctx, market, positions).Error(0)
}

func (m *MockMarketRepository) Save(ctx context.Context, market *prediction.Market) error {
	return m.Called(ctx, market).Error(0)
}

func (m *MockMarketRepository) SaveWithLock(ctx context.Context, market *prediction.Market) error {
	return m.Called(ctx, market).Error(0)
}

// MockReferralRepository is a mock implementation of referral.Repository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*referral.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*referral.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindByCode(ctx context.Context, code string) (*referral.Referral, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*referral.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindByInvitee(ctx context.Context, inviteeID uuid.UUID) (*referral.Referral, error) {
	args := m.Called(ctx, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*referral.Referral), args.Error(1)
}

func (m *MockReferralRepository) FindByReferrer(ctx context.Context, referrerID uuid.UUID) ([]referral.Referral, error) {
	args := m.Called(ctx, referrerID)
	return args.Get(0).([]referral.Referral), args.Error(1)
}

func (m *MockReferralRepository) ExistsByReferrerAndEmail(ctx context.Context, referrerID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, referrerID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) Save(ctx context.Context, r *referral.Referral) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReferralRepository) SaveWithLock(ctx context.Context, r *referral.Referral) error {
	return m.Called(ctx, r).Error(0)
}

// MockAccreditationRepository is a mock implementation of accreditation.Repository
type MockAccreditationRepository struct {
	mock.Mock
}

func (m *MockAccreditationRepository) FindByID(ctx context.Context, id uuid.UUID) (*accreditation.Accreditation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accreditation.Accreditation), args.Error(1)
}

func (m *MockAccreditationRepository) FindAll(ctx context.Context, filter accreditation.Filter) ([]accreditation.Accreditation, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accreditation.Accreditation), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccreditationRepository) FindLatestByInvestor(ctx context.Context, investorID uuid.UUID) (*accreditation.Accreditation, error) {
	args := m.Called(ctx, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accreditation.Accreditation), args.Error(1)
}

func (m *MockAccreditationRepository) FindExpiring(ctx context.Context, now time.Time, limit int) ([]accreditation.Accreditation, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]accreditation.Accreditation), args.Error(1)
}

func (m *MockAccreditationRepository) Save(ctx context.Context, a *accreditation.Accreditation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccreditationRepository) SaveWithLock(ctx context.Context, a *accreditation.Accreditation) error {
	return m.Called(ctx, a).Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

// MockRepositories bundles repository mocks behind txn.TransactionalRepositories
type MockRepositories struct {
	PropertyRepo      *MockPropertyRepository
	InvestmentRepo    *MockInvestmentRepository
	RedemptionRepo    *MockRedemptionRepository
	MarketRepo        *MockMarketRepository
	ReferralRepo      *MockReferralRepository
	AccreditationRepo *MockAccreditationRepository
}

// NewMockRepositories creates a bundle with fresh mocks
func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		PropertyRepo:      new(MockPropertyRepository),
		InvestmentRepo:    new(MockInvestmentRepository),
		RedemptionRepo:    new(MockRedemptionRepository),
		MarketRepo:        new(MockMarketRepository),
		ReferralRepo:      new(MockReferralRepository),
		AccreditationRepo: new(MockAccreditationRepository),
	}
}

func (r *MockRepositories) Properties() property.Repository             { return r.PropertyRepo }
func (r *MockRepositories) Investments() investment.Repository          { return r.InvestmentRepo }
func (r *MockRepositories) Redemptions() liquidity.RedemptionRepository { return r.RedemptionRepo }
func (r *MockRepositories) Markets() prediction.Repository              { return r.MarketRepo }
func (r *MockRepositories) Referrals() referral.Repository              { return r.ReferralRepo }
func (r *MockRepositories) Accreditations() accreditation.Repository    { return r.AccreditationRepo }

// MockTransactionScope runs the callback directly against the mocks
type MockTransactionScope struct {
	Repos *MockRepositories
	Calls int
}

// NewMockTransactionScope creates a scope over repos
func NewMockTransactionScope(repos *MockRepositories) *MockTransactionScope {
	return &MockTransactionScope{Repos: repos}
}

func (s *MockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos txn.TransactionalRepositories) error) error {
	s.Calls++
	return fn(ctx, s.Repos)
}

// RecordingPublisher collects published events
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	Err    error
}

func (p *RecordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.Err
}

// Events returns a copy of the published events
func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// EventTypes returns the types of the published events in order
func (p *RecordingPublisher) EventTypes() []string {
	events := p.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}
