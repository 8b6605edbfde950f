package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

type stubAccreditation struct {
	ok  bool
	err error
}

func (s stubAccreditation) IsAccredited(context.Context, uuid.UUID) (bool, error) { return s.ok, s.err }

type staticSchedule struct{ s *liquidity.FeeSchedule }

func (s staticSchedule) Schedule(context.Context) (*liquidity.FeeSchedule, error) { return s.s, nil }

func intPtr(v int) *int { return &v }

func testSchedule(t *testing.T) *liquidity.FeeSchedule {
	t.Helper()
	s, err := liquidity.NewFeeSchedule([]liquidity.FeeTier{
		liquidity.NewFeeTier(0, intPtr(12), decimal.NewFromInt(10)),
		liquidity.NewFeeTier(12, intPtr(24), decimal.NewFromInt(7)),
		liquidity.NewFeeTier(24, nil, decimal.NewFromInt(3)),
	})
	require.NoError(t, err)
	return s
}

func newProperty(t *testing.T, total int64) *property.Property {
	t.Helper()
	p, err := property.NewProperty("Harbor Lofts", "Lisbon", property.PropertyTypeResidential,
		total, valueobject.USDAmount(decimal.NewFromInt(50)), decimal.NewFromFloat(6.5))
	require.NoError(t, err)
	require.NoError(t, p.Publish())
	p.ClearDomainEvents()
	return p
}

func newTestService(repos *testutil.MockRepositories) (*Service, *testutil.RecordingPublisher) {
	svc := NewService(repos.InvestmentRepo, repos.PropertyRepo, repos.RedemptionRepo, repos.MarketRepo,
		testutil.NewMockTransactionScope(repos), zap.NewNop())
	pub := &testutil.RecordingPublisher{}
	svc.SetEventPublisher(pub)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, pub
}

func TestService_Buy(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, pub := newTestService(repos)
	svc.RequireAccreditation(stubAccreditation{ok: true})
	prop := newProperty(t, 1000)
	investor := uuid.New()

	repos.PropertyRepo.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
	repos.PropertyRepo.On("SaveWithLock", mock.Anything, prop).Return(nil)
	repos.InvestmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*investment.Investment")).Return(nil)
	repos.InvestmentRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*investment.Investment")).Return(nil)

	resp, err := svc.Buy(context.Background(), BuyInput{InvestorID: investor, PropertyID: prop.ID, Tokens: 120})
	require.NoError(t, err)

	assert.Equal(t, "SETTLED", resp.Status)
	assert.Equal(t, int64(120), resp.HeldTokens)
	assert.Equal(t, "6000.00 USD", resp.TotalAmount.String())
	require.NotNil(t, resp.SettledAt)
	assert.Equal(t, fixedNow, *resp.SettledAt)
	assert.Equal(t, int64(880), prop.AvailableTokens)
	assert.Equal(t, []string{
		investment.EventTypeInvestmentCreated,
		investment.EventTypeInvestmentSettled,
		property.EventTypeTokensReserved,
	}, pub.EventTypes())
}

func TestService_Buy_AccreditationRequired(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)
	svc.RequireAccreditation(stubAccreditation{ok: false})

	_, err := svc.Buy(context.Background(), BuyInput{InvestorID: uuid.New(), PropertyID: uuid.New(), Tokens: 1})
	assert.ErrorIs(t, err, ErrAccreditationRequired)
	repos.PropertyRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	svc.RequireAccreditation(stubAccreditation{err: errors.New("db down")})
	_, err = svc.Buy(context.Background(), BuyInput{InvestorID: uuid.New(), PropertyID: uuid.New(), Tokens: 1})
	assert.EqualError(t, err, "db down")
}

func TestService_Buy_PropertyNotInvestable(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)
	prop := newProperty(t, 100)
	require.NoError(t, prop.Close())
	repos.PropertyRepo.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)

	_, err := svc.Buy(context.Background(), BuyInput{InvestorID: uuid.New(), PropertyID: prop.ID, Tokens: 1})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	repos.InvestmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Buy_SettlementFailure(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, pub := newTestService(repos)
	prop := newProperty(t, 10)
	investor := uuid.New()

	stored, err := investment.NewInvestment(investor, prop.ID, 50, prop.TokenPrice)
	require.NoError(t, err)
	stored.ClearDomainEvents()

	repos.PropertyRepo.On("FindByID", mock.Anything, prop.ID).Return(prop, nil)
	repos.InvestmentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repos.InvestmentRepo.On("FindByID", mock.Anything, mock.Anything).Return(stored, nil)
	repos.InvestmentRepo.On("SaveWithLock", mock.Anything, stored).Return(nil)

	_, err = svc.Buy(context.Background(), BuyInput{InvestorID: investor, PropertyID: prop.ID, Tokens: 50})
	assert.ErrorIs(t, err, shared.ErrInsufficientTokens)

	assert.Equal(t, investment.StatusFailed, stored.Status)
	assert.Contains(t, stored.FailureReason, "Only 10 tokens available")
	assert.Equal(t, int64(10), prop.AvailableTokens)
	assert.Equal(t, []string{investment.EventTypeInvestmentFailed}, pub.EventTypes())
	repos.PropertyRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestService_Get(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)
	owner := uuid.New()
	inv, err := investment.NewInvestment(owner, uuid.New(), 5, valueobject.USDAmount(decimal.NewFromInt(10)))
	require.NoError(t, err)
	repos.InvestmentRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

	_, err = svc.Get(context.Background(), inv.ID, owner, false)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), inv.ID, uuid.New(), false)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Get(context.Background(), inv.ID, uuid.New(), true)
	require.NoError(t, err)
}

func TestService_List(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)

	_, err := svc.List(context.Background(), ListInput{Status: "LOST"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	investor := uuid.New()
	repos.InvestmentRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f investment.Filter) bool {
		return f.InvestorID != nil && *f.InvestorID == investor && f.Page == 2 && f.PageSize == 5
	})).Return([]investment.Investment{}, int64(7), nil)

	page, err := svc.List(context.Background(), ListInput{InvestorID: &investor, Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestService_PortfolioSummary(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)
	svc.SetFeeScheduleSource(staticSchedule{s: testSchedule(t)})

	investor := uuid.New()
	prop := newProperty(t, 1000)
	prop.TokenPrice = valueobject.USDAmount(decimal.NewFromInt(55))

	inv, err := investment.NewInvestment(investor, prop.ID, 100, valueobject.USDAmount(decimal.NewFromInt(50)))
	require.NoError(t, err)
	require.NoError(t, inv.Settle(fixedNow.AddDate(0, -18, 0)))
	require.NoError(t, inv.ReserveForRedemption(20))

	repos.InvestmentRepo.On("FindSettledByInvestor", mock.Anything, investor).Return([]investment.Investment{*inv}, nil)
	repos.PropertyRepo.On("FindByIDs", mock.Anything, []uuid.UUID{prop.ID}).Return([]*property.Property{prop}, nil)

	pending := liquidity.RedemptionRequest{
		RedemptionNumber: "RDM-1",
		InvestmentID:     inv.ID,
		Tokens:           20,
		Status:           liquidity.RedemptionStatusPending,
		NetPayout:        valueobject.USDAmount(decimal.NewFromInt(930)),
	}
	repos.RedemptionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f liquidity.RedemptionFilter) bool {
		return f.Status != nil && *f.Status == liquidity.RedemptionStatusPending
	})).Return([]liquidity.RedemptionRequest{pending}, int64(1), nil)
	repos.RedemptionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f liquidity.RedemptionFilter) bool {
		return f.Status != nil && *f.Status == liquidity.RedemptionStatusApproved
	})).Return([]liquidity.RedemptionRequest{}, int64(0), nil)

	repos.MarketRepo.On("FindPositionsByInvestor", mock.Anything, investor).Return([]prediction.Position{
		{Side: prediction.SideYes, Stake: valueobject.USDAmount(decimal.NewFromInt(25)), Payout: valueobject.Zero(valueobject.USD)},
		{Side: prediction.SideNo, Stake: valueobject.USDAmount(decimal.NewFromInt(15)), Payout: valueobject.USDAmount(decimal.NewFromInt(40))},
	}, nil)

	summary, err := svc.PortfolioSummary(context.Background(), investor)
	require.NoError(t, err)

	require.Len(t, summary.Holdings, 1)
	h := summary.Holdings[0]
	assert.Equal(t, "Harbor Lofts", h.PropertyName)
	assert.Equal(t, 18, h.HoldingMonths)
	assert.Equal(t, "5000.00 USD", h.CostBasis.String())
	assert.Equal(t, "5500.00 USD", h.CurrentValue.String())
	assert.True(t, decimal.NewFromInt(7).Equal(h.FeePercent))
	assert.Equal(t, "5115.00 USD", h.EstimatedNetPayout.String())

	assert.Equal(t, "5000.00 USD", summary.TotalInvested.String())
	assert.Equal(t, "5500.00 USD", summary.CurrentValue.String())
	require.Len(t, summary.OpenRedemptions, 1)
	assert.Equal(t, "930.00 USD", summary.PendingPayout.String())
	assert.Equal(t, 2, summary.Predictions.Positions)
	assert.Equal(t, "40.00 USD", summary.Predictions.TotalStaked.String())
	assert.Equal(t, "40.00 USD", summary.Predictions.TotalPayout.String())
}

func TestService_PortfolioSummary_PropagatesErrors(t *testing.T) {
	repos := testutil.NewMockRepositories()
	svc, _ := newTestService(repos)
	investor := uuid.New()

	repos.InvestmentRepo.On("FindSettledByInvestor", mock.Anything, investor).Return([]investment.Investment{}, nil)
	repos.RedemptionRepo.On("FindAll", mock.Anything, mock.Anything).Return([]liquidity.RedemptionRequest(nil), int64(0), errors.New("boom"))
	repos.MarketRepo.On("FindPositionsByInvestor", mock.Anything, investor).Return([]prediction.Position{}, nil).Maybe()

	_, err := svc.PortfolioSummary(context.Background(), investor)
	assert.EqualError(t, err, "boom")
}
