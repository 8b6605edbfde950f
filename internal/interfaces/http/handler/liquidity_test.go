package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	liquidityapp "github.com/tokenestate/backend/internal/application/liquidity"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/statement"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

type stubRenderer struct{}

func (stubRenderer) RenderRedemption(context.Context, *statement.RedemptionStatement) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

type liquidityFixture struct {
	handler *LiquidityHandler
	repos   *testutil.MockRepositories
	tiers   *testutil.MockFeeTierRepository
}

func newLiquidityFixture(t *testing.T) *liquidityFixture {
	t.Helper()
	repos := testutil.NewMockRepositories()
	tiers := new(testutil.MockFeeTierRepository)
	provider := liquidityapp.NewScheduleProvider(tiers, cache.NewMemoryStore(time.Minute, time.Minute),
		config.LiquidityConfig{DefaultTiers: config.DefaultFeeTiers(), ScheduleCacheTTL: time.Minute}, zap.NewNop())
	svc := liquidityapp.NewService(provider, repos.RedemptionRepo, repos.PropertyRepo, nil,
		testutil.NewMockTransactionScope(repos), zap.NewNop())
	svc.SetEventPublisher(&testutil.RecordingPublisher{})
	svc.SetStatementRenderer(stubRenderer{}, nil)
	return &liquidityFixture{handler: NewLiquidityHandler(svc), repos: repos, tiers: tiers}
}

func redemptionFor(t *testing.T, investorID uuid.UUID, paid bool) *liquidity.RedemptionRequest {
	t.Helper()
	schedule, err := liquidity.NewFeeSchedule([]liquidity.FeeTier{
		liquidity.NewFeeTier(0, nil, decimal.NewFromInt(5)),
	})
	require.NoError(t, err)
	quote, err := schedule.Quote(liquidity.QuoteRequest{
		Tokens: 10, TokenValue: valueobject.USDAmount(decimal.NewFromInt(100)), HoldingMonths: 14,
	})
	require.NoError(t, err)
	r, err := liquidity.NewRedemptionRequest("RDM-20250715-0001", investorID, uuid.New(), uuid.New(), quote, "")
	require.NoError(t, err)
	if paid {
		require.NoError(t, r.Approve(uuid.New()))
		require.NoError(t, r.MarkPaid("WIRE-1"))
	}
	r.ClearDomainEvents()
	return r
}

func TestLiquidityHandler_GetFeeTiers(t *testing.T) {
	f := newLiquidityFixture(t)
	f.tiers.On("FindAll", mock.Anything).Return([]liquidity.FeeTier{}, nil)

	w := perform(t, nil, http.MethodGet, "/fee-tiers", "/fee-tiers", nil, f.handler.GetFeeTiers)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeData[liquidityapp.FeeScheduleResponse](t, w)
	assert.Len(t, resp.Tiers, 4)
	assert.True(t, resp.Covers)
	assert.Equal(t, liquidityapp.SourceDefaults, resp.Source)
}

func TestLiquidityHandler_ReplaceFeeTiers(t *testing.T) {
	twelve := 12

	t.Run("replaces a covering schedule", func(t *testing.T) {
		f := newLiquidityFixture(t)
		f.tiers.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
		f.tiers.On("FindAll", mock.Anything).Return([]liquidity.FeeTier{
			liquidity.NewFeeTier(0, &twelve, decimal.NewFromInt(8)),
			liquidity.NewFeeTier(12, nil, decimal.NewFromInt(2)),
		}, nil).Maybe()

		body := ReplaceFeeTiersRequest{Tiers: []liquidityapp.FeeTierDTO{
			{MinMonths: 0, MaxMonths: &twelve, FeePercent: decimal.NewFromInt(8)},
			{MinMonths: 12, FeePercent: decimal.NewFromInt(2)},
		}}
		w := perform(t, admin(), http.MethodPut, "/fee-tiers", "/fee-tiers", body, f.handler.ReplaceFeeTiers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decodeData[liquidityapp.FeeScheduleResponse](t, w).Tiers, 2)
		f.tiers.AssertCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty list", func(t *testing.T) {
		f := newLiquidityFixture(t)
		w := perform(t, admin(), http.MethodPut, "/fee-tiers", "/fee-tiers", ReplaceFeeTiersRequest{}, f.handler.ReplaceFeeTiers)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("accepts overlapping tiers but reports no coverage", func(t *testing.T) {
		f := newLiquidityFixture(t)
		f.tiers.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
		body := ReplaceFeeTiersRequest{Tiers: []liquidityapp.FeeTierDTO{
			{MinMonths: 0, MaxMonths: &twelve, FeePercent: decimal.NewFromInt(8)},
			{MinMonths: 6, FeePercent: decimal.NewFromInt(2)},
		}}
		w := perform(t, admin(), http.MethodPut, "/fee-tiers", "/fee-tiers", body, f.handler.ReplaceFeeTiers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, decodeData[liquidityapp.FeeScheduleResponse](t, w).Covers)
	})

	t.Run("rejects an inverted tier", func(t *testing.T) {
		f := newLiquidityFixture(t)
		six := 6
		body := ReplaceFeeTiersRequest{Tiers: []liquidityapp.FeeTierDTO{
			{MinMonths: 12, MaxMonths: &six, FeePercent: decimal.NewFromInt(8)},
		}}
		w := perform(t, admin(), http.MethodPut, "/fee-tiers", "/fee-tiers", body, f.handler.ReplaceFeeTiers)
		assertError(t, w, http.StatusBadRequest, "ERR_INVALID_FEE_TIER")
		f.tiers.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})
}

func TestLiquidityHandler_Quote(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
		code   string
		net    string
		fee    string
	}{
		{
			name:   "eighteen months falls in the 7% tier",
			body:   QuoteRequest{Tokens: 100, TokenValue: decimal.NewFromInt(50), HoldingMonths: 18},
			status: http.StatusOK,
			net:    "4650",
			fee:    "350",
		},
		{
			name:   "open ended tier",
			body:   QuoteRequest{Tokens: 10, TokenValue: decimal.NewFromInt(100), HoldingMonths: 60},
			status: http.StatusOK,
			net:    "970",
			fee:    "30",
		},
		{
			name:   "negative holding months",
			body:   `{"tokens":10,"token_value":"100","holding_months":-1}`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
		{
			name:   "negative tokens",
			body:   `{"tokens":-5,"token_value":"100","holding_months":12}`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
		{
			name:   "negative token value",
			body:   `{"tokens":10,"token_value":"-1","holding_months":12}`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLiquidityFixture(t)
			f.tiers.On("FindAll", mock.Anything).Return([]liquidity.FeeTier{}, nil)

			w := perform(t, nil, http.MethodPost, "/quote", "/quote", tt.body, f.handler.Quote)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				assertError(t, w, tt.status, tt.code)
				return
			}
			resp := decodeData[liquidityapp.QuoteResponse](t, w)
			assert.True(t, resp.NetPayout.Equal(decimal.RequireFromString(tt.net)), resp.NetPayout.String())
			assert.True(t, resp.FeeAmount.Equal(decimal.RequireFromString(tt.fee)), resp.FeeAmount.String())
		})
	}
}

func TestLiquidityHandler_CreateRedemption_Validation(t *testing.T) {
	f := newLiquidityFixture(t)

	w := perform(t, nil, http.MethodPost, "/redemptions", "/redemptions",
		CreateRedemptionRequest{InvestmentID: uuid.NewString(), Tokens: 1}, f.handler.CreateRedemption)
	assertError(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)

	w = perform(t, investor(), http.MethodPost, "/redemptions", "/redemptions",
		CreateRedemptionRequest{InvestmentID: "not-a-uuid", Tokens: 1}, f.handler.CreateRedemption)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

	w = perform(t, investor(), http.MethodPost, "/redemptions", "/redemptions",
		CreateRedemptionRequest{InvestmentID: uuid.NewString(), Tokens: 0}, f.handler.CreateRedemption)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestLiquidityHandler_ListRedemptions_ScopesInvestors(t *testing.T) {
	f := newLiquidityFixture(t)
	as := investor()
	other := uuid.New()

	f.repos.RedemptionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter liquidity.RedemptionFilter) bool {
		return filter.InvestorID != nil && *filter.InvestorID == as.id
	})).Return([]liquidity.RedemptionRequest{*redemptionFor(t, as.id, false)}, int64(1), nil)

	// an investor asking for someone else's requests still only sees their own
	w := perform(t, as, http.MethodGet, "/redemptions", "/redemptions?investor_id="+other.String(), nil, f.handler.ListRedemptions)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, int64(1), env.Meta.Total)
	f.repos.RedemptionRepo.AssertExpectations(t)
}

func TestLiquidityHandler_ListRedemptions_AdminFilters(t *testing.T) {
	f := newLiquidityFixture(t)
	target := uuid.New()

	f.repos.RedemptionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(filter liquidity.RedemptionFilter) bool {
		return filter.InvestorID != nil && *filter.InvestorID == target &&
			filter.Status != nil && *filter.Status == liquidity.RedemptionStatusPending
	})).Return([]liquidity.RedemptionRequest{}, int64(0), nil)

	w := perform(t, admin(), http.MethodGet, "/redemptions",
		"/redemptions?status=PENDING&investor_id="+target.String(), nil, f.handler.ListRedemptions)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f.repos.RedemptionRepo.AssertExpectations(t)

	w = perform(t, admin(), http.MethodGet, "/redemptions", "/redemptions?status=LOST", nil, f.handler.ListRedemptions)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestLiquidityHandler_GetRedemption(t *testing.T) {
	f := newLiquidityFixture(t)
	owner := investor()
	r := redemptionFor(t, owner.id, false)
	f.repos.RedemptionRepo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	path := "/redemptions/" + r.ID.String()
	w := perform(t, owner, http.MethodGet, "/redemptions/:id", path, nil, f.handler.GetRedemption)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RDM-20250715-0001", decodeData[liquidityapp.RedemptionResponse](t, w).RedemptionNumber)

	w = perform(t, investor(), http.MethodGet, "/redemptions/:id", path, nil, f.handler.GetRedemption)
	assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = perform(t, admin(), http.MethodGet, "/redemptions/:id", path, nil, f.handler.GetRedemption)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, owner, http.MethodGet, "/redemptions/:id", "/redemptions/xyz", nil, f.handler.GetRedemption)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}

func TestLiquidityHandler_Reject_RequiresReason(t *testing.T) {
	f := newLiquidityFixture(t)
	path := "/redemptions/" + uuid.NewString() + "/reject"
	w := perform(t, admin(), http.MethodPost, "/redemptions/:id/reject", path, RejectRequest{}, f.handler.Reject)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestLiquidityHandler_MarkPaid_NotFound(t *testing.T) {
	f := newLiquidityFixture(t)
	id := uuid.New()
	f.repos.RedemptionRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := perform(t, admin(), http.MethodPost, "/redemptions/:id/pay", "/redemptions/"+id.String()+"/pay",
		MarkPaidRequest{Reference: "WIRE-9"}, f.handler.MarkPaid)
	assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestLiquidityHandler_Statement(t *testing.T) {
	owner := investor()

	t.Run("paid redemption renders pdf", func(t *testing.T) {
		f := newLiquidityFixture(t)
		r := redemptionFor(t, owner.id, true)
		prop, err := property.NewProperty("Harbor Lofts", "Lisbon", property.PropertyTypeResidential,
			1000, valueobject.USDAmount(decimal.NewFromInt(100)), decimal.NewFromFloat(6.5))
		require.NoError(t, err)
		f.repos.RedemptionRepo.On("FindByID", mock.Anything, r.ID).Return(r, nil)
		f.repos.PropertyRepo.On("FindByID", mock.Anything, r.PropertyID).Return(prop, nil)

		w := perform(t, owner, http.MethodGet, "/redemptions/:id/statement",
			"/redemptions/"+r.ID.String()+"/statement", nil, f.handler.Statement)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "RDM-20250715-0001.pdf")
		assert.Equal(t, "%PDF-1.7 stub", w.Body.String())
	})

	t.Run("pending redemption has no statement", func(t *testing.T) {
		f := newLiquidityFixture(t)
		r := redemptionFor(t, owner.id, false)
		f.repos.RedemptionRepo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

		w := perform(t, owner, http.MethodGet, "/redemptions/:id/statement",
			"/redemptions/"+r.ID.String()+"/statement", nil, f.handler.Statement)
		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})
}
