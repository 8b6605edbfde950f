package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	predictionapp "github.com/tokenestate/backend/internal/application/prediction"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

var predictionNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newPredictionHandler() (*PredictionHandler, *testutil.MockMarketRepository) {
	repo := new(testutil.MockMarketRepository)
	svc := predictionapp.NewService(repo, nil, config.PredictionConfig{PlatformFeePercent: 5, MinStake: 1}, zap.NewNop())
	svc.SetEventPublisher(&testutil.RecordingPublisher{})
	svc.SetClock(func() time.Time { return predictionNow })
	return NewPredictionHandler(svc), repo
}

func openMarket(t *testing.T) *prediction.Market {
	t.Helper()
	m, err := prediction.NewMarket("Will Harbor Lofts be fully funded by June?", nil, uuid.New(),
		predictionNow.Add(72*time.Hour), predictionNow)
	require.NoError(t, err)
	m.ClearDomainEvents()
	return m
}

func TestPredictionHandler_CreateMarket(t *testing.T) {
	t.Run("opens", func(t *testing.T) {
		h, repo := newPredictionHandler()
		repo.On("Save", mock.Anything, mock.AnythingOfType("*prediction.Market")).Return(nil)

		w := perform(t, admin(), http.MethodPost, "/predictions", "/predictions", CreateMarketRequest{
			Question: "Will rents in Porto rise this year?",
			ClosesAt: predictionNow.Add(24 * time.Hour),
		}, h.CreateMarket)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeData[predictionapp.MarketResponse](t, w)
		assert.Equal(t, "OPEN", resp.Status)
		assert.True(t, resp.TotalPool.IsZero())
	})

	t.Run("close time in the past", func(t *testing.T) {
		h, _ := newPredictionHandler()
		w := perform(t, admin(), http.MethodPost, "/predictions", "/predictions", CreateMarketRequest{
			Question: "Will rents in Porto rise this year?",
			ClosesAt: predictionNow.Add(-time.Hour),
		}, h.CreateMarket)
		assertError(t, w, http.StatusBadRequest, "ERR_INVALID_CLOSE_TIME")
	})

	t.Run("short question", func(t *testing.T) {
		h, _ := newPredictionHandler()
		w := perform(t, admin(), http.MethodPost, "/predictions", "/predictions", CreateMarketRequest{
			Question: "Up?", ClosesAt: predictionNow.Add(time.Hour),
		}, h.CreateMarket)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestPredictionHandler_PlaceStake(t *testing.T) {
	t.Run("adds to the pool", func(t *testing.T) {
		h, repo := newPredictionHandler()
		m := openMarket(t)
		repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		repo.On("SaveWithPosition", mock.Anything, m, mock.AnythingOfType("*prediction.Position")).Return(nil)

		as := investor()
		w := perform(t, as, http.MethodPost, "/predictions/:id/stakes", "/predictions/"+m.ID.String()+"/stakes",
			PlaceStakeRequest{Side: "YES", Amount: decimal.NewFromInt(25)}, h.PlaceStake)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		pos := decodeData[predictionapp.PositionResponse](t, w)
		assert.Equal(t, as.id, pos.InvestorID)
		assert.True(t, decimal.NewFromInt(25).Equal(m.YesPool.Amount()))
	})

	t.Run("retries a concurrent pool update", func(t *testing.T) {
		h, repo := newPredictionHandler()
		m := openMarket(t)
		repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		repo.On("SaveWithPosition", mock.Anything, m, mock.Anything).Return(shared.ErrConcurrencyConflict).Once()
		repo.On("SaveWithPosition", mock.Anything, m, mock.Anything).Return(nil).Once()

		w := perform(t, investor(), http.MethodPost, "/predictions/:id/stakes", "/predictions/"+m.ID.String()+"/stakes",
			PlaceStakeRequest{Side: "NO", Amount: decimal.NewFromInt(10)}, h.PlaceStake)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		repo.AssertNumberOfCalls(t, "FindByID", 2)
	})

	t.Run("closed market", func(t *testing.T) {
		h, repo := newPredictionHandler()
		m := openMarket(t)
		require.NoError(t, m.Close(predictionNow))
		repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)

		w := perform(t, investor(), http.MethodPost, "/predictions/:id/stakes", "/predictions/"+m.ID.String()+"/stakes",
			PlaceStakeRequest{Side: "YES", Amount: decimal.NewFromInt(10)}, h.PlaceStake)
		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeMarketClosed)
	})

	t.Run("unknown side", func(t *testing.T) {
		h, _ := newPredictionHandler()
		w := perform(t, investor(), http.MethodPost, "/predictions/:id/stakes", "/predictions/"+uuid.NewString()+"/stakes",
			`{"side":"MAYBE","amount":"5"}`, h.PlaceStake)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestPredictionHandler_Resolve(t *testing.T) {
	h, repo := newPredictionHandler()
	m := openMarket(t)
	yes, err := m.PlaceStake(uuid.New(), prediction.SideYes, valueobject.USDAmount(decimal.NewFromInt(100)), decimal.NewFromInt(1), predictionNow)
	require.NoError(t, err)
	no, err := m.PlaceStake(uuid.New(), prediction.SideNo, valueobject.USDAmount(decimal.NewFromInt(300)), decimal.NewFromInt(1), predictionNow)
	require.NoError(t, err)
	require.NoError(t, m.Close(predictionNow))
	m.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	repo.On("FindPositions", mock.Anything, m.ID).Return([]prediction.Position{*yes, *no}, nil)
	repo.On("SaveSettlement", mock.Anything, m, mock.Anything).Return(nil)

	w := perform(t, admin(), http.MethodPost, "/predictions/:id/resolve", "/predictions/"+m.ID.String()+"/resolve",
		ResolveMarketRequest{Outcome: "YES"}, h.Resolve)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	settlement := decodeData[predictionapp.SettlementResponse](t, w)
	assert.Equal(t, "RESOLVED", settlement.Market.Status)
	require.Len(t, settlement.Positions, 2)
	// 400 pool less the 5% fee goes to the only YES stake
	assert.True(t, decimal.NewFromInt(380).Equal(settlement.Positions[0].Payout), settlement.Positions[0].Payout.String())
	assert.True(t, settlement.Positions[1].Payout.IsZero())
}

func TestPredictionHandler_MyPositions(t *testing.T) {
	h, repo := newPredictionHandler()
	as := investor()
	repo.On("FindPositionsByInvestor", mock.Anything, as.id).Return([]prediction.Position{}, nil)

	w := perform(t, as, http.MethodGet, "/predictions/positions", "/predictions/positions", nil, h.MyPositions)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}
