package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	investmentapp "github.com/tokenestate/backend/internal/application/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func TestFeeTierRepository_ReplaceAll(t *testing.T) {
	tdb := NewSharedTestDB(t)
	repo := persistence.NewGormFeeTierRepository(tdb.DB)
	ctx := context.Background()

	twelve := 12
	tiers := []liquidity.FeeTier{
		{MinMonths: 0, MaxMonths: &twelve, FeePercent: decimal.NewFromInt(8)},
		{MinMonths: 12, FeePercent: decimal.NewFromInt(2)},
	}
	require.NoError(t, repo.ReplaceAll(ctx, tiers))

	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].MinMonths)
	require.NotNil(t, got[0].MaxMonths)
	assert.Equal(t, 12, *got[0].MaxMonths)
	assert.Nil(t, got[1].MaxMonths)
	assert.True(t, got[1].FeePercent.Equal(decimal.NewFromInt(2)))

	// replacing swaps the whole schedule
	require.NoError(t, repo.ReplaceAll(ctx, tiers[1:]))
	got, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRedemptionRepository_FirstNumberOfTheDay(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormRedemptionRepository(tdb.DB)

	number, err := repo.GenerateRedemptionNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RDM-"+time.Now().UTC().Format("20060102")+"-0001", number)
	assert.True(t, strings.HasPrefix(number, "RDM-"))
}

func TestPropertyRepository_StaleVersionIsRejected(t *testing.T) {
	tdb := NewSharedTestDB(t)
	repo := persistence.NewGormPropertyRepository(tdb.DB)
	ctx := context.Background()

	p := tdb.CreateOpenProperty("Versioned Villa", 500, "50")

	first, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, first.ReserveTokens(10))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.ReserveTokens(10))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(490), stored.AvailableTokens)
}

func TestInvestmentService_ConcurrentBuysNeverOversell(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	p := tdb.CreateOpenProperty("Scarce Studio", 100, "10")
	investors := make([]uuid.UUID, 15)
	for i := range investors {
		investors[i] = tdb.CreateUser(fmt.Sprintf("buyer%02d@example.com", i), false).ID
	}

	svc := investmentapp.NewService(
		persistence.NewGormInvestmentRepository(tdb.DB),
		persistence.NewGormPropertyRepository(tdb.DB),
		persistence.NewGormRedemptionRepository(tdb.DB),
		persistence.NewGormMarketRepository(tdb.DB),
		persistence.NewGormTransactionScope(tdb.DB),
		zap.NewNop(),
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		settled int64
	)
	for _, id := range investors {
		wg.Add(1)
		go func(investor uuid.UUID) {
			defer wg.Done()
			resp, err := svc.Buy(ctx, investmentapp.BuyInput{
				InvestorID: investor,
				PropertyID: p.ID,
				Tokens:     10,
			})
			if err != nil {
				return
			}
			mu.Lock()
			settled += resp.Tokens
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	assert.LessOrEqual(t, settled, int64(100))

	stored, err := persistence.NewGormPropertyRepository(tdb.DB).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100)-settled, stored.AvailableTokens)

	var failed int64
	require.NoError(t, tdb.DB.Table("investments").Where("status = ?", "FAILED").Count(&failed).Error)
	assert.Equal(t, int64(len(investors))-settled/10, failed)
}
