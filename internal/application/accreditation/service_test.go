package accreditation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *testutil.MockAccreditationRepository) (*Service, *testutil.RecordingPublisher) {
	svc := NewService(repo, storage.NewMemoryObjectStorage(), config.AccreditationConfig{ValidityDays: 90}, zap.NewNop())
	pub := &testutil.RecordingPublisher{}
	svc.SetEventPublisher(pub)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, pub
}

func submitted(t *testing.T, investor uuid.UUID) *accreditation.Accreditation {
	t.Helper()
	a, err := accreditation.Submit(investor, accreditation.TypeIncome, []accreditation.Document{
		{Name: "w2.pdf", StorageKey: "kyc/" + investor.String() + "/abcd1234-w2.pdf"},
	})
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func TestService_CreateUploadURL(t *testing.T) {
	svc, _ := newTestService(new(testutil.MockAccreditationRepository))
	investor := uuid.New()

	resp, err := svc.CreateUploadURL(context.Background(), UploadURLInput{
		InvestorID:  investor,
		FileName:    "Tax Return 2024.pdf",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.StorageKey, "kyc/"+investor.String()+"/"))
	assert.True(t, strings.HasSuffix(resp.StorageKey, "Tax_Return_2024.pdf"))
	assert.Contains(t, resp.UploadURL, resp.StorageKey)

	_, err = svc.CreateUploadURL(context.Background(), UploadURLInput{
		InvestorID:  investor,
		FileName:    "run.sh",
		ContentType: "application/x-sh",
	})
	require.Error(t, err)
	testutil.AssertDomainCode(t, err, "INVALID_CONTENT_TYPE")
}

func TestService_CreateUploadURL_StorageDisabled(t *testing.T) {
	svc := NewService(new(testutil.MockAccreditationRepository), nil, config.AccreditationConfig{}, nil)
	_, err := svc.CreateUploadURL(context.Background(), UploadURLInput{ContentType: "application/pdf"})
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
}

func TestService_Submit(t *testing.T) {
	investor := uuid.New()
	key := "kyc/" + investor.String() + "/0badf00d-statement.pdf"

	t.Run("first submission", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, pub := newTestService(repo)
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*accreditation.Accreditation")).Return(nil)

		resp, err := svc.Submit(context.Background(), SubmitInput{
			InvestorID: investor,
			Type:       string(accreditation.TypeNetWorth),
			Documents:  []DocumentInput{{Name: "statement.pdf", StorageKey: key}},
		})
		require.NoError(t, err)
		assert.Equal(t, "SUBMITTED", resp.Status)
		assert.False(t, resp.Active)
		assert.Equal(t, []string{accreditation.EventTypeAccreditationSubmitted}, pub.EventTypes())
		repo.AssertExpectations(t)
	})

	t.Run("resubmission after rejection", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		prev := submitted(t, investor)
		require.NoError(t, prev.Reject(uuid.New(), "illegible", fixedNow))
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(prev, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Submit(context.Background(), SubmitInput{
			InvestorID: investor,
			Type:       string(accreditation.TypeIncome),
			Documents:  []DocumentInput{{Name: "statement.pdf", StorageKey: key}},
		})
		require.NoError(t, err)
	})

	t.Run("pending submission blocks another", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(submitted(t, investor), nil)

		_, err := svc.Submit(context.Background(), SubmitInput{
			InvestorID: investor,
			Type:       string(accreditation.TypeIncome),
			Documents:  []DocumentInput{{Name: "statement.pdf", StorageKey: key}},
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("foreign storage key", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(nil, shared.ErrNotFound)

		_, err := svc.Submit(context.Background(), SubmitInput{
			InvestorID: investor,
			Type:       string(accreditation.TypeIncome),
			Documents:  []DocumentInput{{Name: "x.pdf", StorageKey: "kyc/" + uuid.NewString() + "/x.pdf"}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestService_ReviewFlow(t *testing.T) {
	repo := new(testutil.MockAccreditationRepository)
	svc, pub := newTestService(repo)
	investor := uuid.New()
	reviewer := uuid.New()
	a := submitted(t, investor)

	repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	repo.On("SaveWithLock", mock.Anything, a).Return(nil)

	resp, err := svc.StartReview(context.Background(), a.ID, reviewer)
	require.NoError(t, err)
	assert.Equal(t, "UNDER_REVIEW", resp.Status)

	resp, err = svc.Approve(context.Background(), a.ID, reviewer)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.True(t, resp.Active)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, fixedNow.Add(90*24*time.Hour), *resp.ExpiresAt)
	assert.Equal(t, []string{accreditation.EventTypeAccreditationApproved}, pub.EventTypes())

	_, err = svc.Reject(context.Background(), a.ID, reviewer, "late")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestService_Reject(t *testing.T) {
	repo := new(testutil.MockAccreditationRepository)
	svc, _ := newTestService(repo)
	a := submitted(t, uuid.New())
	repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	repo.On("SaveWithLock", mock.Anything, a).Return(nil)

	_, err := svc.Reject(context.Background(), a.ID, uuid.New(), "")
	require.Error(t, err)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)

	resp, err := svc.Reject(context.Background(), a.ID, uuid.New(), "documents expired")
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.Equal(t, "documents expired", resp.RejectionReason)
}

func TestService_IsAccredited(t *testing.T) {
	investor := uuid.New()

	t.Run("no submission", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(nil, shared.ErrNotFound)

		ok, err := svc.IsAccredited(context.Background(), investor)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("active approval", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		a := submitted(t, investor)
		require.NoError(t, a.Approve(uuid.New(), fixedNow.AddDate(0, -1, 0), 365*24*time.Hour))
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(a, nil)

		ok, err := svc.IsAccredited(context.Background(), investor)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("lapsed approval", func(t *testing.T) {
		repo := new(testutil.MockAccreditationRepository)
		svc, _ := newTestService(repo)
		a := submitted(t, investor)
		require.NoError(t, a.Approve(uuid.New(), fixedNow.AddDate(-2, 0, 0), 365*24*time.Hour))
		repo.On("FindLatestByInvestor", mock.Anything, investor).Return(a, nil)

		ok, err := svc.IsAccredited(context.Background(), investor)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_ExpireDue(t *testing.T) {
	repo := new(testutil.MockAccreditationRepository)
	svc, pub := newTestService(repo)

	lapsed := submitted(t, uuid.New())
	require.NoError(t, lapsed.Approve(uuid.New(), fixedNow.AddDate(-1, 0, -1), 365*24*time.Hour))
	lapsed.ClearDomainEvents()
	conflicted := submitted(t, uuid.New())
	require.NoError(t, conflicted.Approve(uuid.New(), fixedNow.AddDate(-1, 0, -1), 365*24*time.Hour))
	conflicted.ClearDomainEvents()

	repo.On("FindExpiring", mock.Anything, fixedNow, expiryBatchSize).
		Return([]accreditation.Accreditation{*lapsed, *conflicted}, nil)
	repo.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(a *accreditation.Accreditation) bool {
		return a.ID == lapsed.ID
	})).Return(nil)
	repo.On("SaveWithLock", mock.Anything, mock.MatchedBy(func(a *accreditation.Accreditation) bool {
		return a.ID == conflicted.ID
	})).Return(shared.ErrConcurrencyConflict)

	n, err := svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{accreditation.EventTypeAccreditationExpired}, pub.EventTypes())
}

func TestService_List(t *testing.T) {
	repo := new(testutil.MockAccreditationRepository)
	svc, _ := newTestService(repo)
	a := submitted(t, uuid.New())

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f accreditation.Filter) bool {
		return f.Status != nil && *f.Status == accreditation.StatusSubmitted && f.PageSize == 20
	})).Return([]accreditation.Accreditation{*a}, int64(1), nil)

	page, err := svc.List(context.Background(), ListInput{Status: "SUBMITTED"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.ID, page.Items[0].ID)

	_, err = svc.List(context.Background(), ListInput{Status: "PENDING"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
