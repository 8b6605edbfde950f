package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	accreditationapp "github.com/tokenestate/backend/internal/application/accreditation"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

func newAccreditationHandler() (*AccreditationHandler, *testutil.MockAccreditationRepository) {
	repo := new(testutil.MockAccreditationRepository)
	svc := accreditationapp.NewService(repo, storage.NewMemoryObjectStorage(), config.AccreditationConfig{ValidityDays: 365}, zap.NewNop())
	svc.SetEventPublisher(&testutil.RecordingPublisher{})
	return NewAccreditationHandler(svc), repo
}

func submission(t *testing.T, investorID uuid.UUID) *accreditation.Accreditation {
	t.Helper()
	a, err := accreditation.Submit(investorID, accreditation.Type("INCOME"), []accreditation.Document{
		{Name: "w2.pdf", StorageKey: "kyc/" + investorID.String() + "/w2.pdf"},
	})
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func TestAccreditationHandler_UploadThenSubmit(t *testing.T) {
	h, repo := newAccreditationHandler()
	as := investor()

	w := perform(t, as, http.MethodPost, "/accreditation/upload-url", "/accreditation/upload-url",
		AccreditationUploadRequest{FileName: "w2.pdf", ContentType: "application/pdf"}, h.UploadURL)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upload := decodeData[accreditationapp.UploadURLResponse](t, w)
	assert.NotEmpty(t, upload.UploadURL)

	repo.On("FindLatestByInvestor", mock.Anything, as.id).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*accreditation.Accreditation")).Return(nil)

	w = perform(t, as, http.MethodPost, "/accreditation", "/accreditation", SubmitAccreditationRequest{
		Type:      "INCOME",
		Documents: []accreditationapp.DocumentInput{{Name: "w2.pdf", StorageKey: upload.StorageKey}},
	}, h.Submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeData[accreditationapp.AccreditationResponse](t, w)
	assert.Equal(t, "SUBMITTED", resp.Status)
	assert.False(t, resp.Active)
}

func TestAccreditationHandler_UploadURL_RejectsExecutables(t *testing.T) {
	h, _ := newAccreditationHandler()
	w := perform(t, investor(), http.MethodPost, "/accreditation/upload-url", "/accreditation/upload-url",
		AccreditationUploadRequest{FileName: "run.exe", ContentType: "application/octet-stream"}, h.UploadURL)
	assertError(t, w, http.StatusBadRequest, "ERR_INVALID_CONTENT_TYPE")
}

func TestAccreditationHandler_Submit(t *testing.T) {
	t.Run("foreign storage key", func(t *testing.T) {
		h, repo := newAccreditationHandler()
		as := investor()
		repo.On("FindLatestByInvestor", mock.Anything, as.id).Return(nil, shared.ErrNotFound)

		w := perform(t, as, http.MethodPost, "/accreditation", "/accreditation", SubmitAccreditationRequest{
			Type:      "NET_WORTH",
			Documents: []accreditationapp.DocumentInput{{Name: "x.pdf", StorageKey: "kyc/" + uuid.NewString() + "/x.pdf"}},
		}, h.Submit)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("already under review", func(t *testing.T) {
		h, repo := newAccreditationHandler()
		as := investor()
		repo.On("FindLatestByInvestor", mock.Anything, as.id).Return(submission(t, as.id), nil)

		w := perform(t, as, http.MethodPost, "/accreditation", "/accreditation", SubmitAccreditationRequest{
			Type:      "INCOME",
			Documents: []accreditationapp.DocumentInput{{Name: "w2.pdf", StorageKey: "kyc/" + as.id.String() + "/w2.pdf"}},
		}, h.Submit)
		assertError(t, w, http.StatusConflict, dto.ErrCodeAlreadyExists)
	})

	t.Run("no documents", func(t *testing.T) {
		h, _ := newAccreditationHandler()
		w := perform(t, investor(), http.MethodPost, "/accreditation", "/accreditation",
			`{"accreditation_type":"INCOME","documents":[]}`, h.Submit)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestAccreditationHandler_Latest(t *testing.T) {
	h, repo := newAccreditationHandler()
	as := investor()
	repo.On("FindLatestByInvestor", mock.Anything, as.id).Return(nil, shared.ErrNotFound)

	w := perform(t, as, http.MethodGet, "/accreditation/me", "/accreditation/me", nil, h.Latest)
	assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestAccreditationHandler_Review(t *testing.T) {
	t.Run("approve sets expiry", func(t *testing.T) {
		h, repo := newAccreditationHandler()
		a := submission(t, uuid.New())
		repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)
		repo.On("SaveWithLock", mock.Anything, a).Return(nil)

		w := perform(t, admin(), http.MethodPost, "/accreditation/admin/:id/approve",
			"/accreditation/admin/"+a.ID.String()+"/approve", nil, h.Approve)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[accreditationapp.AccreditationResponse](t, w)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.True(t, resp.Active)
		require.NotNil(t, resp.ExpiresAt)
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		h, _ := newAccreditationHandler()
		w := perform(t, admin(), http.MethodPost, "/accreditation/admin/:id/reject",
			"/accreditation/admin/"+uuid.NewString()+"/reject", `{}`, h.Reject)
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("cannot decide twice", func(t *testing.T) {
		h, repo := newAccreditationHandler()
		a := submission(t, uuid.New())
		require.NoError(t, a.Reject(uuid.New(), "blurry scan", a.CreatedAt))
		repo.On("FindByID", mock.Anything, a.ID).Return(a, nil)

		w := perform(t, admin(), http.MethodPost, "/accreditation/admin/:id/approve",
			"/accreditation/admin/"+a.ID.String()+"/approve", nil, h.Approve)
		assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)
	})
}
