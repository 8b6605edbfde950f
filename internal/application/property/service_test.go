package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

func newListing(t *testing.T, name string, price int64, published bool) *property.Property {
	t.Helper()
	p, err := property.NewProperty(name, "Porto", property.PropertyTypeCommercial, 500,
		valueobject.USDAmount(decimal.NewFromInt(price)), decimal.NewFromFloat(5.25))
	require.NoError(t, err)
	if published {
		require.NoError(t, p.Publish())
	}
	p.ClearDomainEvents()
	return p
}

func TestService_Create(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	pub := &testutil.RecordingPublisher{}
	svc.SetEventPublisher(pub)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*property.Property")).Return(nil)

	resp, err := svc.Create(context.Background(), CreatePropertyInput{
		Name:        "Riverside Offices",
		Location:    "Austin, TX",
		Type:        "COMMERCIAL",
		TotalTokens: 10000,
		TokenPrice:  decimal.NewFromInt(100),
		AnnualYield: decimal.NewFromFloat(7.2),
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, int64(10000), resp.AvailableTokens)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, []string{property.EventTypePropertyCreated}, pub.EventTypes())

	_, err = svc.Create(context.Background(), CreatePropertyInput{Name: "x", Type: "CASTLE", TotalTokens: 1, TokenPrice: decimal.NewFromInt(1)})
	require.Error(t, err)
}

func TestService_Update(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	pub := &testutil.RecordingPublisher{}
	svc.SetEventPublisher(pub)
	p := newListing(t, "Old Mill", 20, true)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(nil)

	stale := p.GetVersion() + 3
	_, err := svc.Update(context.Background(), p.ID, UpdatePropertyInput{Version: &stale})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	resp, err := svc.Update(context.Background(), p.ID, UpdatePropertyInput{
		Name:        "Old Mill Lofts",
		Location:    "Porto",
		Type:        "RESIDENTIAL",
		TokenPrice:  decimal.NewFromInt(22),
		AnnualYield: decimal.NewFromInt(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "Old Mill Lofts", resp.Name)
	assert.True(t, decimal.NewFromInt(22).Equal(resp.TokenPrice))
	assert.Equal(t, []string{property.EventTypeTokenPriceChanged, property.EventTypePropertyUpdated}, pub.EventTypes())
}

func TestService_PublishAndClose(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	p := newListing(t, "Dockside", 10, false)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(nil)

	resp, err := svc.Publish(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)

	_, err = svc.Publish(context.Background(), p.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	resp, err = svc.Close(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", resp.Status)
	assert.NotNil(t, resp.ClosedAt)
}

func TestService_GetHidesDrafts(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	draft := newListing(t, "Unlisted", 10, false)
	repo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)

	_, err := svc.Get(context.Background(), draft.ID, false)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := svc.Get(context.Background(), draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, resp.ID)
}

func TestService_List(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	listed := newListing(t, "Listed", 10, true)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f property.Filter) bool {
		return f.Listed && f.OrderBy == "annual_yield" && f.OrderDir == "desc" &&
			f.Type != nil && *f.Type == property.PropertyTypeCommercial
	})).Return([]property.Property{*listed}, int64(1), nil)

	page, err := svc.List(context.Background(), ListPropertiesInput{Type: "COMMERCIAL", SortBy: "annual_yield", SortOrder: "DESC"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Listed", page.Items[0].Name)

	tests := []struct {
		name string
		in   ListPropertiesInput
	}{
		{"unknown sort column", ListPropertiesInput{SortBy: "id; drop table"}},
		{"bad sort order", ListPropertiesInput{SortOrder: "sideways"}},
		{"unknown status", ListPropertiesInput{Status: "SOLD"}},
		{"unknown type", ListPropertiesInput{Type: "CASTLE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.in)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestService_Compare(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	svc := NewService(repo, nil, zap.NewNop())
	a := newListing(t, "Alpha", 10, true)
	b := newListing(t, "Bravo", 8, true)

	repo.On("FindByIDs", mock.Anything, []uuid.UUID{b.ID, a.ID}).Return([]*property.Property{a, b}, nil)

	c, err := svc.Compare(context.Background(), []uuid.UUID{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, c.Rows, 2)
	assert.Equal(t, "Bravo", c.Rows[0].Name)
	assert.Equal(t, b.ID, c.LowestPriceID)

	_, err = svc.Compare(context.Background(), []uuid.UUID{a.ID})
	require.Error(t, err)
	_, err = svc.Compare(context.Background(), []uuid.UUID{a.ID, a.ID})
	require.Error(t, err)

	missing := uuid.New()
	repo.On("FindByIDs", mock.Anything, []uuid.UUID{a.ID, missing}).Return([]*property.Property{a}, nil)
	_, err = svc.Compare(context.Background(), []uuid.UUID{a.ID, missing})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Documents(t *testing.T) {
	repo := new(testutil.MockPropertyRepository)
	objects := storage.NewMemoryObjectStorage()
	svc := NewService(repo, objects, zap.NewNop())
	p := newListing(t, "Alpha", 10, true)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("SaveDocument", mock.Anything, mock.AnythingOfType("*property.Document")).Return(nil)

	upload, err := svc.CreateDocumentUploadURL(context.Background(), p.ID, DocumentUploadInput{FileName: "deed.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	require.NoError(t, objects.Upload(context.Background(), upload.StorageKey, []byte("%PDF-1.7"), "application/pdf"))

	doc, err := svc.AttachDocument(context.Background(), p.ID, AttachDocumentInput{
		Kind:        "deed",
		Name:        "Title deed",
		StorageKey:  upload.StorageKey,
		ContentType: "application/pdf",
		Size:        8,
	})
	require.NoError(t, err)
	assert.Equal(t, "DEED", doc.Kind)
	require.Len(t, p.Documents, 1)

	_, err = svc.AttachDocument(context.Background(), p.ID, AttachDocumentInput{
		Name:       "Missing",
		StorageKey: "properties/" + p.ID.String() + "/never-uploaded.pdf",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.AttachDocument(context.Background(), p.ID, AttachDocumentInput{Name: "Foreign", StorageKey: "kyc/someone/file.pdf"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	stored := p.Documents[0]
	repo.On("FindDocument", mock.Anything, p.ID, stored.ID).Return(&stored, nil)
	dl, err := svc.DocumentDownloadURL(context.Background(), p.ID, stored.ID)
	require.NoError(t, err)
	assert.Contains(t, dl.URL, upload.StorageKey)
}

func TestService_DocumentsWithoutStorage(t *testing.T) {
	svc := NewService(new(testutil.MockPropertyRepository), nil, zap.NewNop())
	_, err := svc.CreateDocumentUploadURL(context.Background(), uuid.New(), DocumentUploadInput{FileName: "a.pdf"})
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	_, err = svc.DocumentDownloadURL(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
}
