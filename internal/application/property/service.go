package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const (
	documentPrefix = "properties"
	presignTTL     = 15 * time.Minute
)

var sortableColumns = map[string]bool{
	"created_at":       true,
	"name":             true,
	"token_price":      true,
	"annual_yield":     true,
	"available_tokens": true,
}

// ErrStorageDisabled is returned by document operations without object storage
var ErrStorageDisabled = shared.NewDomainError(shared.ErrServiceUnavailable.Code, "Document storage is not enabled")

// Service manages property listings and their documents
type Service struct {
	repo      property.Repository
	storage   storage.ObjectStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a property service. objects may be nil when document
// storage is disabled.
func NewService(repo property.Repository, objects storage.ObjectStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, storage: objects, logger: logger}
}

// SetEventPublisher sets the publisher for property events
func (s *Service) SetEventPublisher(p shared.EventPublisher) { s.publisher = p }

// Create adds a draft listing
func (s *Service) Create(ctx context.Context, in CreatePropertyInput) (*PropertyResponse, error) {
	p, err := property.NewProperty(in.Name, in.Location, property.PropertyType(in.Type),
		in.TotalTokens, valueobject.USDAmount(in.TokenPrice), in.AnnualYield)
	if err != nil {
		return nil, err
	}
	p.Description = in.Description
	p.ImageURL = in.ImageURL

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int64("total_tokens", p.TotalTokens))
	s.publish(ctx, p)

	resp := ToPropertyResponse(p)
	return &resp, nil
}

// Update edits a listing
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdatePropertyInput) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Version != nil && *in.Version != p.GetVersion() {
		return nil, shared.ErrConcurrencyConflict
	}
	if err := p.UpdateDetails(in.Name, in.Location, in.Description, in.ImageURL,
		property.PropertyType(in.Type), valueobject.USDAmount(in.TokenPrice), in.AnnualYield); err != nil {
		return nil, err
	}
	return s.save(ctx, p, "Property updated")
}

// Publish opens a draft for investment
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Publish(); err != nil {
		return nil, err
	}
	return s.save(ctx, p, "Property published")
}

// Close stops new investment into a property
func (s *Service) Close(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	return s.save(ctx, p, "Property closed")
}

// Get returns a property. Drafts are only visible with includeDrafts.
func (s *Service) Get(ctx context.Context, id uuid.UUID, includeDrafts bool) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !includeDrafts && p.Status == property.StatusDraft {
		return nil, shared.ErrNotFound
	}
	resp := ToPropertyResponse(p)
	return &resp, nil
}

// List returns a page of properties
func (s *Service) List(ctx context.Context, in ListPropertiesInput) (*shared.Paginated[PropertyResponse], error) {
	filter := property.Filter{Filter: shared.DefaultFilter(), Listed: !in.IncludeDrafts}
	if in.Page > 0 {
		filter.Page = in.Page
	}
	if in.PageSize > 0 {
		filter.PageSize = in.PageSize
	}
	filter.Search = strings.TrimSpace(in.Search)
	if in.SortBy != "" {
		if !sortableColumns[in.SortBy] {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Cannot sort by "+in.SortBy)
		}
		filter.OrderBy = in.SortBy
	}
	switch strings.ToLower(in.SortOrder) {
	case "":
	case "asc", "desc":
		filter.OrderDir = strings.ToLower(in.SortOrder)
	default:
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Sort order must be asc or desc")
	}
	if in.Status != "" {
		status := property.Status(in.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown property status: "+in.Status)
		}
		filter.Status = &status
	}
	if in.Type != "" {
		typ := property.PropertyType(in.Type)
		if !typ.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown property type: "+in.Type)
		}
		filter.Type = &typ
	}

	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PropertyResponse, len(items))
	for i := range items {
		out[i] = ToPropertyResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Compare returns 2 to 4 listed properties side by side
func (s *Service) Compare(ctx context.Context, ids []uuid.UUID) (*ComparisonResponse, error) {
	if err := property.ValidateCompareIDs(ids); err != nil {
		return nil, err
	}
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*property.Property, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]*property.Property, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || p.Status == property.StatusDraft {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Property "+id.String()+" not found")
		}
		ordered = append(ordered, p)
	}
	return property.Compare(ordered)
}

// CreateDocumentUploadURL returns a presigned upload target for a document
func (s *Service) CreateDocumentUploadURL(ctx context.Context, propertyID uuid.UUID, in DocumentUploadInput) (*PresignedURL, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.repo.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := storage.NewObjectKey(documentPrefix, propertyID, in.FileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, presignTTL)
	if err != nil {
		return nil, err
	}
	return &PresignedURL{URL: url, StorageKey: key, ExpiresAt: expiresAt}, nil
}

// AttachDocument records a document uploaded through CreateDocumentUploadURL
func (s *Service) AttachDocument(ctx context.Context, propertyID uuid.UUID, in AttachDocumentInput) (*DocumentResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if !strings.HasPrefix(in.StorageKey, documentPrefix+"/"+propertyID.String()+"/") {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Storage key does not belong to this property")
	}
	kind := property.DocumentKind(strings.ToUpper(in.Kind))
	if kind == "" {
		kind = property.DocumentKindOther
	}

	p, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, in.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Document has not been uploaded")
	}

	if err := p.AttachDocument(property.Document{
		Kind:        kind,
		Name:        in.Name,
		StorageKey:  in.StorageKey,
		ContentType: in.ContentType,
		Size:        in.Size,
	}); err != nil {
		return nil, err
	}
	doc := p.Documents[len(p.Documents)-1]
	if err := s.repo.SaveDocument(ctx, &doc); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Property document attached",
		zap.String("property_id", propertyID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(doc.Kind)))

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// DocumentDownloadURL returns a presigned download URL for a document
func (s *Service) DocumentDownloadURL(ctx context.Context, propertyID, documentID uuid.UUID) (*PresignedURL, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	doc, err := s.repo.FindDocument(ctx, propertyID, documentID)
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.StorageKey, presignTTL)
	if err != nil {
		return nil, err
	}
	return &PresignedURL{URL: url, StorageKey: doc.StorageKey, ExpiresAt: expiresAt}, nil
}

func (s *Service) save(ctx context.Context, p *property.Property, msg string) (*PropertyResponse, error) {
	if err := s.repo.SaveWithLock(ctx, p); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			logger.Enrich(ctx, s.logger).Info("Property changed concurrently", zap.String("property_id", p.ID.String()))
		}
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info(msg,
		zap.String("property_id", p.ID.String()),
		zap.String("status", string(p.Status)))
	s.publish(ctx, p)
	resp := ToPropertyResponse(p)
	return &resp, nil
}

func (s *Service) publish(ctx context.Context, p *property.Property) {
	if err := shared.PublishAndClear(ctx, s.publisher, p); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish property events", zap.Error(err))
	}
}
