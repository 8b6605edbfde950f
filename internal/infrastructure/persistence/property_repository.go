package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) withDocuments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("uploaded_at ASC")
	})
}

// FindByID finds a property and its documents
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var m models.PropertyModel
	if err := r.withDocuments(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindByIDs finds several properties; missing ids are skipped
func (r *GormPropertyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*property.Property, error) {
	if len(ids) == 0 {
		return []*property.Property{}, nil
	}
	var rows []models.PropertyModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*property.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindAll lists properties matching the filter, without documents
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter property.Filter) ([]property.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Listed {
		query = query.Where("status <> ?", property.StatusDraft)
	}

	query, total, err := paginate(query, filter.Filter, PropertySortFields)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.PropertyModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]property.Property, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Save creates or fully updates a property. Documents are stored with SaveDocument.
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	m := models.PropertyModelFromDomain(p)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormPropertyRepository) SaveWithLock(ctx context.Context, p *property.Property) error {
	m := models.PropertyModelFromDomain(p)
	m.Version = p.Version + 1
	if err := updateWithVersion(ctx, r.db, m, p.ID, p.Version); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// SaveDocument stores a document row
func (r *GormPropertyRepository) SaveDocument(ctx context.Context, doc *property.Document) error {
	return translateError(r.db.WithContext(ctx).Create(models.PropertyDocumentModelFromDomain(doc)).Error)
}

// FindDocument finds one document of a property
func (r *GormPropertyRepository) FindDocument(ctx context.Context, propertyID, documentID uuid.UUID) (*property.Document, error) {
	var m models.PropertyDocumentModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND id = ?", propertyID, documentID).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	doc := m.ToDomain()
	return &doc, nil
}

// Ensure GormPropertyRepository implements property.Repository
var _ property.Repository = (*GormPropertyRepository)(nil)
