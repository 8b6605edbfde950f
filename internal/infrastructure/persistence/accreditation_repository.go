package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccreditationRepository implements accreditation.Repository using GORM
type GormAccreditationRepository struct {
	db *gorm.DB
}

// NewGormAccreditationRepository creates a new GormAccreditationRepository
func NewGormAccreditationRepository(db *gorm.DB) *GormAccreditationRepository {
	return &GormAccreditationRepository{db: db}
}

// FindByID finds an accreditation by its ID
func (r *GormAccreditationRepository) FindByID(ctx context.Context, id uuid.UUID) (*accreditation.Accreditation, error) {
	var m models.AccreditationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists accreditations matching the filter
func (r *GormAccreditationRepository) FindAll(ctx context.Context, filter accreditation.Filter) ([]accreditation.Accreditation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccreditationModel{})
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	query, total, err := paginate(query, filter.Filter, CommonSortFields)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AccreditationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toAccreditations(rows), total, nil
}

// FindLatestByInvestor returns the investor's newest submission
func (r *GormAccreditationRepository) FindLatestByInvestor(ctx context.Context, investorID uuid.UUID) (*accreditation.Accreditation, error) {
	var m models.AccreditationModel
	if err := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindExpiring returns approvals whose expires_at is at or before now
func (r *GormAccreditationRepository) FindExpiring(ctx context.Context, now time.Time, limit int) ([]accreditation.Accreditation, error) {
	var rows []models.AccreditationModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", accreditation.StatusApproved, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAccreditations(rows), nil
}

// Save creates or fully updates an accreditation
func (r *GormAccreditationRepository) Save(ctx context.Context, a *accreditation.Accreditation) error {
	return translateError(r.db.WithContext(ctx).Save(models.AccreditationModelFromDomain(a)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormAccreditationRepository) SaveWithLock(ctx context.Context, a *accreditation.Accreditation) error {
	m := models.AccreditationModelFromDomain(a)
	m.Version = a.Version + 1
	if err := updateWithVersion(ctx, r.db, m, a.ID, a.Version); err != nil {
		return err
	}
	a.IncrementVersion()
	return nil
}

func toAccreditations(rows []models.AccreditationModel) []accreditation.Accreditation {
	out := make([]accreditation.Accreditation, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

// Ensure GormAccreditationRepository implements accreditation.Repository
var _ accreditation.Repository = (*GormAccreditationRepository)(nil)
