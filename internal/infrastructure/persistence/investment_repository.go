package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvestmentRepository implements investment.Repository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// FindByID finds an investment by its ID
func (r *GormInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	var m models.InvestmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists investments matching the filter
func (r *GormInvestmentRepository) FindAll(ctx context.Context, filter investment.Filter) ([]investment.Investment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvestmentModel{})
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	query, total, err := paginate(query, filter.Filter, InvestmentSortFields)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.InvestmentModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toInvestments(rows), total, nil
}

// FindSettledByInvestor returns every settled investment of the investor, oldest first
func (r *GormInvestmentRepository) FindSettledByInvestor(ctx context.Context, investorID uuid.UUID) ([]investment.Investment, error) {
	var rows []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Where("investor_id = ? AND status = ?", investorID, investment.StatusSettled).
		Order("settled_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvestments(rows), nil
}

// CountSettledByInvestor counts the investor's settled investments
func (r *GormInvestmentRepository) CountSettledByInvestor(ctx context.Context, investorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.InvestmentModel{}).
		Where("investor_id = ? AND status = ?", investorID, investment.StatusSettled).
		Count(&n).Error
	return n, err
}

// Save creates or fully updates an investment
func (r *GormInvestmentRepository) Save(ctx context.Context, i *investment.Investment) error {
	return translateError(r.db.WithContext(ctx).Save(models.InvestmentModelFromDomain(i)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInvestmentRepository) SaveWithLock(ctx context.Context, i *investment.Investment) error {
	m := models.InvestmentModelFromDomain(i)
	m.Version = i.Version + 1
	if err := updateWithVersion(ctx, r.db, m, i.ID, i.Version); err != nil {
		return err
	}
	i.IncrementVersion()
	return nil
}

func toInvestments(rows []models.InvestmentModel) []investment.Investment {
	out := make([]investment.Investment, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

// Ensure GormInvestmentRepository implements investment.Repository
var _ investment.Repository = (*GormInvestmentRepository)(nil)
