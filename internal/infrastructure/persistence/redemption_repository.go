package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRedemptionRepository implements liquidity.RedemptionRepository using GORM
type GormRedemptionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormRedemptionRepository creates a new GormRedemptionRepository
func NewGormRedemptionRepository(db *gorm.DB) *GormRedemptionRepository {
	return &GormRedemptionRepository{db: db, now: time.Now}
}

// FindByID finds a redemption request by its ID
func (r *GormRedemptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*liquidity.RedemptionRequest, error) {
	var m models.RedemptionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists redemption requests matching the filter
func (r *GormRedemptionRepository) FindAll(ctx context.Context, filter liquidity.RedemptionFilter) ([]liquidity.RedemptionRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RedemptionModel{})
	if filter.InvestorID != nil {
		query = query.Where("investor_id = ?", *filter.InvestorID)
	}
	if filter.InvestmentID != nil {
		query = query.Where("investment_id = ?", *filter.InvestmentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	query, total, err := paginate(query, filter.Filter, RedemptionSortFields)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.RedemptionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]liquidity.RedemptionRequest, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, total, nil
}

// Save creates or fully updates a redemption request
func (r *GormRedemptionRepository) Save(ctx context.Context, req *liquidity.RedemptionRequest) error {
	return translateError(r.db.WithContext(ctx).Save(models.RedemptionModelFromDomain(req)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormRedemptionRepository) SaveWithLock(ctx context.Context, req *liquidity.RedemptionRequest) error {
	m := models.RedemptionModelFromDomain(req)
	m.Version = req.Version + 1
	if err := updateWithVersion(ctx, r.db, m, req.ID, req.Version); err != nil {
		return err
	}
	req.IncrementVersion()
	return nil
}

// GenerateRedemptionNumber returns the next number of the day.
// Format: RDM-YYYYMMDD-NNNN (e.g., RDM-20250715-0001). The unique index on
// redemption_number rejects the loser of a race, which then retries.
func (r *GormRedemptionRepository) GenerateRedemptionNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RDM-%s-", r.now().UTC().Format("20060102"))

	var last models.RedemptionModel
	err := r.db.WithContext(ctx).
		Select("redemption_number").
		Where("redemption_number LIKE ?", prefix+"%").
		Order("redemption_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil {
		var n int
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(last.RedemptionNumber, prefix), "%d", &n); scanErr == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// Ensure GormRedemptionRepository implements liquidity.RedemptionRepository
var _ liquidity.RedemptionRepository = (*GormRedemptionRepository)(nil)

// GormFeeTierRepository implements liquidity.FeeTierRepository using GORM
type GormFeeTierRepository struct {
	db *gorm.DB
}

// NewGormFeeTierRepository creates a new GormFeeTierRepository
func NewGormFeeTierRepository(db *gorm.DB) *GormFeeTierRepository {
	return &GormFeeTierRepository{db: db}
}

// FindAll returns the stored tiers ordered by min_months
func (r *GormFeeTierRepository) FindAll(ctx context.Context) ([]liquidity.FeeTier, error) {
	var rows []models.FeeTierModel
	if err := r.db.WithContext(ctx).Order("min_months ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]liquidity.FeeTier, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// ReplaceAll deletes every stored tier and inserts tiers in one transaction
func (r *GormFeeTierRepository) ReplaceAll(ctx context.Context, tiers []liquidity.FeeTier) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.FeeTierModel{}).Error; err != nil {
			return err
		}
		if len(tiers) == 0 {
			return nil
		}
		rows := make([]*models.FeeTierModel, 0, len(tiers))
		for _, t := range tiers {
			rows = append(rows, models.FeeTierModelFromDomain(t, now))
		}
		return translateError(tx.Create(&rows).Error)
	})
}

// Ensure GormFeeTierRepository implements liquidity.FeeTierRepository
var _ liquidity.FeeTierRepository = (*GormFeeTierRepository)(nil)
