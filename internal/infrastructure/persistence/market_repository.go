package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMarketRepository implements prediction.Repository using GORM
type GormMarketRepository struct {
	db *gorm.DB
}

// NewGormMarketRepository creates a new GormMarketRepository
func NewGormMarketRepository(db *gorm.DB) *GormMarketRepository {
	return &GormMarketRepository{db: db}
}

// FindByID finds a market by its ID
func (r *GormMarketRepository) FindByID(ctx context.Context, id uuid.UUID) (*prediction.Market, error) {
	var m models.MarketModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists markets matching the filter
func (r *GormMarketRepository) FindAll(ctx context.Context, filter prediction.Filter) ([]prediction.Market, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MarketModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	query, total, err := paginate(query, filter.Filter, MarketSortFields)
	if err != nil {
		return nil, 0, err
	}
	var rows []models.MarketModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toMarkets(rows), total, nil
}

// FindDueForClose returns open markets whose close time is at or before now
func (r *GormMarketRepository) FindDueForClose(ctx context.Context, now time.Time, limit int) ([]prediction.Market, error) {
	var rows []models.MarketModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND closes_at <= ?", prediction.MarketStatusOpen, now).
		Order("closes_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMarkets(rows), nil
}

// FindPositions returns every position of a market, oldest first
func (r *GormMarketRepository) FindPositions(ctx context.Context, marketID uuid.UUID) ([]prediction.Position, error) {
	return r.findPositions(ctx, "market_id = ?", marketID)
}

// FindPositionsByInvestor returns every position of an investor, oldest first
func (r *GormMarketRepository) FindPositionsByInvestor(ctx context.Context, investorID uuid.UUID) ([]prediction.Position, error) {
	return r.findPositions(ctx, "investor_id = ?", investorID)
}

func (r *GormMarketRepository) findPositions(ctx context.Context, cond string, id uuid.UUID) ([]prediction.Position, error) {
	var rows []models.PositionModel
	if err := r.db.WithContext(ctx).Where(cond, id).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]prediction.Position, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// SaveWithPosition updates the market pools and inserts the position atomically
func (r *GormMarketRepository) SaveWithPosition(ctx context.Context, m *prediction.Market, p *prediction.Position) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateMarket(ctx, tx, m); err != nil {
			return err
		}
		return translateError(tx.Create(models.PositionModelFromDomain(p)).Error)
	})
	if err != nil {
		return err
	}
	m.IncrementVersion()
	return nil
}

// SaveSettlement updates the market and every settled position atomically
func (r *GormMarketRepository) SaveSettlement(ctx context.Context, m *prediction.Market, positions []prediction.Position) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateMarket(ctx, tx, m); err != nil {
			return err
		}
		for i := range positions {
			p := &positions[i]
			if err := tx.Model(&models.PositionModel{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"payout":   p.Payout.Amount(),
					"refunded": p.Refunded,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.IncrementVersion()
	return nil
}

// Save creates or fully updates a market
func (r *GormMarketRepository) Save(ctx context.Context, m *prediction.Market) error {
	return translateError(r.db.WithContext(ctx).Save(models.MarketModelFromDomain(m)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormMarketRepository) SaveWithLock(ctx context.Context, m *prediction.Market) error {
	if err := updateMarket(ctx, r.db, m); err != nil {
		return err
	}
	m.IncrementVersion()
	return nil
}

func updateMarket(ctx context.Context, db *gorm.DB, m *prediction.Market) error {
	row := models.MarketModelFromDomain(m)
	row.Version = m.Version + 1
	return updateWithVersion(ctx, db, row, m.ID, m.Version)
}

func toMarkets(rows []models.MarketModel) []prediction.Market {
	out := make([]prediction.Market, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}

// Ensure GormMarketRepository implements prediction.Repository
var _ prediction.Repository = (*GormMarketRepository)(nil)
