package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/prediction"
)

// MarketModel is the persistence model for a prediction Market
type MarketModel struct {
	AggregateModel
	Question   string                  `gorm:"type:varchar(500);not null"`
	PropertyID *uuid.UUID              `gorm:"type:uuid;index"`
	CreatedBy  uuid.UUID               `gorm:"type:uuid;not null"`
	ClosesAt   time.Time               `gorm:"not null;index"`
	Status     prediction.MarketStatus `gorm:"type:varchar(20);not null;index"`
	Outcome    *prediction.Side        `gorm:"type:varchar(3)"`
	YesPool    decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	NoPool     decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	Currency   string                  `gorm:"type:varchar(3);not null;default:'USD'"`
	ResolvedAt *time.Time
}

// TableName returns the table name for GORM
func (MarketModel) TableName() string {
	return "prediction_markets"
}

// ToDomain converts the persistence model to a domain Market
func (m *MarketModel) ToDomain() *prediction.Market {
	return &prediction.Market{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Question:          m.Question,
		PropertyID:        m.PropertyID,
		CreatedBy:         m.CreatedBy,
		ClosesAt:          m.ClosesAt,
		Status:            m.Status,
		Outcome:           m.Outcome,
		YesPool:           money(m.YesPool, m.Currency),
		NoPool:            money(m.NoPool, m.Currency),
		ResolvedAt:        m.ResolvedAt,
	}
}

// FromDomain populates the model from a domain Market
func (m *MarketModel) FromDomain(mk *prediction.Market) {
	m.FromDomainAggregateRoot(mk.BaseAggregateRoot)
	m.Question = mk.Question
	m.PropertyID = mk.PropertyID
	m.CreatedBy = mk.CreatedBy
	m.ClosesAt = mk.ClosesAt
	m.Status = mk.Status
	m.Outcome = mk.Outcome
	m.YesPool = mk.YesPool.Amount()
	m.NoPool = mk.NoPool.Amount()
	m.Currency = string(mk.YesPool.Currency())
	m.ResolvedAt = mk.ResolvedAt
}

// MarketModelFromDomain creates a new persistence model from a domain Market
func MarketModelFromDomain(mk *prediction.Market) *MarketModel {
	m := &MarketModel{}
	m.FromDomain(mk)
	return m
}

// PositionModel is one stake in a market
type PositionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MarketID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Side       prediction.Side `gorm:"type:varchar(3);not null"`
	Stake      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Payout     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency   string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Refunded   bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PositionModel) TableName() string {
	return "prediction_positions"
}

// ToDomain converts the persistence model to a domain Position
func (m *PositionModel) ToDomain() prediction.Position {
	return prediction.Position{
		ID:         m.ID,
		MarketID:   m.MarketID,
		InvestorID: m.InvestorID,
		Side:       m.Side,
		Stake:      money(m.Stake, m.Currency),
		Payout:     money(m.Payout, m.Currency),
		Refunded:   m.Refunded,
		CreatedAt:  m.CreatedAt,
	}
}

// PositionModelFromDomain creates a persistence model from a Position
func PositionModelFromDomain(p *prediction.Position) *PositionModel {
	return &PositionModel{
		ID:         p.ID,
		MarketID:   p.MarketID,
		InvestorID: p.InvestorID,
		Side:       p.Side,
		Stake:      p.Stake.Amount(),
		Payout:     p.Payout.Amount(),
		Currency:   string(p.Stake.Currency()),
		Refunded:   p.Refunded,
		CreatedAt:  p.CreatedAt,
	}
}
