package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/liquidity"
)

// RedemptionModel is the persistence model for a RedemptionRequest. The
// quote is snapshotted at submission so later tier changes never alter it.
type RedemptionModel struct {
	AggregateModel
	RedemptionNumber string                     `gorm:"type:varchar(30);not null;uniqueIndex"`
	InvestorID       uuid.UUID                  `gorm:"type:uuid;not null;index"`
	InvestmentID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	PropertyID       uuid.UUID                  `gorm:"type:uuid;not null"`
	Tokens           int64                      `gorm:"not null"`
	TokenValue       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Currency         string                     `gorm:"type:varchar(3);not null;default:'USD'"`
	HoldingMonths    int                        `gorm:"not null"`
	FeePercent       decimal.Decimal            `gorm:"type:decimal(7,4);not null"`
	TierMinMonths    int                        `gorm:"not null"`
	TierMaxMonths    *int                       ``
	GrossValue       decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	FeeAmount        decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	NetPayout        decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Status           liquidity.RedemptionStatus `gorm:"type:varchar(20);not null;index"`
	Notes            string                     `gorm:"type:text"`
	ReviewedBy       *uuid.UUID                 `gorm:"type:uuid"`
	ReviewedAt       *time.Time
	RejectionReason  string `gorm:"type:varchar(500)"`
	CancelledAt      *time.Time
	PaidAt           *time.Time
	PaymentReference string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (RedemptionModel) TableName() string {
	return "redemption_requests"
}

// ToDomain converts the persistence model to a domain RedemptionRequest
func (m *RedemptionModel) ToDomain() *liquidity.RedemptionRequest {
	return &liquidity.RedemptionRequest{
		BaseAggregateRoot: m.ToAggregateRoot(),
		RedemptionNumber:  m.RedemptionNumber,
		InvestorID:        m.InvestorID,
		InvestmentID:      m.InvestmentID,
		PropertyID:        m.PropertyID,
		Tokens:            m.Tokens,
		TokenValue:        money(m.TokenValue, m.Currency),
		HoldingMonths:     m.HoldingMonths,
		FeePercent:        m.FeePercent,
		TierMinMonths:     m.TierMinMonths,
		TierMaxMonths:     m.TierMaxMonths,
		GrossValue:        money(m.GrossValue, m.Currency),
		FeeAmount:         money(m.FeeAmount, m.Currency),
		NetPayout:         money(m.NetPayout, m.Currency),
		Status:            m.Status,
		Notes:             m.Notes,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
		RejectionReason:   m.RejectionReason,
		CancelledAt:       m.CancelledAt,
		PaidAt:            m.PaidAt,
		PaymentReference:  m.PaymentReference,
	}
}

// FromDomain populates the model from a domain RedemptionRequest
func (m *RedemptionModel) FromDomain(r *liquidity.RedemptionRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RedemptionNumber = r.RedemptionNumber
	m.InvestorID = r.InvestorID
	m.InvestmentID = r.InvestmentID
	m.PropertyID = r.PropertyID
	m.Tokens = r.Tokens
	m.TokenValue = r.TokenValue.Amount()
	m.Currency = string(r.GrossValue.Currency())
	m.HoldingMonths = r.HoldingMonths
	m.FeePercent = r.FeePercent
	m.TierMinMonths = r.TierMinMonths
	m.TierMaxMonths = r.TierMaxMonths
	m.GrossValue = r.GrossValue.Amount()
	m.FeeAmount = r.FeeAmount.Amount()
	m.NetPayout = r.NetPayout.Amount()
	m.Status = r.Status
	m.Notes = r.Notes
	m.ReviewedBy = r.ReviewedBy
	m.ReviewedAt = r.ReviewedAt
	m.RejectionReason = r.RejectionReason
	m.CancelledAt = r.CancelledAt
	m.PaidAt = r.PaidAt
	m.PaymentReference = r.PaymentReference
}

// RedemptionModelFromDomain creates a new persistence model from a domain RedemptionRequest
func RedemptionModelFromDomain(r *liquidity.RedemptionRequest) *RedemptionModel {
	m := &RedemptionModel{}
	m.FromDomain(r)
	return m
}

// FeeTierModel is one stored row of the fee schedule
type FeeTierModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	MinMonths  int             `gorm:"not null;uniqueIndex"`
	MaxMonths  *int            ``
	FeePercent decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeeTierModel) TableName() string {
	return "liquidity_fee_tiers"
}

// ToDomain converts the persistence model to a domain FeeTier
func (m *FeeTierModel) ToDomain() liquidity.FeeTier {
	return liquidity.NewFeeTier(m.MinMonths, m.MaxMonths, m.FeePercent)
}

// FeeTierModelFromDomain creates a persistence model from a FeeTier
func FeeTierModelFromDomain(t liquidity.FeeTier, now time.Time) *FeeTierModel {
	return &FeeTierModel{
		MinMonths:  t.MinMonths,
		MaxMonths:  t.MaxMonths,
		FeePercent: t.FeePercent,
		CreatedAt:  now,
	}
}
