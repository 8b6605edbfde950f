package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/investment"
)

// InvestmentModel is the persistence model for the Investment aggregate.
type InvestmentModel struct {
	AggregateModel
	InvestorID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	PropertyID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Tokens         int64             `gorm:"not null"`
	TokenPrice     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Currency       string            `gorm:"type:varchar(3);not null;default:'USD'"`
	ReservedTokens int64             `gorm:"not null;default:0"`
	RedeemedTokens int64             `gorm:"not null;default:0"`
	Status         investment.Status `gorm:"type:varchar(20);not null;index"`
	SettledAt      *time.Time
	FailureReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment
func (m *InvestmentModel) ToDomain() *investment.Investment {
	return &investment.Investment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		InvestorID:        m.InvestorID,
		PropertyID:        m.PropertyID,
		Tokens:            m.Tokens,
		TokenPrice:        money(m.TokenPrice, m.Currency),
		TotalAmount:       money(m.TotalAmount, m.Currency),
		ReservedTokens:    m.ReservedTokens,
		RedeemedTokens:    m.RedeemedTokens,
		Status:            m.Status,
		SettledAt:         m.SettledAt,
		FailureReason:     m.FailureReason,
	}
}

// FromDomain populates the model from a domain Investment
func (m *InvestmentModel) FromDomain(i *investment.Investment) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.InvestorID = i.InvestorID
	m.PropertyID = i.PropertyID
	m.Tokens = i.Tokens
	m.TokenPrice = i.TokenPrice.Amount()
	m.TotalAmount = i.TotalAmount.Amount()
	m.Currency = string(i.TotalAmount.Currency())
	m.ReservedTokens = i.ReservedTokens
	m.RedeemedTokens = i.RedeemedTokens
	m.Status = i.Status
	m.SettledAt = i.SettledAt
	m.FailureReason = i.FailureReason
}

// InvestmentModelFromDomain creates a new persistence model from a domain Investment
func InvestmentModelFromDomain(i *investment.Investment) *InvestmentModel {
	m := &InvestmentModel{}
	m.FromDomain(i)
	return m
}
