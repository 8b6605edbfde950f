package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/referral"
)

// ReferralModel is the persistence model for a Referral
type ReferralModel struct {
	AggregateModel
	ReferrerID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_referrals_referrer_email"`
	InviteeEmail string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_referrals_referrer_email"`
	InviteeID    *uuid.UUID      `gorm:"type:uuid;index"`
	Code         string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Status       referral.Status `gorm:"type:varchar(20);not null"`
	Reward       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	InvitedAt    time.Time       `gorm:"not null"`
	SignedUpAt   *time.Time
	RewardedAt   *time.Time
}

// TableName returns the table name for GORM
func (ReferralModel) TableName() string {
	return "referrals"
}

// ToDomain converts the persistence model to a domain Referral
func (m *ReferralModel) ToDomain() *referral.Referral {
	return &referral.Referral{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ReferrerID:        m.ReferrerID,
		InviteeEmail:      m.InviteeEmail,
		InviteeID:         m.InviteeID,
		Code:              m.Code,
		Status:            m.Status,
		Reward:            money(m.Reward, m.Currency),
		InvitedAt:         m.InvitedAt,
		SignedUpAt:        m.SignedUpAt,
		RewardedAt:        m.RewardedAt,
	}
}

// FromDomain populates the model from a domain Referral
func (m *ReferralModel) FromDomain(r *referral.Referral) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReferrerID = r.ReferrerID
	m.InviteeEmail = r.InviteeEmail
	m.InviteeID = r.InviteeID
	m.Code = r.Code
	m.Status = r.Status
	m.Reward = r.Reward.Amount()
	m.Currency = string(r.Reward.Currency())
	m.InvitedAt = r.InvitedAt
	m.SignedUpAt = r.SignedUpAt
	m.RewardedAt = r.RewardedAt
}

// ReferralModelFromDomain creates a new persistence model from a domain Referral
func ReferralModelFromDomain(r *referral.Referral) *ReferralModel {
	m := &ReferralModel{}
	m.FromDomain(r)
	return m
}
