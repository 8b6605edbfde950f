package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
)

// AccreditationModel is the persistence model for an Accreditation.
// Evidence documents are kept as a JSON array on the row.
type AccreditationModel struct {
	AggregateModel
	InvestorID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Type            accreditation.Type       `gorm:"type:varchar(20);not null"`
	Documents       []accreditation.Document `gorm:"type:jsonb;serializer:json;not null"`
	Status          accreditation.Status     `gorm:"type:varchar(20);not null;index"`
	ReviewerID      *uuid.UUID               `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason string     `gorm:"type:varchar(500)"`
	ExpiresAt       *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (AccreditationModel) TableName() string {
	return "accreditations"
}

// ToDomain converts the persistence model to a domain Accreditation
func (m *AccreditationModel) ToDomain() *accreditation.Accreditation {
	return &accreditation.Accreditation{
		BaseAggregateRoot: m.ToAggregateRoot(),
		InvestorID:        m.InvestorID,
		Type:              m.Type,
		Documents:         m.Documents,
		Status:            m.Status,
		ReviewerID:        m.ReviewerID,
		ReviewedAt:        m.ReviewedAt,
		RejectionReason:   m.RejectionReason,
		ExpiresAt:         m.ExpiresAt,
	}
}

// FromDomain populates the model from a domain Accreditation
func (m *AccreditationModel) FromDomain(a *accreditation.Accreditation) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.InvestorID = a.InvestorID
	m.Type = a.Type
	m.Documents = a.Documents
	m.Status = a.Status
	m.ReviewerID = a.ReviewerID
	m.ReviewedAt = a.ReviewedAt
	m.RejectionReason = a.RejectionReason
	m.ExpiresAt = a.ExpiresAt
}

// AccreditationModelFromDomain creates a new persistence model from a domain Accreditation
func AccreditationModelFromDomain(a *accreditation.Accreditation) *AccreditationModel {
	m := &AccreditationModel{}
	m.FromDomain(a)
	return m
}
