package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/property"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	AggregateModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Description     string                `gorm:"type:text"`
	Location        string                `gorm:"type:varchar(300)"`
	Type            property.PropertyType `gorm:"type:varchar(20);not null;index"`
	TotalTokens     int64                 `gorm:"not null"`
	AvailableTokens int64                 `gorm:"not null"`
	TokenPrice      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency        string                `gorm:"type:varchar(3);not null;default:'USD'"`
	AnnualYield     decimal.Decimal       `gorm:"type:decimal(7,4);not null;default:0"`
	ImageURL        string                `gorm:"type:varchar(500)"`
	Status          property.Status       `gorm:"type:varchar(20);not null;index"`
	PublishedAt     *time.Time
	ClosedAt        *time.Time
	Documents       []PropertyDocumentModel `gorm:"foreignKey:PropertyID"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Location:          m.Location,
		Type:              m.Type,
		TotalTokens:       m.TotalTokens,
		AvailableTokens:   m.AvailableTokens,
		TokenPrice:        money(m.TokenPrice, m.Currency),
		AnnualYield:       m.AnnualYield,
		ImageURL:          m.ImageURL,
		Status:            m.Status,
		PublishedAt:       m.PublishedAt,
		ClosedAt:          m.ClosedAt,
	}
	for i := range m.Documents {
		p.Documents = append(p.Documents, m.Documents[i].ToDomain())
	}
	return p
}

// FromDomain populates the model from a domain Property. Documents are
// stored separately through SaveDocument.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Location = p.Location
	m.Type = p.Type
	m.TotalTokens = p.TotalTokens
	m.AvailableTokens = p.AvailableTokens
	m.TokenPrice = p.TokenPrice.Amount()
	m.Currency = string(p.TokenPrice.Currency())
	m.AnnualYield = p.AnnualYield
	m.ImageURL = p.ImageURL
	m.Status = p.Status
	m.PublishedAt = p.PublishedAt
	m.ClosedAt = p.ClosedAt
}

// PropertyModelFromDomain creates a new persistence model from a domain Property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// PropertyDocumentModel is a document attached to a property
type PropertyDocumentModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	PropertyID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Kind        property.DocumentKind `gorm:"type:varchar(20);not null"`
	Name        string                `gorm:"type:varchar(255);not null"`
	StorageKey  string                `gorm:"type:varchar(500);not null;uniqueIndex"`
	ContentType string                `gorm:"type:varchar(100)"`
	Size        int64                 `gorm:"not null;default:0"`
	UploadedAt  time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PropertyDocumentModel) TableName() string {
	return "property_documents"
}

// ToDomain converts the persistence model to a domain Document
func (m *PropertyDocumentModel) ToDomain() property.Document {
	return property.Document{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		Kind:        m.Kind,
		Name:        m.Name,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		Size:        m.Size,
		UploadedAt:  m.UploadedAt,
	}
}

// PropertyDocumentModelFromDomain creates a persistence model from a Document
func PropertyDocumentModelFromDomain(d *property.Document) *PropertyDocumentModel {
	return &PropertyDocumentModel{
		ID:          d.ID,
		PropertyID:  d.PropertyID,
		Kind:        d.Kind,
		Name:        d.Name,
		StorageKey:  d.StorageKey,
		ContentType: d.ContentType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt,
	}
}
