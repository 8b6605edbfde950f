package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// PropertyType classifies a tokenized property
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "RESIDENTIAL"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
	PropertyTypeIndustrial  PropertyType = "INDUSTRIAL"
	PropertyTypeLand        PropertyType = "LAND"
)

// IsValid checks if the type is known
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeIndustrial, PropertyTypeLand:
		return true
	}
	return false
}

// Status is the listing state of a property
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusActive Status = "ACTIVE"
	StatusFunded Status = "FUNDED"
	StatusClosed Status = "CLOSED"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusFunded, StatusClosed:
		return true
	}
	return false
}

// IsInvestable reports whether tokens can be bought
func (s Status) IsInvestable() bool { return s == StatusActive }

// Property is a real-estate asset split into tokens
type Property struct {
	shared.BaseAggregateRoot
	Name            string
	Description     string
	Location        string
	Type            PropertyType
	TotalTokens     int64
	AvailableTokens int64
	TokenPrice      valueobject.Money
	AnnualYield     decimal.Decimal // expected yield, percent per year
	ImageURL        string
	Status          Status
	PublishedAt     *time.Time
	ClosedAt        *time.Time
	Documents       []Document
}

// NewProperty creates a draft listing with every token available
func NewProperty(name, location string, typ PropertyType, totalTokens int64, tokenPrice valueobject.Money, annualYield decimal.Decimal) (*Property, error) {
	p := &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            StatusDraft,
	}
	if err := p.setDetails(name, location, typ, tokenPrice, annualYield); err != nil {
		return nil, err
	}
	if totalTokens <= 0 {
		return nil, shared.NewDomainError("INVALID_TOKENS", "Total tokens must be positive")
	}
	p.TotalTokens = totalTokens
	p.AvailableTokens = totalTokens
	p.AddDomainEvent(NewPropertyCreatedEvent(p))
	return p, nil
}

func (p *Property) setDetails(name, location string, typ PropertyType, tokenPrice valueobject.Money, annualYield decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	if !typ.IsValid() {
		return shared.NewDomainError("INVALID_PROPERTY_TYPE", fmt.Sprintf("Unknown property type %q", typ))
	}
	if !tokenPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Token price must be positive")
	}
	if annualYield.IsNegative() {
		return shared.NewDomainError("INVALID_YIELD", "Annual yield cannot be negative")
	}
	p.Name = name
	p.Location = strings.TrimSpace(location)
	p.Type = typ
	p.TokenPrice = tokenPrice
	p.AnnualYield = annualYield
	return nil
}

// UpdateDetails edits the listing while it is not closed
func (p *Property) UpdateDetails(name, location, description, imageURL string, typ PropertyType, tokenPrice valueobject.Money, annualYield decimal.Decimal) error {
	if p.Status == StatusClosed {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Closed properties cannot be edited")
	}
	old := p.TokenPrice
	if err := p.setDetails(name, location, typ, tokenPrice, annualYield); err != nil {
		return err
	}
	p.Description = description
	p.ImageURL = imageURL
	p.Touch()
	if !old.Equals(tokenPrice) {
		p.AddDomainEvent(NewTokenPriceChangedEvent(p, old))
	}
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

// Publish opens the property for investment
func (p *Property) Publish() error {
	if p.Status != StatusDraft {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot publish property in %s status", p.Status))
	}
	now := time.Now()
	p.Status = StatusActive
	p.PublishedAt = &now
	p.UpdatedAt = now
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

// Close stops trading on the property
func (p *Property) Close() error {
	if p.Status == StatusClosed || p.Status == StatusDraft {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot close property in %s status", p.Status))
	}
	now := time.Now()
	p.Status = StatusClosed
	p.ClosedAt = &now
	p.UpdatedAt = now
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))
	return nil
}

// ReserveTokens takes tokens out of the available supply for a purchase.
// The property becomes FUNDED when the last token is reserved.
func (p *Property) ReserveTokens(n int64) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_TOKENS", "Token count must be positive")
	}
	if !p.Status.IsInvestable() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Property is %s and not open for investment", p.Status))
	}
	if n > p.AvailableTokens {
		return shared.NewDomainError(shared.ErrInsufficientTokens.Code,
			fmt.Sprintf("Only %d tokens available, requested %d", p.AvailableTokens, n))
	}
	p.AvailableTokens -= n
	if p.AvailableTokens == 0 {
		p.Status = StatusFunded
	}
	p.Touch()
	p.AddDomainEvent(NewTokensReservedEvent(p, n))
	return nil
}

// ReleaseTokens returns tokens to the available supply, either from a failed
// purchase or a paid redemption. A funded property becomes active again.
func (p *Property) ReleaseTokens(n int64) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_TOKENS", "Token count must be positive")
	}
	if p.AvailableTokens+n > p.TotalTokens {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Cannot release more tokens than were issued")
	}
	p.AvailableTokens += n
	if p.Status == StatusFunded {
		p.Status = StatusActive
	}
	p.Touch()
	p.AddDomainEvent(NewTokensReleasedEvent(p, n))
	return nil
}

// SoldTokens is the number of tokens held by investors
func (p *Property) SoldTokens() int64 {
	return p.TotalTokens - p.AvailableTokens
}

// FundedPercent is the share of tokens sold, 0-100
func (p *Property) FundedPercent() decimal.Decimal {
	if p.TotalTokens == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(p.SoldTokens()).
		Div(decimal.NewFromInt(p.TotalTokens)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// MarketCap is total tokens valued at the current token price
func (p *Property) MarketCap() valueobject.Money {
	return p.TokenPrice.MultiplyByInt(p.TotalTokens)
}

// AttachDocument records an uploaded document
func (p *Property) AttachDocument(doc Document) error {
	if doc.Name == "" || doc.StorageKey == "" {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Document name and storage key are required")
	}
	if len(p.Documents) >= MaxDocuments {
		return shared.NewDomainError("TOO_MANY_DOCUMENTS", fmt.Sprintf("A property can have at most %d documents", MaxDocuments))
	}
	doc.PropertyID = p.ID
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	p.Documents = append(p.Documents, doc)
	p.Touch()
	return nil
}
