package property

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// AggregateTypeProperty is the aggregate type carried by property events
const AggregateTypeProperty = "Property"

// Event types
const (
	EventTypePropertyCreated   = "PropertyCreated"
	EventTypePropertyUpdated   = "PropertyUpdated"
	EventTypeTokenPriceChanged = "TokenPriceChanged"
	EventTypeTokensReserved    = "TokensReserved"
	EventTypeTokensReleased    = "TokensReleased"
)

// PropertyCreatedEvent is raised when a listing is drafted
type PropertyCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	TotalTokens int64           `json:"total_tokens"`
	TokenPrice  decimal.Decimal `json:"token_price"`
}

// NewPropertyCreatedEvent creates a PropertyCreatedEvent
func NewPropertyCreatedEvent(p *Property) *PropertyCreatedEvent {
	return &PropertyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyCreated, AggregateTypeProperty, p.ID),
		Name:            p.Name,
		TotalTokens:     p.TotalTokens,
		TokenPrice:      p.TokenPrice.Amount(),
	}
}

// PropertyUpdatedEvent is raised on detail or status changes
type PropertyUpdatedEvent struct {
	shared.BaseDomainEvent
	Status          Status `json:"status"`
	AvailableTokens int64  `json:"available_tokens"`
}

// NewPropertyUpdatedEvent creates a PropertyUpdatedEvent
func NewPropertyUpdatedEvent(p *Property) *PropertyUpdatedEvent {
	return &PropertyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyUpdated, AggregateTypeProperty, p.ID),
		Status:          p.Status,
		AvailableTokens: p.AvailableTokens,
	}
}

// TokenPriceChangedEvent is raised when the per-token valuation changes
type TokenPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewTokenPriceChangedEvent creates a TokenPriceChangedEvent
func NewTokenPriceChangedEvent(p *Property, old valueobject.Money) *TokenPriceChangedEvent {
	return &TokenPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTokenPriceChanged, AggregateTypeProperty, p.ID),
		OldPrice:        old.Amount(),
		NewPrice:        p.TokenPrice.Amount(),
	}
}

// TokensReservedEvent is raised when tokens are sold
type TokensReservedEvent struct {
	shared.BaseDomainEvent
	Tokens          int64  `json:"tokens"`
	AvailableTokens int64  `json:"available_tokens"`
	Status          Status `json:"status"`
}

// NewTokensReservedEvent creates a TokensReservedEvent
func NewTokensReservedEvent(p *Property, n int64) *TokensReservedEvent {
	return &TokensReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTokensReserved, AggregateTypeProperty, p.ID),
		Tokens:          n,
		AvailableTokens: p.AvailableTokens,
		Status:          p.Status,
	}
}

// TokensReleasedEvent is raised when tokens return to the supply
type TokensReleasedEvent struct {
	shared.BaseDomainEvent
	Tokens          int64     `json:"tokens"`
	AvailableTokens int64     `json:"available_tokens"`
	PropertyID      uuid.UUID `json:"property_id"`
}

// NewTokensReleasedEvent creates a TokensReleasedEvent
func NewTokensReleasedEvent(p *Property, n int64) *TokensReleasedEvent {
	return &TokensReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTokensReleased, AggregateTypeProperty, p.ID),
		Tokens:          n,
		AvailableTokens: p.AvailableTokens,
		PropertyID:      p.ID,
	}
}
