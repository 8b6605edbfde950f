package investment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// AggregateTypeInvestment is the aggregate type carried by investment events
const AggregateTypeInvestment = "Investment"

const (
	EventTypeInvestmentCreated = "InvestmentCreated"
	EventTypeInvestmentSettled = "InvestmentSettled"
	EventTypeInvestmentFailed  = "InvestmentFailed"
)

// InvestmentCreatedEvent is raised when a purchase is placed
type InvestmentCreatedEvent struct {
	shared.BaseDomainEvent
	InvestorID  uuid.UUID       `json:"investor_id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Tokens      int64           `json:"tokens"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewInvestmentCreatedEvent(i *Investment) *InvestmentCreatedEvent {
	return &InvestmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestmentCreated, AggregateTypeInvestment, i.ID),
		InvestorID:      i.InvestorID,
		PropertyID:      i.PropertyID,
		Tokens:          i.Tokens,
		TotalAmount:     i.TotalAmount.Amount(),
	}
}

// InvestmentSettledEvent is raised when tokens are transferred to the investor.
// Referral rewards listen for it.
type InvestmentSettledEvent struct {
	shared.BaseDomainEvent
	InvestorID  uuid.UUID       `json:"investor_id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Tokens      int64           `json:"tokens"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewInvestmentSettledEvent(i *Investment) *InvestmentSettledEvent {
	return &InvestmentSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestmentSettled, AggregateTypeInvestment, i.ID),
		InvestorID:      i.InvestorID,
		PropertyID:      i.PropertyID,
		Tokens:          i.Tokens,
		TotalAmount:     i.TotalAmount.Amount(),
	}
}

// InvestmentFailedEvent is raised when settlement fails
type InvestmentFailedEvent struct {
	shared.BaseDomainEvent
	InvestorID uuid.UUID `json:"investor_id"`
	Reason     string    `json:"reason"`
}

func NewInvestmentFailedEvent(i *Investment) *InvestmentFailedEvent {
	return &InvestmentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestmentFailed, AggregateTypeInvestment, i.ID),
		InvestorID:      i.InvestorID,
		Reason:          i.FailureReason,
	}
}
