package liquidity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Aggregate types carried by liquidity events
const (
	AggregateTypeRedemption  = "RedemptionRequest"
	AggregateTypeFeeSchedule = "FeeSchedule"
)

// Event types
const (
	EventTypeRedemptionRequested = "RedemptionRequested"
	EventTypeRedemptionApproved  = "RedemptionApproved"
	EventTypeRedemptionRejected  = "RedemptionRejected"
	EventTypeRedemptionCancelled = "RedemptionCancelled"
	EventTypeRedemptionPaid      = "RedemptionPaid"
	EventTypeFeeScheduleUpdated  = "FeeScheduleUpdated"
)

// RedemptionRequestedEvent is raised when an investor opens a request
type RedemptionRequestedEvent struct {
	shared.BaseDomainEvent
	RedemptionNumber string          `json:"redemption_number"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	InvestmentID     uuid.UUID       `json:"investment_id"`
	PropertyID       uuid.UUID       `json:"property_id"`
	Tokens           int64           `json:"tokens"`
	FeePercent       decimal.Decimal `json:"fee_percent"`
	NetPayout        decimal.Decimal `json:"net_payout"`
}

// NewRedemptionRequestedEvent creates a RedemptionRequestedEvent
func NewRedemptionRequestedEvent(r *RedemptionRequest) *RedemptionRequestedEvent {
	return &RedemptionRequestedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRedemptionRequested, AggregateTypeRedemption, r.ID),
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
		InvestmentID:     r.InvestmentID,
		PropertyID:       r.PropertyID,
		Tokens:           r.Tokens,
		FeePercent:       r.FeePercent,
		NetPayout:        r.NetPayout.Amount(),
	}
}

// RedemptionApprovedEvent is raised when an admin approves a request
type RedemptionApprovedEvent struct {
	shared.BaseDomainEvent
	RedemptionNumber string    `json:"redemption_number"`
	InvestorID       uuid.UUID `json:"investor_id"`
	ReviewedBy       uuid.UUID `json:"reviewed_by"`
}

// NewRedemptionApprovedEvent creates a RedemptionApprovedEvent
func NewRedemptionApprovedEvent(r *RedemptionRequest) *RedemptionApprovedEvent {
	e := &RedemptionApprovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRedemptionApproved, AggregateTypeRedemption, r.ID),
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
	}
	if r.ReviewedBy != nil {
		e.ReviewedBy = *r.ReviewedBy
	}
	return e
}

// RedemptionRejectedEvent is raised when an admin declines a request
type RedemptionRejectedEvent struct {
	shared.BaseDomainEvent
	RedemptionNumber string    `json:"redemption_number"`
	InvestorID       uuid.UUID `json:"investor_id"`
	InvestmentID     uuid.UUID `json:"investment_id"`
	Tokens           int64     `json:"tokens"`
	Reason           string    `json:"reason"`
}

// NewRedemptionRejectedEvent creates a RedemptionRejectedEvent
func NewRedemptionRejectedEvent(r *RedemptionRequest) *RedemptionRejectedEvent {
	return &RedemptionRejectedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRedemptionRejected, AggregateTypeRedemption, r.ID),
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
		InvestmentID:     r.InvestmentID,
		Tokens:           r.Tokens,
		Reason:           r.RejectionReason,
	}
}

// RedemptionCancelledEvent is raised when the investor withdraws a request
type RedemptionCancelledEvent struct {
	shared.BaseDomainEvent
	RedemptionNumber string    `json:"redemption_number"`
	InvestorID       uuid.UUID `json:"investor_id"`
	InvestmentID     uuid.UUID `json:"investment_id"`
	Tokens           int64     `json:"tokens"`
}

// NewRedemptionCancelledEvent creates a RedemptionCancelledEvent
func NewRedemptionCancelledEvent(r *RedemptionRequest) *RedemptionCancelledEvent {
	return &RedemptionCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRedemptionCancelled, AggregateTypeRedemption, r.ID),
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
		InvestmentID:     r.InvestmentID,
		Tokens:           r.Tokens,
	}
}

// RedemptionPaidEvent is raised once the net payout has been sent
type RedemptionPaidEvent struct {
	shared.BaseDomainEvent
	RedemptionNumber string          `json:"redemption_number"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	InvestmentID     uuid.UUID       `json:"investment_id"`
	PropertyID       uuid.UUID       `json:"property_id"`
	Tokens           int64           `json:"tokens"`
	NetPayout        decimal.Decimal `json:"net_payout"`
	FeeAmount        decimal.Decimal `json:"fee_amount"`
	PaymentReference string          `json:"payment_reference"`
	PaidAt           time.Time       `json:"paid_at"`
}

// NewRedemptionPaidEvent creates a RedemptionPaidEvent
func NewRedemptionPaidEvent(r *RedemptionRequest) *RedemptionPaidEvent {
	paidAt := time.Now()
	if r.PaidAt != nil {
		paidAt = *r.PaidAt
	}
	return &RedemptionPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRedemptionPaid, AggregateTypeRedemption, r.ID),
		RedemptionNumber: r.RedemptionNumber,
		InvestorID:       r.InvestorID,
		InvestmentID:     r.InvestmentID,
		PropertyID:       r.PropertyID,
		Tokens:           r.Tokens,
		NetPayout:        r.NetPayout.Amount(),
		FeeAmount:        r.FeeAmount.Amount(),
		PaymentReference: r.PaymentReference,
		PaidAt:           paidAt,
	}
}

// FeeScheduleUpdatedEvent is raised when an admin replaces the fee tiers
type FeeScheduleUpdatedEvent struct {
	shared.BaseDomainEvent
	Tiers     []FeeTier `json:"tiers"`
	UpdatedBy uuid.UUID `json:"updated_by"`
}

// NewFeeScheduleUpdatedEvent creates a FeeScheduleUpdatedEvent
func NewFeeScheduleUpdatedEvent(s *FeeSchedule, updatedBy uuid.UUID) *FeeScheduleUpdatedEvent {
	return &FeeScheduleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeeScheduleUpdated, AggregateTypeFeeSchedule, uuid.Nil),
		Tiers:           s.Tiers(),
		UpdatedBy:       updatedBy,
	}
}
