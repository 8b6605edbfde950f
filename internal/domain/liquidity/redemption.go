package liquidity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// RedemptionStatus is the lifecycle state of a redemption request
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "PENDING"
	RedemptionStatusApproved  RedemptionStatus = "APPROVED"
	RedemptionStatusRejected  RedemptionStatus = "REJECTED"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
	RedemptionStatusPaid      RedemptionStatus = "PAID"
)

// IsValid checks if the status is a known RedemptionStatus
func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionStatusPending, RedemptionStatusApproved, RedemptionStatusRejected,
		RedemptionStatusCancelled, RedemptionStatusPaid:
		return true
	}
	return false
}

func (s RedemptionStatus) String() string { return string(s) }

// IsTerminal reports whether no further transitions are possible
func (s RedemptionStatus) IsTerminal() bool {
	return s == RedemptionStatusRejected || s == RedemptionStatusCancelled || s == RedemptionStatusPaid
}

// HoldsTokens reports whether tokens stay reserved on the investment
func (s RedemptionStatus) HoldsTokens() bool {
	return s == RedemptionStatusPending || s == RedemptionStatusApproved
}

// CanReview returns true if the request can be approved or rejected
func (s RedemptionStatus) CanReview() bool { return s == RedemptionStatusPending }

// CanCancel returns true if the investor can withdraw the request
func (s RedemptionStatus) CanCancel() bool { return s == RedemptionStatusPending }

// CanPay returns true if the payout can be recorded
func (s RedemptionStatus) CanPay() bool { return s == RedemptionStatusApproved }

// RedemptionRequest is an investor's request to sell tokens back to the
// platform before the property exits. The payout quote is fixed when the
// request is created; later fee schedule changes do not affect it.
type RedemptionRequest struct {
	shared.BaseAggregateRoot
	RedemptionNumber string
	InvestorID       uuid.UUID
	InvestmentID     uuid.UUID
	PropertyID       uuid.UUID
	Tokens           int64
	TokenValue       valueobject.Money
	HoldingMonths    int
	FeePercent       decimal.Decimal
	TierMinMonths    int
	TierMaxMonths    *int
	GrossValue       valueobject.Money
	FeeAmount        valueobject.Money
	NetPayout        valueobject.Money
	Status           RedemptionStatus
	Notes            string
	ReviewedBy       *uuid.UUID
	ReviewedAt       *time.Time
	RejectionReason  string
	CancelledAt      *time.Time
	PaidAt           *time.Time
	PaymentReference string
}

// NewRedemptionRequest opens a pending request from a quote
func NewRedemptionRequest(
	number string,
	investorID, investmentID, propertyID uuid.UUID,
	quote PayoutQuote,
	notes string,
) (*RedemptionRequest, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_REDEMPTION_NUMBER", "Redemption number cannot be empty")
	}
	if investorID == uuid.Nil || investmentID == uuid.Nil || propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Investor, investment and property are required")
	}
	if quote.Tokens <= 0 {
		return nil, shared.NewDomainError("INVALID_TOKENS", "Tokens to redeem must be positive")
	}
	if len(notes) > 1000 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Notes cannot exceed 1000 characters")
	}

	r := &RedemptionRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RedemptionNumber:  number,
		InvestorID:        investorID,
		InvestmentID:      investmentID,
		PropertyID:        propertyID,
		Tokens:            quote.Tokens,
		TokenValue:        quote.TokenValue,
		HoldingMonths:     quote.HoldingMonths,
		FeePercent:        quote.Tier.FeePercent,
		TierMinMonths:     quote.Tier.MinMonths,
		TierMaxMonths:     quote.Tier.MaxMonths,
		GrossValue:        quote.GrossValue,
		FeeAmount:         quote.FeeAmount,
		NetPayout:         quote.NetPayout,
		Status:            RedemptionStatusPending,
		Notes:             notes,
	}
	r.AddDomainEvent(NewRedemptionRequestedEvent(r))
	return r, nil
}

// Tier reconstructs the fee tier applied to this request
func (r *RedemptionRequest) Tier() FeeTier {
	return FeeTier{MinMonths: r.TierMinMonths, MaxMonths: r.TierMaxMonths, FeePercent: r.FeePercent}
}

// Approve accepts the request for payout
func (r *RedemptionRequest) Approve(reviewerID uuid.UUID) error {
	if !r.Status.CanReview() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot approve redemption in %s status", r.Status))
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer ID cannot be empty")
	}
	now := time.Now()
	r.Status = RedemptionStatusApproved
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.AddDomainEvent(NewRedemptionApprovedEvent(r))
	return nil
}

// Reject declines the request; the reserved tokens are released by the caller
func (r *RedemptionRequest) Reject(reviewerID uuid.UUID, reason string) error {
	if !r.Status.CanReview() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot reject redemption in %s status", r.Status))
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	now := time.Now()
	r.Status = RedemptionStatusRejected
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.RejectionReason = reason
	r.UpdatedAt = now
	r.AddDomainEvent(NewRedemptionRejectedEvent(r))
	return nil
}

// Cancel withdraws a pending request. Only the requesting investor may cancel.
func (r *RedemptionRequest) Cancel(investorID uuid.UUID) error {
	if investorID != r.InvestorID {
		return shared.ErrForbidden
	}
	if !r.Status.CanCancel() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot cancel redemption in %s status", r.Status))
	}
	now := time.Now()
	r.Status = RedemptionStatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
	r.AddDomainEvent(NewRedemptionCancelledEvent(r))
	return nil
}

// MarkPaid records that the net payout was sent to the investor
func (r *RedemptionRequest) MarkPaid(reference string) error {
	if !r.Status.CanPay() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot pay redemption in %s status", r.Status))
	}
	if reference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Payment reference is required")
	}
	now := time.Now()
	r.Status = RedemptionStatusPaid
	r.PaidAt = &now
	r.PaymentReference = reference
	r.UpdatedAt = now
	r.AddDomainEvent(NewRedemptionPaidEvent(r))
	return nil
}
