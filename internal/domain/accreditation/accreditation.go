package accreditation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Type is the basis on which an investor claims accredited status
type Type string

const (
	TypeIncome       Type = "INCOME"
	TypeNetWorth     Type = "NET_WORTH"
	TypeProfessional Type = "PROFESSIONAL"
)

// IsValid checks if the type is known
func (t Type) IsValid() bool {
	return t == TypeIncome || t == TypeNetWorth || t == TypeProfessional
}

// Status is the review state of an accreditation
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusExpired     Status = "EXPIRED"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// CanDecide returns true if an approve or reject decision can be made
func (s Status) CanDecide() bool {
	return s == StatusSubmitted || s == StatusUnderReview
}

// MaxDocuments bounds the evidence files per submission
const MaxDocuments = 10

// Document is an uploaded evidence file
type Document struct {
	Name       string `json:"name"`
	StorageKey string `json:"storage_key"`
}

// Accreditation is an investor's KYC submission and its review outcome
type Accreditation struct {
	shared.BaseAggregateRoot
	InvestorID      uuid.UUID
	Type            Type
	Documents       []Document
	Status          Status
	ReviewerID      *uuid.UUID
	ReviewedAt      *time.Time
	RejectionReason string
	ExpiresAt       *time.Time
}

// Submit creates a new submission
func Submit(investorID uuid.UUID, typ Type, docs []Document) (*Accreditation, error) {
	if investorID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Investor is required")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCREDITATION_TYPE", fmt.Sprintf("Unknown accreditation type %q", typ))
	}
	if len(docs) == 0 {
		return nil, shared.NewDomainError("DOCUMENTS_REQUIRED", "At least one document is required")
	}
	if len(docs) > MaxDocuments {
		return nil, shared.NewDomainError("TOO_MANY_DOCUMENTS", fmt.Sprintf("At most %d documents can be submitted", MaxDocuments))
	}
	for _, d := range docs {
		if d.StorageKey == "" {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Every document needs a storage key")
		}
	}
	a := &Accreditation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvestorID:        investorID,
		Type:              typ,
		Documents:         docs,
		Status:            StatusSubmitted,
	}
	a.AddDomainEvent(newEvent(EventTypeAccreditationSubmitted, a))
	return a, nil
}

// StartReview moves a submission under review
func (a *Accreditation) StartReview(reviewerID uuid.UUID) error {
	if a.Status != StatusSubmitted {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot review accreditation in %s status", a.Status))
	}
	a.Status = StatusUnderReview
	a.ReviewerID = &reviewerID
	a.Touch()
	return nil
}

// Approve accepts the submission until now+validity
func (a *Accreditation) Approve(reviewerID uuid.UUID, now time.Time, validity time.Duration) error {
	if !a.Status.CanDecide() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot approve accreditation in %s status", a.Status))
	}
	if validity <= 0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Validity must be positive")
	}
	expires := now.Add(validity)
	a.Status = StatusApproved
	a.ReviewerID = &reviewerID
	a.ReviewedAt = &now
	a.ExpiresAt = &expires
	a.Touch()
	a.AddDomainEvent(newEvent(EventTypeAccreditationApproved, a))
	return nil
}

// Reject declines the submission
func (a *Accreditation) Reject(reviewerID uuid.UUID, reason string, now time.Time) error {
	if !a.Status.CanDecide() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot reject accreditation in %s status", a.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	a.Status = StatusRejected
	a.ReviewerID = &reviewerID
	a.ReviewedAt = &now
	a.RejectionReason = reason
	a.Touch()
	a.AddDomainEvent(newEvent(EventTypeAccreditationRejected, a))
	return nil
}

// Expire moves an approval past its expiry to EXPIRED. It reports whether
// anything changed so the expiry job can skip unchanged rows.
func (a *Accreditation) Expire(now time.Time) bool {
	if a.Status != StatusApproved || a.ExpiresAt == nil || now.Before(*a.ExpiresAt) {
		return false
	}
	a.Status = StatusExpired
	a.Touch()
	a.AddDomainEvent(newEvent(EventTypeAccreditationExpired, a))
	return true
}

// IsActive reports whether the investor is accredited at now
func (a *Accreditation) IsActive(now time.Time) bool {
	return a.Status == StatusApproved && a.ExpiresAt != nil && now.Before(*a.ExpiresAt)
}
