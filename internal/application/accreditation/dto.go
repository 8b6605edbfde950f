package accreditation

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
)

// DocumentInput references an uploaded evidence file
type DocumentInput struct {
	Name       string `json:"name" binding:"required,max=200"`
	StorageKey string `json:"storage_key" binding:"required,max=500"`
}

// SubmitInput opens a new accreditation submission
type SubmitInput struct {
	InvestorID uuid.UUID
	Type       string
	Documents  []DocumentInput
}

// UploadURLInput requests a presigned upload URL for evidence
type UploadURLInput struct {
	InvestorID  uuid.UUID
	FileName    string
	ContentType string
}

// UploadURLResponse is a presigned upload target
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ListInput filters accreditation listings
type ListInput struct {
	Page       int
	PageSize   int
	InvestorID *uuid.UUID
	Status     string
}

// AccreditationResponse is the wire form of an accreditation
type AccreditationResponse struct {
	ID              uuid.UUID                `json:"id"`
	InvestorID      uuid.UUID                `json:"investor_id"`
	Type            string                   `json:"type"`
	Status          string                   `json:"status"`
	Documents       []accreditation.Document `json:"documents"`
	ReviewerID      *uuid.UUID               `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time               `json:"reviewed_at,omitempty"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	ExpiresAt       *time.Time               `json:"expires_at,omitempty"`
	Active          bool                     `json:"active"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ToResponse converts a domain accreditation
func ToResponse(a *accreditation.Accreditation, now time.Time) AccreditationResponse {
	return AccreditationResponse{
		ID:              a.ID,
		InvestorID:      a.InvestorID,
		Type:            string(a.Type),
		Status:          string(a.Status),
		Documents:       a.Documents,
		ReviewerID:      a.ReviewerID,
		ReviewedAt:      a.ReviewedAt,
		RejectionReason: a.RejectionReason,
		ExpiresAt:       a.ExpiresAt,
		Active:          a.IsActive(now),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
