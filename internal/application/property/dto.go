package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/property"
)

// CreatePropertyInput creates a draft listing
type CreatePropertyInput struct {
	Name        string
	Description string
	Location    string
	Type        string
	TotalTokens int64
	TokenPrice  decimal.Decimal
	AnnualYield decimal.Decimal
	ImageURL    string
}

// UpdatePropertyInput edits a listing. Version, when set, must match the
// stored version.
type UpdatePropertyInput struct {
	Name        string
	Description string
	Location    string
	Type        string
	TokenPrice  decimal.Decimal
	AnnualYield decimal.Decimal
	ImageURL    string
	Version     *int
}

// ListPropertiesInput filters property listings
type ListPropertiesInput struct {
	Page          int
	PageSize      int
	Search        string
	Status        string
	Type          string
	SortBy        string
	SortOrder     string
	IncludeDrafts bool
}

// DocumentUploadInput requests an upload URL for a property document
type DocumentUploadInput struct {
	FileName    string
	ContentType string
}

// AttachDocumentInput records an uploaded property document
type AttachDocumentInput struct {
	Kind        string
	Name        string
	StorageKey  string
	ContentType string
	Size        int64
}

// ComparisonResponse is the side-by-side view returned by Compare
type ComparisonResponse = property.Comparison

// PresignedURL is a time-limited object storage URL
type PresignedURL struct {
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DocumentResponse is the wire form of a property document
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// PropertyResponse is the wire form of a property
type PropertyResponse struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Location        string             `json:"location"`
	Type            string             `json:"type"`
	TotalTokens     int64              `json:"total_tokens"`
	AvailableTokens int64              `json:"available_tokens"`
	TokenPrice      decimal.Decimal    `json:"token_price"`
	Currency        string             `json:"currency"`
	AnnualYield     decimal.Decimal    `json:"annual_yield"`
	FundedPercent   decimal.Decimal    `json:"funded_percent"`
	ImageURL        string             `json:"image_url,omitempty"`
	Status          string             `json:"status"`
	PublishedAt     *time.Time         `json:"published_at,omitempty"`
	ClosedAt        *time.Time         `json:"closed_at,omitempty"`
	Documents       []DocumentResponse `json:"documents,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Version         int                `json:"version"`
}

// ToPropertyResponse converts a domain property
func ToPropertyResponse(p *property.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Location:        p.Location,
		Type:            string(p.Type),
		TotalTokens:     p.TotalTokens,
		AvailableTokens: p.AvailableTokens,
		TokenPrice:      p.TokenPrice.Amount(),
		Currency:        string(p.TokenPrice.Currency()),
		AnnualYield:     p.AnnualYield,
		FundedPercent:   p.FundedPercent(),
		ImageURL:        p.ImageURL,
		Status:          string(p.Status),
		PublishedAt:     p.PublishedAt,
		ClosedAt:        p.ClosedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.GetVersion(),
	}
	for _, d := range p.Documents {
		resp.Documents = append(resp.Documents, toDocumentResponse(d))
	}
	return resp
}

func toDocumentResponse(d property.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		ContentType: d.ContentType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt,
	}
}
