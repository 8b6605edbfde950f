package property

import (
	"time"

	"github.com/google/uuid"
)

// MaxDocuments bounds the documents attached to a single property
const MaxDocuments = 50

// DocumentKind classifies property documents
type DocumentKind string

const (
	DocumentKindDeed       DocumentKind = "DEED"
	DocumentKindAppraisal  DocumentKind = "APPRAISAL"
	DocumentKindProspectus DocumentKind = "PROSPECTUS"
	DocumentKindFinancials DocumentKind = "FINANCIALS"
	DocumentKindOther      DocumentKind = "OTHER"
)

// Document is a file stored in object storage and attached to a property
type Document struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	Kind        DocumentKind
	Name        string
	StorageKey  string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}
