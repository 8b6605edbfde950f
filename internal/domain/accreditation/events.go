package accreditation

import (
	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// AggregateTypeAccreditation is the aggregate type carried by accreditation events
const AggregateTypeAccreditation = "Accreditation"

const (
	EventTypeAccreditationSubmitted = "AccreditationSubmitted"
	EventTypeAccreditationApproved  = "AccreditationApproved"
	EventTypeAccreditationRejected  = "AccreditationRejected"
	EventTypeAccreditationExpired   = "AccreditationExpired"
)

// StatusChangedEvent carries every accreditation transition
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	InvestorID uuid.UUID `json:"investor_id"`
	Status     Status    `json:"status"`
}

func newEvent(eventType string, a *Accreditation) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeAccreditation, a.ID),
		InvestorID:      a.InvestorID,
		Status:          a.Status,
	}
}
