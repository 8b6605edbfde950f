package referral

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// AggregateTypeReferral is the aggregate type carried by referral events
const AggregateTypeReferral = "Referral"

const (
	EventTypeReferralInvited  = "ReferralInvited"
	EventTypeReferralSignedUp = "ReferralSignedUp"
	EventTypeReferralRewarded = "ReferralRewarded"
)

// StatusChangedEvent carries every referral transition
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	ReferrerID   uuid.UUID       `json:"referrer_id"`
	InviteeEmail string          `json:"invitee_email"`
	Status       Status          `json:"status"`
	Reward       decimal.Decimal `json:"reward"`
}

func newEvent(eventType string, r *Referral) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeReferral, r.ID),
		ReferrerID:      r.ReferrerID,
		InviteeEmail:    r.InviteeEmail,
		Status:          r.Status,
		Reward:          r.Reward.Amount(),
	}
}
