package identity

import (
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered      = "UserRegistered"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
)

// UserRegisteredEvent is published when an account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID),
		Email:           u.Email,
		Role:            u.Role,
		ReferralCode:    u.ReferralCode,
	}
}

// UserPasswordChangedEvent is published when a password changes
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(u *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, u.ID),
	}
}
