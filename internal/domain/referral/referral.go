package referral

import (
	"crypto/rand"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// Status is the progress of an invite
type Status string

const (
	StatusInvited  Status = "INVITED"
	StatusSignedUp Status = "SIGNED_UP"
	StatusRewarded Status = "REWARDED"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusInvited || s == StatusSignedUp || s == StatusRewarded
}

// CodeLength is the length of generated referral codes
const CodeLength = 8

// codeAlphabet omits characters that are easy to confuse when typed
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Referral tracks one invite from an existing investor
type Referral struct {
	shared.BaseAggregateRoot
	ReferrerID   uuid.UUID
	InviteeEmail string
	InviteeID    *uuid.UUID
	Code         string
	Status       Status
	Reward       valueobject.Money
	InvitedAt    time.Time
	SignedUpAt   *time.Time
	RewardedAt   *time.Time
}

// NewReferral creates an invite with the given code
func NewReferral(referrerID uuid.UUID, email, code string) (*Referral, error) {
	if referrerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Referrer is required")
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(code) != CodeLength {
		return nil, shared.NewDomainError("INVALID_CODE", "Referral code has the wrong length")
	}
	r := &Referral{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferrerID:        referrerID,
		InviteeEmail:      email,
		Code:              code,
		Status:            StatusInvited,
		Reward:            valueobject.Zero(valueobject.DefaultCurrency),
	}
	r.InvitedAt = r.CreatedAt
	r.AddDomainEvent(newEvent(EventTypeReferralInvited, r))
	return r, nil
}

// NormalizeEmail validates and lower-cases an address
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", shared.NewDomainError("INVALID_EMAIL", fmt.Sprintf("Invalid e-mail address %q", email))
	}
	return strings.ToLower(addr.Address), nil
}

// GenerateCode returns a random referral code
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate referral code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// MarkSignedUp links the invitee's new account
func (r *Referral) MarkSignedUp(inviteeID uuid.UUID, at time.Time) error {
	if r.Status != StatusInvited {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Referral is already %s", r.Status))
	}
	if inviteeID == r.ReferrerID {
		return shared.NewDomainError("SELF_REFERRAL", "Investors cannot refer themselves")
	}
	r.Status = StatusSignedUp
	r.InviteeID = &inviteeID
	r.SignedUpAt = &at
	r.UpdatedAt = at
	r.AddDomainEvent(newEvent(EventTypeReferralSignedUp, r))
	return nil
}

// MarkRewarded grants the reward after the invitee's first settled investment
func (r *Referral) MarkRewarded(reward valueobject.Money, at time.Time) error {
	if r.Status != StatusSignedUp {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot reward referral in %s status", r.Status))
	}
	if reward.IsNegative() {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Reward cannot be negative")
	}
	r.Status = StatusRewarded
	r.Reward = reward
	r.RewardedAt = &at
	r.UpdatedAt = at
	r.AddDomainEvent(newEvent(EventTypeReferralRewarded, r))
	return nil
}
