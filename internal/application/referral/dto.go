package referral

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/referral"
)

// InviteInput sends a referral invitation
type InviteInput struct {
	ReferrerID uuid.UUID
	Email      string
}

// ReferralResponse is the wire form of a referral
type ReferralResponse struct {
	ID           uuid.UUID       `json:"id"`
	InviteeEmail string          `json:"invitee_email"`
	Code         string          `json:"code"`
	Status       string          `json:"status"`
	Reward       decimal.Decimal `json:"reward"`
	Currency     string          `json:"currency"`
	InvitedAt    time.Time       `json:"invited_at"`
	SignedUpAt   *time.Time      `json:"signed_up_at,omitempty"`
	RewardedAt   *time.Time      `json:"rewarded_at,omitempty"`
	EmailSent    bool            `json:"email_sent"`
}

// ReferralSummary totals a referrer's program activity
type ReferralSummary struct {
	Invited     int                `json:"invited"`
	SignedUp    int                `json:"signed_up"`
	Rewarded    int                `json:"rewarded"`
	TotalReward decimal.Decimal    `json:"total_reward"`
	Referrals   []ReferralResponse `json:"referrals"`
}

// ToReferralResponse converts a domain referral
func ToReferralResponse(r *referral.Referral) ReferralResponse {
	return ReferralResponse{
		ID:           r.ID,
		InviteeEmail: r.InviteeEmail,
		Code:         r.Code,
		Status:       string(r.Status),
		Reward:       r.Reward.Amount(),
		Currency:     string(r.Reward.Currency()),
		InvitedAt:    r.InvitedAt,
		SignedUpAt:   r.SignedUpAt,
		RewardedAt:   r.RewardedAt,
	}
}
