package referral

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists referrals
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Referral, error)
	FindByCode(ctx context.Context, code string) (*Referral, error)
	// FindByInvitee returns the signed-up referral for the invitee, shared.ErrNotFound when none
	FindByInvitee(ctx context.Context, inviteeID uuid.UUID) (*Referral, error)
	FindByReferrer(ctx context.Context, referrerID uuid.UUID) ([]Referral, error)
	ExistsByReferrerAndEmail(ctx context.Context, referrerID uuid.UUID, email string) (bool, error)
	Save(ctx context.Context, r *Referral) error
	SaveWithLock(ctx context.Context, r *Referral) error
}
