package accreditation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Filter narrows accreditation listings
type Filter struct {
	shared.Filter
	InvestorID *uuid.UUID
	Status     *Status
}

// Repository persists accreditations
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Accreditation, error)
	FindAll(ctx context.Context, filter Filter) ([]Accreditation, int64, error)
	// FindLatestByInvestor returns the newest submission, shared.ErrNotFound when none
	FindLatestByInvestor(ctx context.Context, investorID uuid.UUID) (*Accreditation, error)
	// FindExpiring returns approvals whose expires_at is at or before now
	FindExpiring(ctx context.Context, now time.Time, limit int) ([]Accreditation, error)
	Save(ctx context.Context, a *Accreditation) error
	SaveWithLock(ctx context.Context, a *Accreditation) error
}
