package liquidity

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// RedemptionFilter narrows redemption listings
type RedemptionFilter struct {
	shared.Filter
	InvestorID   *uuid.UUID
	InvestmentID *uuid.UUID
	Status       *RedemptionStatus
}

// RedemptionRepository persists redemption requests
type RedemptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RedemptionRequest, error)
	FindAll(ctx context.Context, filter RedemptionFilter) ([]RedemptionRequest, int64, error)
	Save(ctx context.Context, r *RedemptionRequest) error
	// SaveWithLock saves with an optimistic version check and returns
	// shared.ErrConcurrencyConflict when the row changed since it was loaded.
	SaveWithLock(ctx context.Context, r *RedemptionRequest) error
	GenerateRedemptionNumber(ctx context.Context) (string, error)
}

// FeeTierRepository persists the fee schedule
type FeeTierRepository interface {
	// FindAll returns the stored tiers, empty when none are stored
	FindAll(ctx context.Context) ([]FeeTier, error)
	// ReplaceAll atomically replaces every stored tier
	ReplaceAll(ctx context.Context, tiers []FeeTier) error
}
