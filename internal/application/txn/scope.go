// Package txn defines the unit of work shared by application services that
// change more than one aggregate at a time.
package txn

import (
	"context"

	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/referral"
)

// TransactionalRepositories gives access to repositories bound to one
// database transaction.
type TransactionalRepositories interface {
	Properties() property.Repository
	Investments() investment.Repository
	Redemptions() liquidity.RedemptionRepository
	Markets() prediction.Repository
	Referrals() referral.Repository
	Accreditations() accreditation.Repository
}

// TransactionScope runs fn atomically. If fn returns an error every write
// made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}
