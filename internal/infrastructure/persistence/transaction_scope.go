package persistence

import (
	"context"

	"github.com/tokenestate/backend/internal/application/txn"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/referral"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.TransactionScope using GORM transactions.
// Repositories handed to fn share one *gorm.DB transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. A returned error rolls
// the transaction back; otherwise it commits.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos txn.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Properties() property.Repository {
	return NewGormPropertyRepository(r.tx)
}

func (r *gormTransactionalRepositories) Investments() investment.Repository {
	return NewGormInvestmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) Redemptions() liquidity.RedemptionRepository {
	return NewGormRedemptionRepository(r.tx)
}

func (r *gormTransactionalRepositories) Markets() prediction.Repository {
	return NewGormMarketRepository(r.tx)
}

func (r *gormTransactionalRepositories) Referrals() referral.Repository {
	return NewGormReferralRepository(r.tx)
}

func (r *gormTransactionalRepositories) Accreditations() accreditation.Repository {
	return NewGormAccreditationRepository(r.tx)
}

// Ensure GormTransactionScope implements txn.TransactionScope
var _ txn.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements txn.TransactionalRepositories
var _ txn.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
