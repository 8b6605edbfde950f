package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/referral"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReferralRepository implements referral.Repository using GORM
type GormReferralRepository struct {
	db *gorm.DB
}

// NewGormReferralRepository creates a new GormReferralRepository
func NewGormReferralRepository(db *gorm.DB) *GormReferralRepository {
	return &GormReferralRepository{db: db}
}

func (r *GormReferralRepository) findOne(ctx context.Context, cond string, arg interface{}) (*referral.Referral, error) {
	var m models.ReferralModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindByID finds a referral by its ID
func (r *GormReferralRepository) FindByID(ctx context.Context, id uuid.UUID) (*referral.Referral, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByCode finds a referral by its code
func (r *GormReferralRepository) FindByCode(ctx context.Context, code string) (*referral.Referral, error) {
	return r.findOne(ctx, "code = ?", code)
}

// FindByInvitee finds the referral the invitee signed up with
func (r *GormReferralRepository) FindByInvitee(ctx context.Context, inviteeID uuid.UUID) (*referral.Referral, error) {
	return r.findOne(ctx, "invitee_id = ?", inviteeID)
}

// FindByReferrer lists a referrer's invitations, newest first
func (r *GormReferralRepository) FindByReferrer(ctx context.Context, referrerID uuid.UUID) ([]referral.Referral, error) {
	var rows []models.ReferralModel
	if err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("invited_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]referral.Referral, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// ExistsByReferrerAndEmail checks for a previous invite of email by the referrer
func (r *GormReferralRepository) ExistsByReferrerAndEmail(ctx context.Context, referrerID uuid.UUID, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.ReferralModel{}).
		Where("referrer_id = ? AND invitee_email = ?", referrerID, email).
		Count(&n).Error
	return n > 0, err
}

// Save creates or fully updates a referral
func (r *GormReferralRepository) Save(ctx context.Context, ref *referral.Referral) error {
	return translateError(r.db.WithContext(ctx).Save(models.ReferralModelFromDomain(ref)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormReferralRepository) SaveWithLock(ctx context.Context, ref *referral.Referral) error {
	m := models.ReferralModelFromDomain(ref)
	m.Version = ref.Version + 1
	if err := updateWithVersion(ctx, r.db, m, ref.ID, ref.Version); err != nil {
		return err
	}
	ref.IncrementVersion()
	return nil
}

// Ensure GormReferralRepository implements referral.Repository
var _ referral.Repository = (*GormReferralRepository)(nil)
