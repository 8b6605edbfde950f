package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an account uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(models.UserModelFromDomain(u)).Error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Ensure GormUserRepository implements identity.UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
