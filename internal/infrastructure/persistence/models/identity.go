package models

import (
	"time"

	"github.com/tokenestate/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email             string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string              `gorm:"type:varchar(255);not null"`
	DisplayName       string              `gorm:"type:varchar(200)"`
	Role              identity.Role       `gorm:"type:varchar(20);not null;default:'INVESTOR'"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ReferralCode      string              `gorm:"type:varchar(20)"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Role:              m.Role,
		Status:            m.Status,
		ReferralCode:      m.ReferralCode,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.Status = u.Status
	m.ReferralCode = u.ReferralCode
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
