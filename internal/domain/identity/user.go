package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/tokenestate/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked" // too many failed logins
	UserStatusDeactivated UserStatus = "deactivated"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleInvestor Role = "INVESTOR"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool { return r == RoleInvestor || r == RoleAdmin }

// Password cost for bcrypt
const bcryptCost = 12

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRegex  = regexp.MustCompile(`[a-zA-Z]`)
	numberRegex  = regexp.MustCompile(`[0-9]`)
	dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer-1"), bcrypt.MinCost)
)

// User is an investor or platform administrator account
type User struct {
	shared.BaseAggregateRoot
	Email             string
	PasswordHash      string
	DisplayName       string
	Role              Role
	Status            UserStatus
	ReferralCode      string // code the user signed up with, if any
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser registers an active investor
func NewUser(email, password, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if len(displayName) > 200 {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		DisplayName:       strings.TrimSpace(displayName),
		Role:              RoleInvestor,
		Status:            UserStatusActive,
		PasswordChangedAt: &now,
	}
	u.AddDomainEvent(NewUserRegisteredEvent(u))
	return u, nil
}

// PromoteToAdmin grants the ADMIN role
func (u *User) PromoteToAdmin() {
	u.Role = RoleAdmin
	u.Touch()
}

// IsAdmin reports whether the user has the ADMIN role
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ChangePassword changes the user's password
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	now := time.Now()
	u.PasswordHash = hash
	u.PasswordChangedAt = &now
	u.UpdatedAt = now
	u.AddDomainEvent(NewUserPasswordChangedEvent(u))
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CompareDummyPassword spends comparable time to a real check so unknown
// e-mails cannot be told apart from wrong passwords by latency.
func CompareDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	u.Status = UserStatusDeactivated
	u.Touch()
	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
		u.LockedUntil = nil
	}
	u.UpdatedAt = now
}

// RecordLoginFailure counts a failed attempt and reports whether the
// account was locked by it.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.Touch()
	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts && u.Status == UserStatusActive {
		until := time.Now().Add(lockDuration)
		u.Status = UserStatusLocked
		u.LockedUntil = &until
		return true
	}
	return false
}

// IsLocked returns true while a lock is in effect
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	return u.LockedUntil == nil || time.Now().Before(*u.LockedUntil)
}

// CanLogin returns true if the user can log in
func (u *User) CanLogin() bool {
	return u.Status != UserStatusDeactivated && !u.IsLocked()
}

// Name returns the display name, falling back to the e-mail
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	if !letterRegex.MatchString(password) || !numberRegex.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
