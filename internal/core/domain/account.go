package domain

import (
	"errors"
	"time"
)

const (
	RoleUser   = "user"
	RoleWorker = "worker"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("an account with this email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Account models a verified user of the marketplace. Accounts are only
// created once a pending signup passes OTP verification.
type Account struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	ResetOTP       string    `json:"-"`
	ResetOTPExpiry time.Time `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsValidRole reports whether role is one of the two account roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleWorker
}
