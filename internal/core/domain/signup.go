package domain

import (
	"errors"
	"time"
)

var ErrSignupPending = errors.New("a signup is already pending for this email")
var ErrNoPendingSignup = errors.New("no pending signup found for this email")
var ErrOTPExpired = errors.New("otp expired")
var ErrOTPMismatch = errors.New("invalid otp")
var ErrNoResetRequested = errors.New("no password reset requested for this user")

// PendingSignup holds a signup request until its OTP is verified. The
// password is already hashed at this point; the entry is deleted on
// verification, on expiry, or when superseded by a resend.
type PendingSignup struct {
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	OTP          string    `json:"otp"`
	OTPExpiry    time.Time `json:"otp_expiry"`
}

// Expired reports whether the OTP validity window has passed at now.
func (p *PendingSignup) Expired(now time.Time) bool {
	return now.After(p.OTPExpiry)
}
