package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// SignupInput carries a validated signup request. The password is still
// plaintext here; the service hashes it before caching.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// SignupResult reports whether the OTP email was handed off to SMTP.
// EmailSent=false is not an error: the code stays valid for a resend.
type SignupResult struct {
	EmailSent bool
}

// SessionResult is returned whenever a session is minted (verify-otp, login).
type SessionResult struct {
	Token string
	User  *domain.Account
}

// AuthService implements the OTP-gated signup, login and password flows.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	ResendSignupOTP(ctx context.Context, email string) (*SignupResult, error)
	VerifyOTP(ctx context.Context, email, otp string) (*SessionResult, error)
	Login(ctx context.Context, email, password string) (*SessionResult, error)
	ForgotPassword(ctx context.Context, email string) (*SignupResult, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
}
