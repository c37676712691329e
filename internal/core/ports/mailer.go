package ports

import "context"

// OTPPurpose selects the email template and wording for an OTP message.
type OTPPurpose string

const (
	PurposeVerification OTPPurpose = "Verification"
	PurposeReset        OTPPurpose = "Reset"
)

// Mailer dispatches one-time codes to an email address. Implementations
// must be time-bounded; a returned error never invalidates the code.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, purpose OTPPurpose) error
}
