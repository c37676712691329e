package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servicehub/marketplace-api/internal/api/metrics"
	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// otpTTL is the validity window of a one-time code.
const otpTTL = 10 * time.Minute

// AuthService implements the OTP-gated signup, login and password flows.
type AuthService struct {
	accounts  ports.AccountRepository
	pending   ports.PendingSignupStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	pending ports.PendingSignupStore,
	mailer ports.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		pending:   pending,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup caches the request behind a fresh OTP and emails the code. No
// account exists until VerifyOTP succeeds.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SignupResult, error) {
	if input.FullName == "" || input.Password == "" || !domain.IsValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	email := normalizeEmail(input.Email)

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	// An in-flight verification must not be silently discarded. An entry
	// whose OTP already lapsed no longer counts as pending.
	if existing, err := s.pending.Get(ctx, email); err == nil {
		if !existing.Expired(time.Now().UTC()) {
			return nil, domain.ErrSignupPending
		}
	} else if !errors.Is(err, domain.ErrNoPendingSignup) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	entry := &domain.PendingSignup{
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         input.Role,
		OTP:          generateOTP(),
		OTPExpiry:    time.Now().UTC().Add(otpTTL),
	}
	if err := s.pending.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SignupsStartedTotal.Inc()
	return &ports.SignupResult{EmailSent: s.dispatchOTP(ctx, email, entry.OTP, ports.PurposeVerification)}, nil
}

// ResendSignupOTP replaces the pending code and expiry, invalidating the
// previous code.
func (s *AuthService) ResendSignupOTP(ctx context.Context, email string) (*ports.SignupResult, error) {
	email = normalizeEmail(email)

	entry, err := s.pending.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	entry.OTP = generateOTP()
	entry.OTPExpiry = time.Now().UTC().Add(otpTTL)
	if err := s.pending.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("resend otp: %w", err)
	}

	return &ports.SignupResult{EmailSent: s.dispatchOTP(ctx, email, entry.OTP, ports.PurposeVerification)}, nil
}

// VerifyOTP promotes a pending signup into an account and mints a session.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*ports.SessionResult, error) {
	email = normalizeEmail(email)

	entry, err := s.pending.Get(ctx, email)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if entry.Expired(time.Now().UTC()) {
		_ = s.pending.Delete(ctx, email)
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrOTPExpired
	}

	if strings.TrimSpace(otp) != entry.OTP {
		metrics.OTPVerificationsTotal.WithLabelValues("mismatch").Inc()
		return nil, domain.ErrOTPMismatch
	}

	// Re-check for an account created while this signup was pending; the
	// pending entry is cleared either way so the email is not stuck.
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		_ = s.pending.Delete(ctx, email)
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		FullName:     entry.FullName,
		Email:        email,
		PasswordHash: entry.PasswordHash,
		Role:         entry.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			_ = s.pending.Delete(ctx, email)
		}
		return nil, err
	}

	_ = s.pending.Delete(ctx, email)
	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", created.Role).Msg("account created")
	return &ports.SessionResult{Token: token, User: created}, nil
}

// Login authenticates an existing account and mints a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &ports.SessionResult{Token: token, User: account}, nil
}

// ForgotPassword stores a reset OTP on the account and emails it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ports.SignupResult, error) {
	email = normalizeEmail(email)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	account.ResetOTP = generateOTP()
	account.ResetOTPExpiry = time.Now().UTC().Add(otpTTL)
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	return &ports.SignupResult{EmailSent: s.dispatchOTP(ctx, email, account.ResetOTP, ports.PurposeReset)}, nil
}

// ResetPassword verifies the reset OTP and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if account.ResetOTP == "" || account.ResetOTPExpiry.IsZero() {
		return domain.ErrNoResetRequested
	}

	if time.Now().UTC().After(account.ResetOTPExpiry) {
		account.ResetOTP = ""
		account.ResetOTPExpiry = time.Time{}
		if err := s.accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("reset password: %w", err)
		}
		return domain.ErrOTPExpired
	}

	if strings.TrimSpace(otp) != account.ResetOTP {
		return domain.ErrOTPMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hash)
	account.ResetOTP = ""
	account.ResetOTPExpiry = time.Time{}
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("email", account.Email).Msg("password reset")
	return nil
}

// ChangePassword rotates the password for a caller that knows the old one.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hash)
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// dispatchOTP emails the code best-effort. Failure is logged and reported
// to the caller as emailSent=false; the code stays valid for a resend.
func (s *AuthService) dispatchOTP(ctx context.Context, to, code string, purpose ports.OTPPurpose) bool {
	if err := s.mailer.SendOTP(ctx, to, code, purpose); err != nil {
		s.log.Warn().Err(err).Str("email", to).Str("purpose", string(purpose)).Msg("otp email send failed")
		metrics.OTPEmailsTotal.WithLabelValues("failed").Inc()
		return false
	}
	metrics.OTPEmailsTotal.WithLabelValues("sent").Inc()
	return true
}

func (s *AuthService) issueToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"name":  account.FullName,
		"email": account.Email,
		"role":  account.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a 4-digit numeric code in [1000, 9999].
func generateOTP() string {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%04d", 1000+time.Now().UnixNano()%9000)
	}
	n := binary.BigEndian.Uint16(b[:])
	return fmt.Sprintf("%04d", 1000+int(n)%9000)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
