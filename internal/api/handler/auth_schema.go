package handler

import "github.com/servicehub/marketplace-api/internal/core/domain"

type signupRequest struct {
	FullName string `json:"fullName" validate:"required,fullname"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role"     validate:"required,oneof=user worker"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	OTP         string `json:"otp"         validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type changePasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type otpSentResponse struct {
	Success   bool `json:"success"`
	EmailSent bool `json:"emailSent"`
}

type sessionResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}
