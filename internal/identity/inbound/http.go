package inbound

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/identity/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	OtpSend(ctx context.Context, in usecase.OtpSendInput) (*usecase.OtpSendOutput, error)
	OtpResend(ctx context.Context, in usecase.OtpSendInput) (*usecase.OtpSendOutput, error)
	OtpVerify(ctx context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error)

	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/identity/login", end.Login)

	// Password recovery via one-time code
	r.POST("/api/v1/identity/password/otp", end.OtpSend)
	r.POST("/api/v1/identity/password/otp/resend", end.OtpResend)
	r.POST("/api/v1/identity/password/otp/verify", end.OtpVerify)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)
	r.POST("/api/v1/identity/password/change", end.PasswordChange) // need authenticated
}
