package inbound

import (
	"strconv"

	"github.com/upasthit/upasthit-api/internal/identity/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for login and password recovery.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Role:       req.Role,
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		Name:        resp.Name,
		Role:        resp.Role,
	}, nil
}

func (h *HTTPEndpoint) OtpSend(r *router.Request) (any, error) {
	var req OtpSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpSend(r.Context(), usecase.OtpSendInput{
		Role:       req.Role,
		Identifier: req.Identifier,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return OtpSendResponse{ExpiresInMinute: resp.ExpiresInMinute}, nil
}

func (h *HTTPEndpoint) OtpResend(r *router.Request) (any, error) {
	var req OtpSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpResend(r.Context(), usecase.OtpSendInput{
		Role:       req.Role,
		Identifier: req.Identifier,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return OtpSendResponse{ExpiresInMinute: resp.ExpiresInMinute}, nil
}

func (h *HTTPEndpoint) OtpVerify(r *router.Request) (any, error) {
	var req OtpVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpVerify(r.Context(), usecase.OtpVerifyInput{
		Role:       req.Role,
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return OtpVerifyResponse{
		SubjectID: strconv.FormatInt(resp.SubjectID, 10),
		Role:      resp.Role,
		Purpose:   resp.Purpose,
	}, nil
}

func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Role:        req.Role,
		Identifier:  req.Identifier,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		OldPassword: req.CurrentPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}
