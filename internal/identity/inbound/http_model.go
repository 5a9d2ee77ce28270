package inbound

type LoginRequest struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

type OtpSendRequest struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	Purpose    string `json:"purpose,omitempty"`
}

type OtpSendResponse struct {
	ExpiresInMinute int `json:"expires_in_minute"`
}

func (OtpSendResponse) Message() string {
	return "A verification code has been sent to your registered email."
}

type OtpVerifyRequest struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type OtpVerifyResponse struct {
	SubjectID string `json:"subject_id"`
	Role      string `json:"role"`
	Purpose   string `json:"purpose"`
}

type PasswordResetRequest struct {
	Role        string `json:"role"`
	Identifier  string `json:"identifier"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Your password has been reset. You can now log in with the new password."
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
