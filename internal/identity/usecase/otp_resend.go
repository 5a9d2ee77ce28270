package usecase

import "context"

// OtpResend issues a replacement code. The previous code stops verifying the
// moment the new row lands, which is the only throttle resend carries.
func (s *Usecase) OtpResend(ctx context.Context, in OtpSendInput) (*OtpSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpResend")
	defer span.End()

	return s.issueChallenge(ctx, in)
}
