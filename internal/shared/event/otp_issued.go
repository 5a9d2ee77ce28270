package event

// OtpIssuedDestination is the topic/subject carrying freshly issued OTP codes.
const OtpIssuedDestination string = "otp_issued"

// OtpIssuedConsumerNotification is the consumer group for the notification module.
const OtpIssuedConsumerNotification string = "otp_issued_notification"

// OtpIssuedMessage is published after an OTP challenge is stored. It carries
// the plaintext code because delivery happens out of band; the code is never
// persisted anywhere in this form.
type OtpIssuedMessage struct {
	SubjectID int64  `json:"subject_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Purpose   string `json:"purpose"`
	TTLMinute int    `json:"ttl_minute"`
}
