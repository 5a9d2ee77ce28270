package entity

// Role distinguishes the two account populations. Students and teachers live
// in separate tables with independent identifier spaces, so a subject is only
// unique by (ID, Role).
type Role int16

const (
	// RoleUnknown means the role is not known / not set.
	RoleUnknown Role = 0

	// RoleStudent identifies a student account (looked up by roll number).
	RoleStudent Role = 1

	// RoleTeacher identifies a teacher account (looked up by email).
	RoleTeacher Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	default:
		return "unknown"
	}
}

// ParseRole maps the wire value to a Role; unrecognized values stay Unknown.
func ParseRole(s string) Role {
	switch s {
	case "student":
		return RoleStudent
	case "teacher":
		return RoleTeacher
	default:
		return RoleUnknown
	}
}

// OtpPurpose states why a one-time code was issued. The purpose selects the
// email template and scopes what a successful verification may be used for.
type OtpPurpose int16

const (
	OtpPurposeUnknown           OtpPurpose = 0
	OtpPurposePasswordReset     OtpPurpose = 1
	OtpPurposeEmailVerification OtpPurpose = 2
)

func (p OtpPurpose) String() string {
	switch p {
	case OtpPurposePasswordReset:
		return "password_reset"
	case OtpPurposeEmailVerification:
		return "email_verification"
	default:
		return "unknown"
	}
}

// ParseOtpPurpose maps the wire value to an OtpPurpose.
func ParseOtpPurpose(s string) OtpPurpose {
	switch s {
	case "password_reset":
		return OtpPurposePasswordReset
	case "email_verification":
		return OtpPurposeEmailVerification
	default:
		return OtpPurposeUnknown
	}
}
