package domain

// AuthStatus enumerates the terminal states of a credential check.
type AuthStatus string

const (
	AuthStatusOK           AuthStatus = "ok"
	AuthStatusUnauthorized AuthStatus = "unauthorized"
	AuthStatusTOTPRequired AuthStatus = "totp_required"
)

// AuthResult is the outcome of a credential verification round trip against
// GLPI. LogoutVerified is best-effort: it may be false even after a correct
// logout when the verification probe itself fails.
type AuthResult struct {
	Status         AuthStatus
	UserID         *int
	Login          string
	Name           string
	Email          string
	Reason         string
	LogoutVerified bool
}

// AuthIntake is the normalized authenticate-user request body.
type AuthIntake struct {
	Login    string
	Email    string
	Password string
	TOTPCode string
}
