package dto

// AuthResponse is the 200 body for authenticate-user. The password never
// appears here or anywhere else in a response.
type AuthResponse struct {
	Sucesso bool     `json:"sucesso"`
	Success bool     `json:"success"`
	TraceID string   `json:"trace_id"`
	Usuario AuthUser `json:"usuario"`
	Auth    AuthInfo `json:"auth"`
}

// AuthUser carries the identity metadata recovered during verification.
type AuthUser struct {
	Login  string `json:"login"`
	UserID *int   `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// AuthInfo reports the credential check outcome. LogoutVerified is advisory:
// it may be false even after a correct logout when the probe itself failed.
type AuthInfo struct {
	Status         string `json:"status"`
	LogoutVerified bool   `json:"logout_verified"`
}
