package dto

// UserLookupResponse is the body for glpi-user-by-email.
type UserLookupResponse struct {
	Sucesso    bool             `json:"sucesso"`
	Success    bool             `json:"success"`
	QueryEmail string           `json:"query_email"`
	Resultado  UserLookupResult `json:"resultado"`
	TraceID    string           `json:"trace_id"`
}

// UserLookupResult is the normalized search outcome; Found is false when no
// numeric id could be extracted.
type UserLookupResult struct {
	Found  bool   `json:"found"`
	UserID *int   `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Login  string `json:"login,omitempty"`
	Email  string `json:"email"`
}
