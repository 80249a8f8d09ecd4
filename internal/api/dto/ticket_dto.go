package dto

// CreateTicketResponse is the 201 body for create-ticket-complete. The
// bilingual sucesso/success pair is part of the Copilot Studio contract.
type CreateTicketResponse struct {
	Sucesso   bool          `json:"sucesso"`
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	TicketID  int           `json:"ticket_id"`
	TraceID   string        `json:"trace_id"`
	Categoria string        `json:"categoria"`
	Details   TicketDetails `json:"details"`
}

// TicketDetails echoes the normalized intake back to the dialog.
type TicketDetails struct {
	Title          string            `json:"title"`
	Category       string            `json:"category"`
	Impact         string            `json:"impact"`
	Location       string            `json:"location"`
	RequesterEmail string            `json:"requester_email,omitempty"`
	Requester      *RequesterDetails `json:"requester"`
}

// RequesterDetails reports the outcome of the requester lookup.
type RequesterDetails struct {
	Found  bool   `json:"found"`
	UserID *int   `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Login  string `json:"login,omitempty"`
}
