package glpi

import (
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

// SessionHeaders are the ephemeral bearer headers of one GLPI session. They
// live for at most a few outbound calls and are never persisted across
// requests; killSession or the server-side timeout invalidates them.
type SessionHeaders struct {
	AppToken     string
	SessionToken string
}

func (h SessionHeaders) apply(req *resty.Request) *resty.Request {
	return req.
		SetHeader("App-Token", h.AppToken).
		SetHeader("Session-Token", h.SessionToken)
}

type initSessionResponse struct {
	SessionToken string `json:"session_token"`
}

// fullSessionResponse tolerates both placements of glpiID: recent GLPI
// versions nest it under "session", older ones return it at the top level.
type fullSessionResponse struct {
	GlpiID  int `json:"glpiID"`
	Session struct {
		GlpiID int `json:"glpiID"`
	} `json:"session"`
}

func (r fullSessionResponse) userID() int {
	if r.GlpiID != 0 {
		return r.GlpiID
	}
	return r.Session.GlpiID
}

// apiMessage is the error shape GLPI uses on 4xx responses.
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m apiMessage) reason() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

// glpiInput wraps a value in the {"input": ...} envelope GLPI requires on
// POST and PUT.
type glpiInput[T any] struct {
	Input T `json:"input"`
}

// ticketInput is the Ticket creation payload.
type ticketInput struct {
	Name             string `json:"name"`
	Content          string `json:"content"`
	ITILCategoriesID int    `json:"itilcategories_id"`
	Type             int    `json:"type"`
	Urgency          int    `json:"urgency"`
	Impact           int    `json:"impact"`
	Priority         int    `json:"priority"`
	Status           int    `json:"status"`
	EntitiesID       int    `json:"entities_id"`
	UsersIDRecipient int    `json:"users_id_recipient,omitempty"`
	// Underscore-prefixed actor field, understood across GLPI versions.
	UsersIDRequester int `json:"_users_id_requester,omitempty"`
}

type createTicketResponse struct {
	ID int `json:"id"`
}

// extractRows pulls the result list from a search response, which recent GLPI
// versions key as "data" and older ones as "rows". Anything else yields no
// rows rather than an error.
func extractRows(body []byte) []json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	for _, key := range []string{"data", "rows"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var rows []json.RawMessage
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows
		}
	}
	return nil
}
