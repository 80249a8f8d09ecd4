package glpi

import "fmt"

// AuthError reports a failed session bootstrap against GLPI: transport
// failure, non-2xx status, or a response without a session token. It is never
// retried at this layer.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("autenticação GLPI falhou: %s: %v", e.Reason, e.Err)
	}
	return "autenticação GLPI falhou: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// GlpiError reports an unexpected status from a GLPI operation, carrying the
// raw body for operator diagnosis.
type GlpiError struct {
	StatusCode int
	Body       string
}

func (e *GlpiError) Error() string {
	return fmt.Sprintf("GLPI retornou status %d: %s", e.StatusCode, e.Body)
}
