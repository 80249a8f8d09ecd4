package glpi

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// AuthenticateUser verifies end-user credentials by opening a temporary GLPI
// session scoped to that user, enriching the result with the user's id and
// metadata, and tearing the session down immediately. Holding a verified
// end-user session server-side would be a liability; the authenticator's only
// job is identity verification.
//
// The password is never logged and never appears in any returned reason.
func (c *Client) AuthenticateUser(ctx context.Context, login, password, totpCode string) (domain.AuthResult, error) {
	if login == "" || password == "" {
		return domain.AuthResult{}, util.NewUnprocessable("Login e password são obrigatórios")
	}
	if c.cfg.BaseURL == "" {
		return domain.AuthResult{}, util.NewConfigMissing(
			"Configurações do GLPI não encontradas. Verifique o arquivo .env")
	}

	headers, result, err := c.credentialInit(ctx, login, password, totpCode)
	if err != nil || result.Status != domain.AuthStatusOK {
		return result, err
	}

	// Enrichment is advisory: any failure here is swallowed and the flow
	// proceeds to teardown.
	if uid, err := c.getFullSession(ctx, headers); err == nil && uid > 0 {
		result.UserID = &uid
	}
	if rec, err := c.FindUser(ctx, login, "", &headers); err == nil && rec.Found() {
		result.Name = rec.Name
		result.Email = rec.Email
		if result.UserID == nil {
			result.UserID = rec.ID
		}
	}

	result.LogoutVerified = c.teardownVerified(ctx, headers)
	return result, nil
}

// credentialInit performs the login/password form of initSession. A 401
// terminates with a structured status instead of an error; any other failure
// is fatal.
func (c *Client) credentialInit(ctx context.Context, login, password, totpCode string) (SessionHeaders, domain.AuthResult, error) {
	opCtx, cancel := context.WithTimeout(ctx, credentialInitTimeout)
	defer cancel()

	body := map[string]any{"login": login, "password": password}
	if totpCode != "" {
		// Recent GLPI versions take the TOTP value in the "code" field.
		body["code"] = totpCode
	}

	resp, err := c.http.R().
		SetContext(opCtx).
		SetHeader("App-Token", c.cfg.AppToken).
		SetBody(body).
		Post("/initSession")
	if err != nil {
		c.metrics.RecordUpstream("initSessionCredentials", false)
		return SessionHeaders{}, domain.AuthResult{}, util.NewUpstreamError(
			"Erro ao autenticar usuário no GLPI: "+err.Error(), err)
	}

	if resp.StatusCode() == 401 {
		c.metrics.RecordUpstream("initSessionCredentials", false)
		var msg apiMessage
		_ = json.Unmarshal(resp.Body(), &msg)
		reason := msg.reason()
		lower := strings.ToLower(reason)
		if totpCode == "" && reason != "" && (strings.Contains(lower, "code") || strings.Contains(lower, "totp")) {
			return SessionHeaders{}, domain.AuthResult{
				Status: domain.AuthStatusTOTPRequired,
				Login:  login,
				Reason: reason,
			}, nil
		}
		if reason == "" {
			reason = string(resp.Body())
		}
		return SessionHeaders{}, domain.AuthResult{
			Status: domain.AuthStatusUnauthorized,
			Login:  login,
			Reason: reason,
		}, nil
	}

	if !resp.IsSuccess() {
		c.metrics.RecordUpstream("initSessionCredentials", false)
		glpiErr := &GlpiError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		return SessionHeaders{}, domain.AuthResult{}, util.NewUpstreamError(glpiErr.Error(), glpiErr)
	}

	var session initSessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil || session.SessionToken == "" {
		c.metrics.RecordUpstream("initSessionCredentials", false)
		authErr := &AuthError{Reason: "session token não retornado pelo GLPI"}
		return SessionHeaders{}, domain.AuthResult{}, util.NewUpstreamError(authErr.Error(), authErr)
	}

	c.metrics.RecordUpstream("initSessionCredentials", true)
	return SessionHeaders{AppToken: c.cfg.AppToken, SessionToken: session.SessionToken},
		domain.AuthResult{Status: domain.AuthStatusOK, Login: login}, nil
}

// teardownVerified kills the session and re-probes it with the same token.
// A 401 or any non-OK status on the probe is the evidence that logout took
// effect; anything else, including a transport error, reports false.
func (c *Client) teardownVerified(ctx context.Context, headers SessionHeaders) bool {
	killCtx, cancelKill := context.WithTimeout(ctx, killSessionTimeout)
	defer cancelKill()

	kill, err := headers.apply(c.http.R().SetContext(killCtx)).Post("/killSession")
	if err != nil || !kill.IsSuccess() {
		c.logger.Warn("killSession pós-autenticação falhou", zap.Error(err))
		return false
	}

	probeCtx, cancelProbe := context.WithTimeout(ctx, logoutProbeTimeout)
	defer cancelProbe()

	probe, err := headers.apply(c.http.R().SetContext(probeCtx)).Get("/getFullSession")
	if err != nil {
		return false
	}
	return probe.StatusCode() == 401 || !probe.IsSuccess()
}
