package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mcp-cau/glpi-gateway/internal/config"
	"github.com/mcp-cau/glpi-gateway/internal/observability"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// Per-operation read timeouts. Session bootstrap and searches are quick;
// the credential form of initSession is slower because GLPI walks its auth
// plugins, and the logout probe is deliberately tight.
const (
	initSessionTimeout     = 10 * time.Second
	credentialInitTimeout  = 15 * time.Second
	fullSessionTimeout     = 10 * time.Second
	killSessionTimeout     = 10 * time.Second
	logoutProbeTimeout     = 8 * time.Second
	searchTimeout          = 10 * time.Second
	createTicketTimeout    = 10 * time.Second
	defaultContentType     = "application/json"
	contentTypeWithCharset = "application/json; charset=utf-8"
)

// Client talks to a GLPI REST endpoint. It holds no session state: every
// logical operation opens its own session and tears it down, so a stale
// token can never leak between HTTP requests.
type Client struct {
	cfg     config.GLPIConfig
	logger  *zap.Logger
	metrics *observability.Metrics
	http    *resty.Client
}

// NewClient builds a Client from the immutable GLPI settings.
func NewClient(cfg config.GLPIConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout()}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTransport(&http.Transport{DialContext: dialer.DialContext}).
		SetTimeout(cfg.ReadTimeout()).
		SetHeader("Content-Type", defaultContentType)

	return &Client{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		http:    httpClient,
	}
}

// OpenServiceSession opens a GLPI session with the privileged service-account
// user token and returns its bearer headers. Transport failures and missing
// session tokens surface as *AuthError; retries belong to the caller.
func (c *Client) OpenServiceSession(ctx context.Context) (SessionHeaders, error) {
	if !c.cfg.Configured() {
		return SessionHeaders{}, util.NewConfigMissing(
			"Configurações do GLPI não encontradas. Verifique o arquivo .env")
	}

	opCtx, cancel := context.WithTimeout(ctx, initSessionTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(opCtx).
		SetHeader("App-Token", c.cfg.AppToken).
		SetHeader("Authorization", "user_token "+c.cfg.UserToken).
		Post("/initSession")
	if err != nil {
		c.metrics.RecordUpstream("initSession", false)
		return SessionHeaders{}, &AuthError{Reason: "transporte", Err: err}
	}
	if !resp.IsSuccess() {
		c.metrics.RecordUpstream("initSession", false)
		c.logger.Error("initSession rejeitado",
			zap.Int("status", resp.StatusCode()),
			zap.String("user_token", observability.MaskSecret(c.cfg.UserToken)))
		return SessionHeaders{}, &AuthError{Reason: fmt.Sprintf("status %d", resp.StatusCode())}
	}

	var body initSessionResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.SessionToken == "" {
		c.metrics.RecordUpstream("initSession", false)
		return SessionHeaders{}, &AuthError{Reason: "session_token ausente na resposta do GLPI"}
	}

	c.metrics.RecordUpstream("initSession", true)
	c.logger.Debug("sessão GLPI aberta",
		zap.String("session_token", observability.MaskSecret(body.SessionToken)))
	return SessionHeaders{AppToken: c.cfg.AppToken, SessionToken: body.SessionToken}, nil
}

// CloseSession terminates a session, best-effort. The server-side session
// timeout makes an unterminated session self-healing, so failures are logged
// and swallowed.
func (c *Client) CloseSession(ctx context.Context, headers SessionHeaders) {
	opCtx, cancel := context.WithTimeout(ctx, killSessionTimeout)
	defer cancel()

	resp, err := headers.apply(c.http.R().SetContext(opCtx)).Post("/killSession")
	if err != nil {
		c.logger.Warn("killSession falhou", zap.Error(err))
		return
	}
	if !resp.IsSuccess() {
		c.logger.Warn("killSession rejeitado", zap.Int("status", resp.StatusCode()))
	}
}

// CheckConnection opens and closes a service session, proving both the
// credentials and the endpoint. Used by the health probe.
func (c *Client) CheckConnection(ctx context.Context) error {
	headers, err := c.OpenServiceSession(ctx)
	if err != nil {
		return err
	}
	c.CloseSession(ctx, headers)
	return nil
}

// getFullSession returns the numeric GLPI user id bound to a session token.
func (c *Client) getFullSession(ctx context.Context, headers SessionHeaders) (int, error) {
	opCtx, cancel := context.WithTimeout(ctx, fullSessionTimeout)
	defer cancel()

	resp, err := headers.apply(c.http.R().SetContext(opCtx)).Get("/getFullSession")
	if err != nil {
		return 0, err
	}
	if !resp.IsSuccess() {
		return 0, &GlpiError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	var body fullSessionResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, err
	}
	return body.userID(), nil
}
