package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/pkg/util"
)

// GLPI searchoption ids for the User itemtype.
const (
	loginFieldID = 1
	emailFieldID = 5
)

// Columns requested from the search endpoint: login, id, email, realname.
var forcedDisplayColumns = []int{1, 2, 5, 9}

// FindUser resolves a login or an email into a GLPI user record via the
// generic search endpoint. Exactly one of login/email must be set. When
// headers is nil a dedicated service session is opened and torn down here.
//
// The search runs two passes: an exact (equals) match first, then a contains
// fallback for partial/legacy matches; among fallback rows an exact
// case-insensitive match on the searched field is preferred over the first
// row. A miss is not an error: the returned record simply has no id.
func (c *Client) FindUser(ctx context.Context, login, email string, headers *SessionHeaders) (domain.UserRecord, error) {
	if (login == "") == (email == "") {
		return domain.UserRecord{}, util.NewValidationError(
			"Informe exatamente um entre 'login' e 'email' para busca no GLPI", nil)
	}

	if headers == nil {
		session, err := c.OpenServiceSession(ctx)
		if err != nil {
			return domain.UserRecord{}, err
		}
		defer c.CloseSession(ctx, session)
		headers = &session
	}

	field := loginFieldID
	value := strings.TrimSpace(login)
	if email != "" {
		field = emailFieldID
		value = strings.TrimSpace(email)
	}

	rows, err := c.searchUsers(ctx, *headers, field, value, "equals")
	if err != nil {
		return domain.UserRecord{}, err
	}
	if len(rows) == 0 {
		rows, err = c.searchUsers(ctx, *headers, field, value, "contains")
		if err != nil {
			return domain.UserRecord{}, err
		}
	}

	return selectUserRow(rows, field, value), nil
}

func (c *Client) searchUsers(ctx context.Context, headers SessionHeaders, field int, value, searchType string) ([]json.RawMessage, error) {
	opCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	req := headers.apply(c.http.R().SetContext(opCtx))
	for i, col := range forcedDisplayColumns {
		req.SetQueryParam(fmt.Sprintf("forcedisplay[%d]", i), strconv.Itoa(col))
	}
	req.SetQueryParam("criteria[0][field]", strconv.Itoa(field))
	req.SetQueryParam("criteria[0][searchtype]", searchType)
	req.SetQueryParam("criteria[0][value]", value)

	resp, err := req.Get("/search/User")
	if err != nil {
		c.metrics.RecordUpstream("searchUser", false)
		return nil, util.NewUpstreamError("Erro ao buscar usuário no GLPI: "+err.Error(), err)
	}
	if !resp.IsSuccess() {
		c.metrics.RecordUpstream("searchUser", false)
		glpiErr := &GlpiError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		return nil, util.NewUpstreamError("Erro ao buscar usuário no GLPI: "+glpiErr.Error(), glpiErr)
	}
	c.metrics.RecordUpstream("searchUser", true)
	return extractRows(resp.Body()), nil
}

// selectUserRow normalizes whichever row shape GLPI produced. Rows keyed by
// semantic names or searchoption indices and rows shipped as positional
// arrays both map onto UserRecord; malformed rows are skipped.
func selectUserRow(rows []json.RawMessage, field int, value string) domain.UserRecord {
	want := strings.ToLower(strings.TrimSpace(value))
	fieldKey := strconv.Itoa(field)

	var firstObject map[string]any
	for _, raw := range rows {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if firstObject == nil {
			firstObject = item
		}
		if strings.ToLower(strings.TrimSpace(asString(item[fieldKey]))) == want {
			return recordFromObject(item)
		}
	}
	if firstObject != nil {
		return recordFromObject(firstObject)
	}

	// Some GLPI versions return positional arrays in forced-display order.
	for _, raw := range rows {
		var item []any
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		return recordFromArray(item)
	}
	return domain.UserRecord{}
}

func recordFromObject(item map[string]any) domain.UserRecord {
	return domain.UserRecord{
		ID:    asUserID(firstValue(item, "id", "users_id", "2")),
		Name:  asString(firstValue(item, "name", "realname", "1", "9")),
		Login: asString(firstValue(item, "login", "user_name", "9", "1")),
		Email: asString(firstValue(item, "email", "user_email", "5")),
	}
}

func recordFromArray(item []any) domain.UserRecord {
	rec := domain.UserRecord{}
	if len(item) > 0 {
		rec.ID = asUserID(item[0])
	}
	if len(item) > 1 {
		rec.Name = asString(item[1])
	}
	if len(item) > 2 {
		rec.Email = asString(item[2])
	}
	if len(item) > 3 {
		rec.Login = asString(item[3])
	}
	return rec
}

func firstValue(item map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := item[key]; ok && v != nil && asString(v) != "" {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asUserID coerces numeric and digit-string ids; everything else is treated
// as not found.
func asUserID(v any) *int {
	switch n := v.(type) {
	case float64:
		id := int(n)
		return &id
	case int:
		return &n
	case string:
		if id, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &id
		}
	}
	return nil
}
