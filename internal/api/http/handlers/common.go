package handlers

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mcp-cau/glpi-gateway/internal/observability"
	apperrors "github.com/mcp-cau/glpi-gateway/pkg/util"
)

var bomPrefix = []byte{0xEF, 0xBB, 0xBF}

// parseJSONObject decodes a POST body into a raw object, enforcing the
// Content-Type contract first. Some clients prepend a UTF-8 BOM; it is
// stripped before decoding.
func parseJSONObject(c *fiber.Ctx) (map[string]any, error) {
	contentType := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	if !strings.HasPrefix(contentType, "application/json") {
		return nil, apperrors.NewValidationError("Content-Type deve ser 'application/json'",
			map[string]any{
				"received_content_type": c.Get(fiber.HeaderContentType),
				"expected_content_type": "application/json",
			})
	}

	raw := bytes.TrimPrefix(c.Body(), bomPrefix)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperrors.NewValidationError("Corpo da requisição vazio", nil)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apperrors.NewValidationError("JSON malformado: "+err.Error(), nil)
	}
	body, ok := decoded.(map[string]any)
	if !ok {
		return nil, apperrors.NewValidationError("JSON deve ser um objeto", nil)
	}
	return body, nil
}

func traceID(c *fiber.Ctx) string {
	id, _ := c.Locals(observability.TraceIDKey).(string)
	return id
}
