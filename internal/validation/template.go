package validation

import "strings"

// topicMarker is the Copilot Studio variable namespace that betrays an
// unresolved template expression.
const topicMarker = "Topic."

// IsTemplateArtifact reports whether a field value is an unprocessed Power Fx
// expression leaked by the upstream agent, e.g. "{Topic.descricao}" or
// "=Topic.titulo". Catching these before any GLPI call keeps garbage out of
// real tickets.
func IsTemplateArtifact(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	v := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}") && strings.Contains(v, topicMarker):
		return true
	case strings.HasPrefix(v, "@{") && strings.HasSuffix(v, "}") && strings.Contains(v, topicMarker):
		return true
	case strings.HasPrefix(v, "=") && strings.Contains(v, topicMarker):
		return true
	}
	return false
}

// templateArtifacts lists every body entry whose value still looks like a
// template expression, formatted as "key: value" for the error detail.
func templateArtifacts(body map[string]any) []string {
	var found []string
	for key, value := range body {
		if IsTemplateArtifact(value) {
			found = append(found, key+": "+value.(string))
		}
	}
	return found
}
