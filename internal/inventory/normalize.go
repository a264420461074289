package inventory

import "strings"

// NormalizeKey lowercases raw, trims it and joins internal whitespace runs
// with a single underscore. "  Env   Type " becomes "env_type".
func NormalizeKey(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}

// cleanLabels copies labels with values trimmed, dropping entries whose
// value is empty afterwards.
func cleanLabels(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
