package mapper

// envelopeKeys are the wrappers the backend uses around list and detail payloads.
var envelopeKeys = []string{"data", "items", "results", "rows"}

// Records unwraps a list payload: a bare array or an object carrying the
// array under one of the envelope keys. Non-object items are skipped.
func Records(payload interface{}) []map[string]interface{} {
	switch v := payload.(type) {
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	case []map[string]interface{}:
		return v
	case map[string]interface{}:
		for _, key := range envelopeKeys {
			if inner, ok := v[key]; ok {
				return Records(inner)
			}
		}
	}
	return []map[string]interface{}{}
}

// Record unwraps a single-object payload, descending through a "data"
// envelope when present.
func Record(payload interface{}) map[string]interface{} {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	if inner, ok := m["data"].(map[string]interface{}); ok {
		return inner
	}
	return m
}
