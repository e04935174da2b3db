package curation

import (
	"encoding/json"
)

// Repair applies the local fallback to an original payload:
// a string is parsed as JSON, a JSON object loses its null and empty-string
// members, and anything else is returned unchanged. Repair is idempotent.
func Repair(original any) (any, error) {
	value := original
	var raw []byte
	switch v := original.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	}
	if raw != nil {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, &RepairError{Message: "payload is not valid JSON", Cause: err}
		}
		value = parsed
	}

	if obj, ok := value.(map[string]any); ok {
		return dropEmpty(obj), nil
	}
	return value, nil
}

func dropEmpty(obj map[string]any) map[string]any {
	cleaned := make(map[string]any, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}
