// Package sanitize cleans decoded JSON payloads before they are applied to stored records.
package sanitize

// Blanks returns a copy of payload with every key whose value is the empty
// string removed, at any depth. Nested objects, including objects inside
// arrays, are walked. Zero numbers, false and null are kept.
func Blanks(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}

	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = clean(v)
	}
	return out
}

func clean(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Blanks(t)
	case []any:
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = clean(item)
		}
		return items
	default:
		return v
	}
}
