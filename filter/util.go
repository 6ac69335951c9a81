package filter

import (
	"encoding/json"
	"strings"
)

// quote renders s as a single-quoted SQL literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func fold(s string) string {
	return "LOWER(" + s + ")"
}

// splitList splits comma separated text and trims every member.
func splitList(s string) List {
	parts := strings.Split(s, ",")
	list := make(List, len(parts))
	for i, p := range parts {
		list[i] = strings.TrimSpace(p)
	}
	return list
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case bool, json.Number, string:
		return true
	default:
		return false
	}
}

func isScalarSlice(v any) bool {
	switch v := v.(type) {
	case []any:
		for _, e := range v {
			if !isScalar(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// scalarText renders a decoded JSON scalar the way it was written.
func scalarText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Number:
		return v.String()
	case string:
		return v
	}
	return ""
}
