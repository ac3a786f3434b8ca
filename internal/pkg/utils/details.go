package utils

import "encoding/json"

// DetailsToString converts an audit details map to a JSON string (safe for DB).
func DetailsToString(details map[string]any) string {
	if len(details) == 0 {
		return "{}"
	}
	data, _ := json.Marshal(details)
	return string(data)
}

// StringToDetails converts a DB string back to a details map.
func StringToDetails(s string) map[string]any {
	if s == "" || s == "{}" {
		return map[string]any{}
	}
	var details map[string]any
	if err := json.Unmarshal([]byte(s), &details); err != nil {
		return map[string]any{"raw": s}
	}
	return details
}
