package cmd

// Param helpers for MCP tool arguments, which arrive as a generic
// map[string]interface{} with JSON number types.

// StringParam extracts a string parameter with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// IntParam extracts an integer parameter with a default.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolParam extracts a boolean parameter with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
