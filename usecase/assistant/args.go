package assistant

import (
	"strings"
	"time"
)

// Tool arguments arrive as loosely-typed JSON emitted by the model. These
// helpers normalize access; handlers re-validate required fields themselves
// instead of trusting upstream schema enforcement.

func strArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func hasArg(args map[string]interface{}, key string) bool {
	_, ok := args[key]
	return ok
}

func boolArg(args map[string]interface{}, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

func floatArg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	v, ok := floatArg(args, key)
	return int(v), ok
}

// dateArg accepts YYYY-MM-DD or RFC3339 and returns nil when the value is
// absent or unparseable.
func dateArg(args map[string]interface{}, key string) *time.Time {
	raw := strArg(args, key)
	if raw == "" {
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	return nil
}

// optionalDate distinguishes a missing date from a malformed one: absent
// values are fine (nil, true), unparseable values report failure so the
// handler can tell the model to correct the format.
func optionalDate(args map[string]interface{}, key string) (*time.Time, bool) {
	if strArg(args, key) == "" {
		return nil, true
	}
	parsed := dateArg(args, key)
	if parsed == nil {
		return nil, false
	}
	return parsed, true
}

func todayStamp() string {
	return time.Now().Format("2006-01-02")
}
