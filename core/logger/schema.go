package logger

import "strings"

var levelNames = map[string]string{
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

var knownStatus = map[string]bool{
	"ok":        true,
	"fail":      true,
	"skip":      true,
	"retry":     true,
	"denied":    true,
	"cancelled": true,
}

var knownOutcome = map[string]bool{
	"ok":        true,
	"fail":      true,
	"cancelled": true,
}

func normalizeLevel(level string) string {
	if level == "" {
		return "INFO"
	}
	if name, ok := levelNames[strings.ToLower(level)]; ok {
		return name
	}
	return strings.ToUpper(level)
}

// normalizeStatus lowercases known statuses and passes unknown values through.
func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if knownStatus[s] {
		return s
	}
	return status
}

func normalizeOutcome(outcome string) (string, bool) {
	o := strings.ToLower(strings.TrimSpace(outcome))
	return o, knownOutcome[o]
}

var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"op",
	"action",
	"session_mode",
	"verdict",
	"outcome",
	"duration_ms",
	"count",
	"username",
	"target_id",
	"driver",
	"mode",
	"listen",
	"public_url",
	"http_code",
	"db",
	"host",
	"err",
	"err_code",
	"cause",
	"retryable",
	"attempts",
	"backoff_ms",
}
