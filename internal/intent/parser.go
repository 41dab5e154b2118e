package intent

import (
	"encoding/json"
	"strings"
)

// Marker delimits the structured reminder payload in a model reply.
const Marker = "REMINDER_JSON:"

// Request is a structured reminder intent extracted from a model reply.
type Request struct {
	Task   string `json:"task"`
	Hour   *int   `json:"hour"`
	Minute *int   `json:"minute"`
}

// Parse splits a raw model reply into the user-visible text and an optional
// reminder request. The payload is the first balanced-brace JSON object
// following the marker. Any malformed, partial, or out-of-range payload
// degrades to the full original text with no request; this function never
// fails past its boundary.
func Parse(raw string) (string, *Request) {
	idx := strings.Index(raw, Marker)
	if idx == -1 {
		return raw, nil
	}

	payload := jsonObject(raw[idx+len(Marker):])
	if payload == "" {
		return raw, nil
	}

	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return raw, nil
	}
	if !valid(&req) {
		return raw, nil
	}

	return strings.TrimSpace(raw[:idx]), &req
}

func valid(r *Request) bool {
	if r.Task == "" || r.Hour == nil || r.Minute == nil {
		return false
	}
	if *r.Hour < 0 || *r.Hour > 23 {
		return false
	}
	if *r.Minute < 0 || *r.Minute > 59 {
		return false
	}
	return true
}

// jsonObject returns the first balanced { ... } block in s, honoring string
// literals and escapes, or "" when no object closes.
func jsonObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
