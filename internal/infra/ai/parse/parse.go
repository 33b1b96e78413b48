// Package parse turns raw model output into validated analysis results.
// Vendors that cannot be forced into JSON mode wrap the document in prose
// or markdown fences, so extraction scans for the first balanced object.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
)

// ExtractJSON returns the first balanced top-level {...} span in raw,
// after stripping markdown code fences. Brace counting is string-aware so
// braces inside JSON string values do not break the balance.
func ExtractJSON(raw string) (string, bool) {
	raw = stripFences(raw)

	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.LastIndex(raw, "```"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// DecodeResult extracts, unmarshals and validates a result document.
// Every failure mode maps to ErrMalformedResponse so callers can treat the
// whole decode step as one transient failure class.
func DecodeResult(raw string) (*analysis.Result, error) {
	doc, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ai.ErrMalformedResponse)
	}
	var res analysis.Result
	if err := json.Unmarshal([]byte(doc), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	return &res, nil
}
