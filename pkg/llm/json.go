package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeFencePattern strips a leading markdown code fence (``` or ```json).
var codeFencePattern = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.*?)\\s*```\\s*$")

// ExtractJSON pulls a JSON object or array out of a model response that may
// be wrapped in markdown fences or preceded by explanatory prose.
func ExtractJSON(response string) (string, error) {
	cleaned := strings.TrimSpace(response)

	if m := codeFencePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	if objStart >= 0 && (arrStart < 0 || objStart < arrStart) {
		if jsonStr, ok := extractBalanced(cleaned, '{', '}'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, nil
		}
	}

	if arrStart >= 0 {
		if jsonStr, ok := extractBalanced(cleaned, '[', ']'); ok && json.Valid([]byte(jsonStr)) {
			return jsonStr, nil
		}
	}

	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	return "", fmt.Errorf("no valid JSON found in response")
}

// extractBalanced finds the first balanced JSON structure starting with
// openChar, counting bracket depth and skipping string contents.
func extractBalanced(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
	if start == -1 {
		return "", false
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

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// ParseJSONResponse extracts JSON from a response and unmarshals it into T.
func ParseJSONResponse[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("unmarshal JSON: %w", err)
	}

	return result, nil
}
