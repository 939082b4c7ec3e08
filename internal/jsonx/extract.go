// Package jsonx provides JSON extraction utilities for parsing LLM responses.
//
// LLMs often return JSON embedded in text or with additional commentary.
// The helpers here locate a JSON object inside such text. Extraction failure
// is reported as a boolean, not an error: callers treat "no JSON here" as a
// variant of the response shape, not a fault.
package jsonx

import (
	"encoding/json"
	"strings"
)

// FirstObject finds the first top-level JSON object span in text.
// It handles common LLM response patterns:
// 1. Pure JSON response - returns the full response
// 2. JSON object embedded in text - finds first '{' and last '}'
//
// Limitations:
// - Only handles JSON objects, not arrays
// - Uses simple brace matching, not full JSON parsing
// - May miss objects if braces appear unbalanced inside strings
func FirstObject(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)

	// Try the full text first
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return trimmed, true
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end <= start {
		return "", false
	}

	span := text[start : end+1]
	if !json.Valid([]byte(span)) {
		return "", false
	}
	return span, true
}

// Decode extracts the first JSON object from text and unmarshals it into T.
// Returns false if no valid object is present or it does not fit T.
func Decode[T any](text string) (T, bool) {
	var result T
	span, ok := FirstObject(text)
	if !ok {
		return result, false
	}
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		return result, false
	}
	return result, true
}

// DecodeExact unmarshals text (which must already be a JSON object) into T.
// Returns false on any decode failure.
func DecodeExact[T any](text string) (T, bool) {
	var result T
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return result, false
	}
	return result, true
}
