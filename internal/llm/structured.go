package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw model output.
//
// Candidates are tried in order: the whole trimmed text, the interior of
// the first fenced code block, then the first balanced {...} object. The
// first candidate that decodes and passes validator wins. A value is
// never returned partially populated.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	candidates := jsonCandidates(raw)
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var errs []error
	for _, c := range candidates {
		result, err := decodeCandidate(c.text, validator)
		if err == nil {
			return result, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", c.stage, err))
	}
	return zero, fmt.Errorf("%w: %w", ErrInvalidOutput, errors.Join(errs...))
}

type jsonCandidate struct {
	stage string
	text  string
}

func jsonCandidates(raw string) []jsonCandidate {
	var out []jsonCandidate
	seen := make(map[string]bool)
	add := func(stage, text string) {
		text = strings.TrimSpace(text)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, jsonCandidate{stage: stage, text: text})
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		add("strict", trimmed)
	}
	if fenced, ok := extractFencedBlock(raw); ok {
		add("fenced", fenced)
	}
	if block := extractJSONBlock(raw); block != "" {
		add("object", stripJSONComments(block))
	}
	return out
}

func decodeCandidate[T any](text string, validator SchemaValidator[T]) (T, error) {
	var result T
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		var zero T
		return zero, err
	}
	if validator != nil {
		if err := validator(result); err != nil {
			var zero T
			return zero, fmt.Errorf("validation failed: %w", err)
		}
	}
	return result, nil
}

// extractFencedBlock returns the interior of the first ``` fence, with an
// optional language tag on the opening line. An unterminated fence yields
// everything after the opening line.
func extractFencedBlock(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open == -1 {
		return "", false
	}
	rest := s[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isFenceTag(tag) {
			rest = rest[nl+1:]
		}
	} else {
		rest = strings.TrimPrefix(strings.TrimLeft(rest, " "), "json")
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return rest, true
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
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

// stripJSONComments removes // and /* */ comments outside of string values.
// Models sometimes annotate JSON despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}
