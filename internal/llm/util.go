// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses an LLM response as exactly one JSON value into v. The
// raw text is tried first; only when that fails is a surrounding markdown
// code fence removed and the result tried again. Text before or after the
// value is an error; no JSON is cut out of surrounding prose.
func DecodeJSON(text string, v any) error {
	err := decodeStrict(text, v)
	if err == nil {
		return nil
	}
	trimmed := strings.TrimSpace(text)
	if stripped := CleanJSONBlock(trimmed); stripped != trimmed {
		if decodeStrict(stripped, v) == nil {
			return nil
		}
	}
	return err
}

func decodeStrict(text string, v any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected content after JSON value at offset %d", dec.InputOffset())
	}
	return json.NewDecoder(bytes.NewReader(raw)).Decode(v)
}

// CleanJSONBlock removes a markdown code fence (with an optional language
// tag) around text. Anything else is returned trimmed and unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	// Skip a language identifier on the first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	return strings.TrimSpace(text)
}
