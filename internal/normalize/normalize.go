// Package normalize projects a QuestionSet into its human-readable and
// canonical JSON forms.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// JSONIndent is the indentation of the canonical JSON projection.
const JSONIndent = "    "

// FormatText renders each record as a "Question/Link/Type" block; blocks are
// separated by a blank line.
func FormatText(qs types.QuestionSet) string {
	blocks := make([]string, 0, len(qs))
	for _, q := range qs {
		blocks = append(blocks, fmt.Sprintf("Question: %s\nLink: %s\nType: %s\n", q.Question, q.Link, q.Type))
	}
	return strings.Join(blocks, "\n")
}

// MarshalJSON renders the set as a pretty-printed JSON array with the fields
// question, link and type. An empty set renders as [].
func MarshalJSON(qs types.QuestionSet) string {
	if qs == nil {
		qs = types.QuestionSet{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", JSONIndent)
	// Encoding strings and a fixed struct cannot fail.
	_ = enc.Encode(qs)

	return strings.TrimSuffix(buf.String(), "\n")
}

// ParseJSON decodes a projection produced by MarshalJSON back into records.
func ParseJSON(data string) (types.QuestionSet, error) {
	var qs types.QuestionSet
	if err := json.Unmarshal([]byte(data), &qs); err != nil {
		return nil, fmt.Errorf("failed to parse question JSON: %w", err)
	}
	return qs, nil
}

// Decode parses the projection into generic JSON values, the form handed to
// the curator.
func Decode(data string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("failed to decode question JSON: %w", err)
	}
	return v, nil
}
