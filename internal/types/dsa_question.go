//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// DSAQuestion is one entry of the static company DSA table. The table uses
// both question_name/question and question_link/link spellings; Name and
// URL resolve whichever is present.
type DSAQuestion struct {
	QuestionName string   `json:"question_name,omitempty"`
	Question     string   `json:"question,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Subtopics    []string `json:"subtopics,omitempty"`
	QuestionLink string   `json:"question_link,omitempty"`
	Link         string   `json:"link,omitempty"`

	// Extra keeps any other fields so the record is returned unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// Name returns question_name, falling back to question.
func (q DSAQuestion) Name() string {
	if q.QuestionName != "" {
		return q.QuestionName
	}
	return q.Question
}

// URL returns question_link, falling back to link.
func (q DSAQuestion) URL() string {
	if q.QuestionLink != "" {
		return q.QuestionLink
	}
	return q.Link
}

var dsaKnownFields = map[string]bool{
	"question_name": true,
	"question":      true,
	"difficulty":    true,
	"subtopics":     true,
	"question_link": true,
	"link":          true,
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (q *DSAQuestion) UnmarshalJSON(data []byte) error {
	type plain DSAQuestion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if dsaKnownFields[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[k] = v
	}
	*q = DSAQuestion(p)
	return nil
}

// MarshalJSON writes the known fields followed by Extra.
func (q DSAQuestion) MarshalJSON() ([]byte, error) {
	type plain DSAQuestion
	base, err := json.Marshal(plain(q))
	if err != nil {
		return nil, err
	}
	if len(q.Extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage, len(q.Extra)+len(dsaKnownFields))
	for k, v := range q.Extra {
		merged[k] = v
	}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}
