//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// QuestionType is the coarse category of a harvested question.
type QuestionType string

const (
	// QuestionTypeDSA marks questions taken from a data-structures/algorithms page
	QuestionTypeDSA QuestionType = "DSA"
	// QuestionTypeHR marks every other question
	QuestionTypeHR QuestionType = "HR"
)

// QuestionTypeForURL infers the category from the source URL: any URL whose
// lowercased text contains "dsa" is DSA, everything else HR.
func QuestionTypeForURL(url string) QuestionType {
	if strings.Contains(strings.ToLower(url), "dsa") {
		return QuestionTypeDSA
	}
	return QuestionTypeHR
}

// RawQuestion is one extracted, unvalidated question.
type RawQuestion struct {
	Question string       `json:"question"`
	Link     string       `json:"link"`
	Type     QuestionType `json:"type"`
}

// QuestionSet is the ordered list of questions collected in one run.
// Order is source URL order, then heading order within a page.
type QuestionSet []RawQuestion

// CountByType tallies the set per category.
func (qs QuestionSet) CountByType() map[QuestionType]int {
	counts := make(map[QuestionType]int)
	for _, q := range qs {
		counts[q.Type]++
	}
	return counts
}
