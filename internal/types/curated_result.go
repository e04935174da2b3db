//nolint:revive // types is a standard Go package name pattern
package types

// ResultKind distinguishes how a curated result was produced.
type ResultKind string

const (
	// ResultSuccess means the LLM response parsed as JSON and was returned as-is
	ResultSuccess ResultKind = "success"
	// ResultDegraded means the LLM path failed and the original payload was repaired locally
	ResultDegraded ResultKind = "degraded"
	// ResultFailure means even local repair failed; Value holds the error object
	ResultFailure ResultKind = "failure"
)

// InvalidJSONStructure is the message carried by the terminal error object.
const InvalidJSONStructure = "Invalid JSON structure"

// CuratedResult is the Curator's output for one invocation.
type CuratedResult struct {
	Kind ResultKind `json:"kind"`
	// Value is the JSON value handed back to the caller.
	Value any `json:"value"`
	// Reason explains a degraded or failed result.
	Reason string `json:"reason,omitempty"`
	// SchemaViolations lists question-schema mismatches found in a successful
	// LLM response. They are informational only.
	SchemaViolations []string `json:"schema_violations,omitempty"`
}

// Payload returns the JSON-shaped value to emit to the caller.
func (r *CuratedResult) Payload() any {
	if r == nil {
		return nil
	}
	return r.Value
}

// OK reports whether the LLM path produced the value.
func (r *CuratedResult) OK() bool {
	return r != nil && r.Kind == ResultSuccess
}

// ErrorObject builds the terminal error payload.
func ErrorObject(original string) map[string]any {
	return map[string]any{
		"error":    InvalidJSONStructure,
		"original": original,
	}
}
