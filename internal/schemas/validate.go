// Package schemas provides JSON Schema validation for curated question lists
// and the static DSA table.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names
const (
	Questions = "questions.schema.json"
	DSATable  = "dsa.schema.json"
)

// MaxQuestions is the curated list cap carried by the questions schema.
const MaxQuestions = 15

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "not embedded", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a decoded JSON document against an embedded schema.
func Validate(name string, doc any) error {
	return validate(name, gojsonschema.NewGoLoader(doc))
}

// ValidateBytes checks raw JSON against an embedded schema. Malformed JSON
// is reported as a *ValidationError on the root.
func ValidateBytes(name string, data []byte) error {
	return validate(name, gojsonschema.NewBytesLoader(data))
}

func validate(name string, doc gojsonschema.JSONLoader) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// CheckQuestions spot-checks a curated LLM value against the questions
// schema and returns the violations as strings. A JSON object carrying a
// "questions" list is checked through that list. The result is nil when the
// value conforms.
func CheckQuestions(value any) []string {
	if obj, ok := value.(map[string]any); ok {
		if list, ok := obj["questions"]; ok {
			value = list
		}
	}

	err := Validate(Questions, value)
	if err == nil {
		return nil
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, fe.String())
	}
	return out
}
