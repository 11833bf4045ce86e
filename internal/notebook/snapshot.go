package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/drillpad/internal/bank"
)

// MalformedSnapshotError reports an import that does not parse into a
// sequence of question records.
type MalformedSnapshotError struct {
	Err error
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed notebook snapshot: %v", e.Err)
}

func (e *MalformedSnapshotError) Unwrap() error { return e.Err }

const schemaURL = "schema://notebook-snapshot.json"

// snapshotSchema describes the export format. Optional fields accept null
// so files written by older tools import cleanly.
var snapshotSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"page", "question_text"},
		"properties": map[string]any{
			"page":            map[string]any{"type": []any{"number", "string"}},
			"question_text":   map[string]any{"type": "string"},
			"exercise_block":  map[string]any{"type": []any{"string", "null"}},
			"question_number": map[string]any{"type": []any{"number", "string", "null"}},
			"hints":           map[string]any{"type": []any{"string", "null"}},
			"answer":          map[string]any{"type": []any{"string", "null"}},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, snapshotSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Encode writes questions as an indented UTF-8 JSON array.
func Encode(qs []bank.Question) ([]byte, error) {
	if qs == nil {
		qs = []bank.Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a snapshot. Every failure is a
// *MalformedSnapshotError.
func Decode(data []byte) ([]bank.Question, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedSnapshotError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := schema()
	if err != nil {
		return nil, &MalformedSnapshotError{Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, &MalformedSnapshotError{Err: err}
	}

	var qs []bank.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, &MalformedSnapshotError{Err: err}
	}
	return qs, nil
}
