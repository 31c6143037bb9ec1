package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/lddscreen/internal/assessment"
)

// resultSchema is the shape both analysis services return.
var resultSchema = map[string]any{
	"type":     "object",
	"required": []any{"overall_score", "features"},
	"properties": map[string]any{
		"overall_score": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 100,
		},
		"features": map[string]any{
			"type": "object",
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func resultValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		const url = "schema://analyzer-result.json"
		// The compiler wants a decoded JSON document, not Go literals.
		defBytes, err := json.Marshal(resultSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Decode reads one analyzer result and validates it against the result
// schema before converting it.
func Decode(r io.Reader) (*assessment.ModalityResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ErrInvalidResult{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := resultValidator()
	if err != nil {
		return nil, fmt.Errorf("compile result schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, &ErrInvalidResult{Err: err}
	}

	var res assessment.ModalityResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &ErrInvalidResult{Err: err}
	}
	return &res, nil
}
