package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON schema a response body must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var envelopeSchema = &Schema{
	Name: "envelope",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"success"},
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"message": map[string]any{"type": []any{"string", "null"}},
		},
	},
}

var burnoutSchema = &Schema{
	Name: "burnout_analysis",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"overall_burnout_risk", "weekly_study_hours", "course_difficulty", "stress_factors"},
		"properties": map[string]any{
			"overall_burnout_risk": map[string]any{
				"type":     "object",
				"required": []any{"level"},
			},
			"weekly_study_hours": map[string]any{
				"type":     "object",
				"required": []any{"total"},
				"properties": map[string]any{
					"total": map[string]any{"type": "number"},
				},
			},
			"course_difficulty": map[string]any{"type": "object"},
			"stress_factors":    map[string]any{"type": "object"},
			"workload_distribution": map[string]any{
				"type": "array",
			},
		},
	},
}

var rootSchema = &Schema{
	Name: "root",
	Definition: map[string]any{
		"type": "object",
	},
}

// validateResponse checks raw JSON against schema. A nil schema accepts
// anything.
func validateResponse(op string, schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidResponseError{Op: op, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &InvalidResponseError{Op: op, Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidResponseError{Op: op, Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, so round-trip the
	// Go literal through encoding/json.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
