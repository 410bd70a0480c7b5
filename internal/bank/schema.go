package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quizbox/bank.json"

// questionSchema describes one question record on the wire.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": []any{"string", "integer"},
		},
		"type": map[string]any{
			"type": "string",
		},
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"image": map[string]any{
			"type": "string",
		},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"correct": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "integer", "minimum": 0},
				map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "integer", "minimum": 0},
					"minItems": 1,
				},
				map[string]any{"type": "string"},
				map[string]any{"type": "number", "not": map[string]any{"type": "integer"}},
			},
		},
	},
	"required":             []any{"question", "correct"},
	"additionalProperties": false,
}

// BankSchema accepts either a bare array of questions or a versioned document.
var BankSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$defs": map[string]any{
		"question": questionSchema,
	},
	"oneOf": []any{
		map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/question"},
		},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"version":   map[string]any{"type": "integer", "minimum": 1},
				"title":     map[string]any{"type": "string"},
				"questions": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/question"}},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the bank schema, compiling it on first use.
func compiled() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the Go maps.
		raw, err := json.Marshal(BankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateSchema checks a raw JSON document against BankSchema.
func validateSchema(raw []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}

// SchemaError wraps a JSON Schema violation.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("bank does not match schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
