// Package schema validates JSON data against JSON Schema documents.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Violation is a single failed constraint.
type Violation struct {
	// Location is a JSON pointer into the instance ("" for the root).
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (v Violation) String() string {
	loc := v.Location
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("- %s: %s", loc, v.Message)
}

// Validator validates data against one compiled schema.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

// Compile builds a Validator from schema JSON. name identifies the schema
// in error messages and as its resource URL.
func Compile(name string, schemaJSON []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schemaJSON)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaInvalid, "failed to add schema resource").
			WithDetail("schema", name)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaInvalid, "failed to compile schema").
			WithDetail("schema", name)
	}
	return &Validator{name: name, schema: schema}, nil
}

// CompileFile builds a Validator from a schema file on disk.
func CompileFile(path string) (*Validator, error) {
	schema, err := jsonschema.NewCompiler().Compile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaInvalid, "failed to compile schema").
			WithDetail("schema", path)
	}
	return &Validator{name: path, schema: schema}, nil
}

// Validate checks data, which may be any value that marshals to JSON.
func (v *Validator) Validate(data interface{}) error {
	// The schema expects plain JSON-like values, not Go structs.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to marshal data for validation")
	}
	return v.validateJSON(jsonData)
}

// ValidateValue checks a parsed document.
func (v *Validator) ValidateValue(doc jsonvalue.Value) error {
	return v.validateJSON([]byte(jsonvalue.Marshal(doc, "")))
}

func (v *Validator) validateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance interface{}
	if err := dec.Decode(&instance); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to decode data for validation")
	}

	err := v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.SchemaMismatch(v.name, err)
	}

	var violations []Violation
	collectErrors(validationErr, &violations)
	lines := make([]string, len(violations))
	for i, viol := range violations {
		lines[i] = viol.String()
	}
	return errors.SchemaMismatch(v.name, fmt.Errorf("schema validation failed:\n%s", strings.Join(lines, "\n"))).
		WithDetail("violations", violations)
}

// Violations extracts the individual failures from an error returned by
// Validate or ValidateValue.
func Violations(err error) []Violation {
	coded, ok := err.(*errors.CodedError)
	if !ok || coded.Details == nil {
		return nil
	}
	violations, _ := coded.Details["violations"].([]Violation)
	return violations
}

// collectErrors recursively collects the leaf validation errors.
func collectErrors(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{Location: err.InstanceLocation, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, out)
	}
}
