package config

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/jsonview/pkg/format"
)

// GenerateSchema generates the JSON Schema for jsonview configuration files.
// Known settings are strictly typed; unknown top-level keys are allowed so
// extension sections like logging can live in the same file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		DoNotReference:            true,
		Anonymous:                 true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
		Mapper:       mapType,
	}

	s := r.Reflect(&Config{})
	s.Title = "jsonview Configuration"
	s.Description = "Settings for the jsonview command and interactive viewer."
	s.Version = "http://json-schema.org/draft-07/schema#"
	s.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(s, "", "  ")
}

func mapType(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeOf(format.Indent{}) {
		return nil
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer", Minimum: json.Number("0"), Maximum: json.Number("10")},
			{Type: "string", Pattern: `^(tab|tabs|TAB|TABS|[0-9]|10)$`},
		},
		Description: "Indentation used when beautifying: 2, 4 or tab",
	}
}
