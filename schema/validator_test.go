package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

const personSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "additionalProperties": false
}`

func TestValidateValue(t *testing.T) {
	v, err := Compile("person.json", []byte(personSchema))
	require.NoError(t, err)

	assert.NoError(t, v.ValidateValue(jsonvalue.MustParse(`{"name": "ada", "age": 36, "tags": ["x"]}`)))

	err = v.ValidateValue(jsonvalue.MustParse(`{"age": -1, "tags": [1], "extra": true}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaMismatch))

	violations := Violations(err)
	require.NotEmpty(t, violations)
	var locations []string
	for _, viol := range violations {
		locations = append(locations, viol.Location)
	}
	assert.Contains(t, locations, "/age")
	assert.Contains(t, locations, "/tags/0")
}

func TestValidateStruct(t *testing.T) {
	v, err := Compile("person.json", []byte(personSchema))
	require.NoError(t, err)

	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	assert.NoError(t, v.Validate(person{Name: "grace", Age: 85}))
	assert.Error(t, v.Validate(map[string]interface{}{"age": 1}))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("broken.json", []byte(`{"type": 12}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaInvalid))

	_, err = CompileFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaInvalid))
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "array", "maxItems": 1}`), 0644))

	v, err := CompileFile(path)
	require.NoError(t, err)
	assert.NoError(t, v.ValidateValue(jsonvalue.MustParse(`[1]`)))
	assert.Error(t, v.ValidateValue(jsonvalue.MustParse(`[1, 2]`)))
}
