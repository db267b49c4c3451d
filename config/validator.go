package config

import (
	"sync"

	"github.com/grovetools/jsonview/schema"
)

var (
	validatorOnce sync.Once
	validatorInst *schema.Validator
	validatorErr  error
)

// SchemaValidator validates raw configuration maps against the schema
// generated from Config.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator compiles the configuration schema. The compiled schema
// is shared by all validators.
func NewSchemaValidator() (*SchemaValidator, error) {
	validatorOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			validatorErr = err
			return
		}
		validatorInst, validatorErr = schema.Compile("jsonview.schema.json", data)
	})
	if validatorErr != nil {
		return nil, validatorErr
	}
	return &SchemaValidator{validator: validatorInst}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
