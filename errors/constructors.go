package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *CodedError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *CodedError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidJSON creates an error for a document that failed to parse.
// Line and column are 1-based.
func InvalidJSON(cause error, line, column int) *CodedError {
	return Wrap(cause, ErrCodeInvalidJSON, fmt.Sprintf("invalid JSON at line %d, column %d", line, column)).
		WithDetail("line", line).
		WithDetail("column", column)
}

// SchemaMismatch creates an error for a document rejected by a JSON Schema
func SchemaMismatch(schemaPath string, cause error) *CodedError {
	return Wrap(cause, ErrCodeSchemaMismatch, "document does not match schema").
		WithDetail("schema", schemaPath)
}

// UnknownOperation creates an error for a worker request with an unsupported type
func UnknownOperation(op string) *CodedError {
	return New(ErrCodeUnknownOperation, "Unknown operation type: "+op).
		WithDetail("operation", op)
}
