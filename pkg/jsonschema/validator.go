package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate validates a JSON string against a JSON Schema
// Returns true if the JSON is valid, false otherwise
// If there's an error in the schema or JSON parsing, it returns an error
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, err
	}

	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}

	// A schema violation is a normal "invalid" result, not an error
	return schema.Validate(jsonData) == nil, nil
}

// ValidateWithErrors validates a JSON string against a JSON Schema
// Returns true if the JSON is valid, false otherwise
// Also returns a list of validation errors if the JSON is invalid
func ValidateWithErrors(jsonStr, schemaStr string) (bool, ValidationErrors) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}

	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	return validate(schema, jsonData)
}

// ValidateDocument validates an already decoded document (for example the
// result of unmarshaling YAML into interface{}) against a JSON Schema.
// The document is normalized through JSON first so that integer and map
// types produced by other decoders validate the same way JSON input does.
func ValidateDocument(doc interface{}, schemaStr string) (bool, ValidationErrors) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return false, ValidationErrors{fmt.Errorf("document is not JSON compatible: %w", err)}
	}

	var jsonData interface{}
	if err := json.Unmarshal(raw, &jsonData); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	return validate(schema, jsonData)
}

// compile parses and compiles a schema string.
func compile(schemaStr string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

func validate(schema *jsonschema.Schema, jsonData interface{}) (bool, ValidationErrors) {
	err := schema.Validate(jsonData)
	if err == nil {
		return true, nil
	}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return false, extractValidationErrors(validationErr)
	}
	return false, ValidationErrors{err}
}

// extractValidationErrors extracts all validation errors from a jsonschema.ValidationError
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	// Add the current error
	if err.Message != "" {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}

	// Add all child errors
	for _, childErr := range err.Causes {
		errors = append(errors, extractValidationErrors(childErr)...)
	}

	return errors
}
