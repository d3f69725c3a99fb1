package config

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// schemaFiles maps each data file to the schema it must satisfy
var schemaFiles = map[string]string{
	ContentFile:  "schemas/content.schema.json",
	ProjectsFile: "schemas/projects.schema.json",
}

// FieldError is one schema violation at a JSON path
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every violation found in a data file
type SchemaError struct {
	File   string
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s does not match its schema:", e.File)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// CheckSchema validates raw JSON for one of the data files. Files without a
// schema pass unchecked.
func CheckSchema(file string, data []byte) error {
	path, ok := schemaFiles[file]
	if !ok {
		return nil
	}
	schema, err := schemaFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema for %s: %w", file, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", file, err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{File: file, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}
