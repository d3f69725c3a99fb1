package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema_SampleData(t *testing.T) {
	for _, name := range []string{ContentFile, ProjectsFile} {
		data, err := os.ReadFile(filepath.Join("..", "..", "data", name))
		require.NoError(t, err)
		assert.NoError(t, CheckSchema(name, data), name)
	}
}

func TestCheckSchema_Violations(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		doc   string
		field string
	}{
		{"missing profile", ContentFile, `{}`, "(root)"},
		{"skill level type", ContentFile, `{"profile":{"name":"Ada"},"skills":[{"title":"T","skills":[{"name":"Go","level":"high"}]}]}`, "skills.0.skills.0.level"},
		{"project id type", ProjectsFile, `{"projects":[{"id":7,"title":"Seven"}]}`, "projects.0.id"},
		{"year type", ProjectsFile, `{"projects":[{"id":"a","title":"A","year":"2024"}]}`, "projects.0.year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSchema(tt.file, []byte(tt.doc))
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %v", err)
			assert.Equal(t, tt.file, schemaErr.File)
			require.NotEmpty(t, schemaErr.Errors)
			assert.Equal(t, tt.field, schemaErr.Errors[0].Field)
		})
	}
}

func TestCheckSchema_UnknownFile(t *testing.T) {
	assert.NoError(t, CheckSchema("notes.json", []byte(`not json`)))
}

func TestLoadContent_SchemaError(t *testing.T) {
	cfg := &Config{DataPath: writeData(t, siteJSON, `{"projects":[{"id":"p1"}]}`)}
	err := cfg.LoadContent()
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "projects.json does not match its schema")
}
