package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{FieldNameTag: "yaml", RequiredFromJSONSchemaTags: true}
	schema := r.Reflect(&Config{})
	schema.Title = "News aggregator configuration"
	return schema
}

// WriteSchema writes indented JSON schema of the config to path
func WriteSchema(path string) error {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}
