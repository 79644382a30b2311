package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// schemaCache caches compiled schemas by category.
var schemaCache sync.Map // map[Category]*jsonschema.Schema

// schemaFor maps a category to its schema file; the preschool categories
// share one.
func schemaFor(cat Category) string {
	switch cat {
	case CategoryPreschoolAnimals, CategoryPreschoolObjects, CategoryPreschoolColors, CategoryPreschoolShapes:
		return "preschool_items"
	default:
		return string(cat)
	}
}

// validateRecords checks a raw content file against its category schema.
func validateRecords(cat Category, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", cat, err)
	}
	compiled, err := compiledSchema(cat)
	if err != nil {
		return fmt.Errorf("%s: compile schema: %w", cat, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", cat, err)
	}
	return nil
}

func compiledSchema(cat Category) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(cat); ok {
		return cached.(*jsonschema.Schema), nil
	}

	name := schemaFor(cat)
	raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://content/%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(cat, compiled)
	return compiled, nil
}
