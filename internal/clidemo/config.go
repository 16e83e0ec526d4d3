// Package clidemo is the command-line demo harness for the lyra
// engine: it loads a YAML schema-and-seed file, builds an Engine from
// it, and exposes the cobra subcommands search, delete and validate
// (the last one only inserts the seed documents).
package clidemo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-mizu/blueprints/lyra"
)

// demoFile is the shape of the YAML file every subcommand loads: a
// schema declaration plus the documents to seed the engine with.
type demoFile struct {
	DefaultLanguage string           `yaml:"defaultLanguage"`
	Schema          map[string]any   `yaml:"schema"`
	Documents       []map[string]any `yaml:"documents"`
}

func loadDemoFile(path string) (*demoFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demo file: %w", err)
	}
	var f demoFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse demo file: %w", err)
	}
	return &f, nil
}

// buildSchema converts the YAML schema map into a lyra.Schema. Each
// entry is either a leaf type name ("text", "number", "boolean") or a
// nested map describing an object field.
func buildSchema(raw map[string]any) (lyra.Schema, error) {
	schema := make(lyra.Schema, len(raw))
	for name, value := range raw {
		field, err := buildField(name, value)
		if err != nil {
			return nil, err
		}
		schema[name] = field
	}
	return schema, nil
}

func buildField(name string, value any) (lyra.Field, error) {
	switch v := value.(type) {
	case string:
		switch v {
		case "text":
			return lyra.TextField(), nil
		case "number":
			return lyra.NumberField(), nil
		case "boolean":
			return lyra.BooleanField(), nil
		default:
			return lyra.Field{}, fmt.Errorf("unknown field type %q for %q", v, name)
		}
	case map[string]any:
		nested, err := buildSchema(v)
		if err != nil {
			return lyra.Field{}, err
		}
		return lyra.ObjectField(nested), nil
	default:
		return lyra.Field{}, fmt.Errorf("invalid schema entry for %q", name)
	}
}

// buildEngine loads path, constructs the schema it declares, and
// inserts every seed document. It returns the engine along with how
// many documents were accepted.
func buildEngine(path string) (*lyra.Engine, int, error) {
	f, err := loadDemoFile(path)
	if err != nil {
		return nil, 0, err
	}

	schema, err := buildSchema(f.Schema)
	if err != nil {
		return nil, 0, fmt.Errorf("build schema: %w", err)
	}

	cfg := lyra.Configuration{Schema: schema}
	if f.DefaultLanguage != "" {
		cfg.DefaultLanguage = lyra.Language(f.DefaultLanguage)
	}

	engine, err := lyra.Create(cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("create engine: %w", err)
	}

	inserted := 0
	for i, raw := range f.Documents {
		if _, err := engine.Insert(lyra.Document(raw)); err != nil {
			return engine, inserted, fmt.Errorf("insert document %d: %w", i, err)
		}
		inserted++
	}
	// Insert only enqueues the write; Flush waits for the writer lane
	// to catch up so the seed documents are visible to the commands
	// that build on this engine.
	if err := engine.Flush(); err != nil {
		return engine, inserted, fmt.Errorf("flush seed documents: %w", err)
	}
	return engine, inserted, nil
}
