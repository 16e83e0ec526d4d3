package clidemo

import (
	"testing"

	"github.com/go-mizu/blueprints/lyra"
)

func TestBuildSchemaLeavesAndNesting(t *testing.T) {
	raw := map[string]any{
		"title": "text",
		"year":  "number",
		"author": map[string]any{
			"name": "text",
		},
		"inStock": "boolean",
	}

	schema, err := buildSchema(raw)
	if err != nil {
		t.Fatalf("buildSchema() error = %v", err)
	}

	if schema["title"].Kind != lyra.Text {
		t.Fatalf("expected title to be a text leaf, got %v", schema["title"])
	}
	if schema["year"].Kind != lyra.Number {
		t.Fatalf("expected year to be a number leaf, got %v", schema["year"])
	}
	if schema["inStock"].Kind != lyra.Boolean {
		t.Fatalf("expected inStock to be a boolean leaf, got %v", schema["inStock"])
	}
	if schema["author"].Nested == nil {
		t.Fatal("expected author to be a nested object")
	}
	if schema["author"].Nested["name"].Kind != lyra.Text {
		t.Fatalf("expected author.name to be a text leaf, got %v", schema["author"].Nested["name"])
	}
}

func TestBuildSchemaRejectsUnknownLeafType(t *testing.T) {
	_, err := buildSchema(map[string]any{"title": "paragraph"})
	if err == nil {
		t.Fatal("expected an error for an unknown leaf type")
	}
}

func TestBuildSchemaRejectsInvalidEntry(t *testing.T) {
	_, err := buildSchema(map[string]any{"title": 42})
	if err == nil {
		t.Fatal("expected an error for a non-string, non-object schema entry")
	}
}
