package lyra

import (
	"fmt"
	"math"
	"strings"
)

// Kind is a schema leaf's type (spec §3: "one of {text, number,
// boolean}").
type Kind int

const (
	// Text marks a leaf indexed by the radix tree.
	Text Kind = iota
	// Number marks a leaf indexed by the numeric index.
	Number
	// Boolean marks a leaf indexed by the boolean index.
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Field is one node of a Schema: either a leaf (Nested == nil, Kind
// meaningful) or a nested object (Nested != nil, Kind ignored).
type Field struct {
	Kind   Kind
	Nested Schema
}

// Schema is the recursive, user-declared document shape of spec §3.
// Construct it with the TextField/NumberField/BooleanField/ObjectField
// helpers, e.g.:
//
//	lyra.Schema{
//	    "title": lyra.TextField(),
//	    "year":  lyra.NumberField(),
//	    "author": lyra.ObjectField(lyra.Schema{
//	        "name": lyra.TextField(),
//	    }),
//	}
type Schema map[string]Field

// TextField declares a text leaf.
func TextField() Field { return Field{Kind: Text} }

// NumberField declares a numeric leaf.
func NumberField() Field { return Field{Kind: Number} }

// BooleanField declares a boolean leaf.
func BooleanField() Field { return Field{Kind: Boolean} }

// ObjectField declares a nested object whose own fields are sub.
func ObjectField(sub Schema) Field { return Field{Nested: sub} }

// Document is a value meant to conform to a Schema (spec §3). Leaf
// values must be string (text), float64 or int (number) or bool (boolean);
// nested objects are map[string]any.
type Document map[string]any

// builtIndices holds, per flat path, the set of known paths of each
// leaf kind — the schema walker's output (spec §4.4's build_indices).
type builtIndices struct {
	textPaths []string
	numPaths  []string
	boolPaths []string
}

// buildIndices performs the depth-first schema walk of spec §4.4,
// collecting the flat path of every leaf. It fails with
// InvalidSchemaTypeError if a field name is empty or a leaf/nested
// value is malformed.
func buildIndices(schema Schema) (*builtIndices, error) {
	out := &builtIndices{}
	if err := walkSchema(schema, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func walkSchema(schema Schema, prefix string, out *builtIndices) error {
	for name, field := range schema {
		if name == "" {
			return &InvalidSchemaTypeError{Path: prefix, FoundType: "empty field name"}
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if field.Nested != nil {
			if err := walkSchema(field.Nested, path, out); err != nil {
				return err
			}
			continue
		}
		switch field.Kind {
		case Text:
			out.textPaths = append(out.textPaths, path)
		case Number:
			out.numPaths = append(out.numPaths, path)
		case Boolean:
			out.boolPaths = append(out.boolPaths, path)
		default:
			return &InvalidSchemaTypeError{Path: path, FoundType: fmt.Sprintf("%v", field.Kind)}
		}
	}
	return nil
}

// validateDocument implements spec §4.4's validate_document: every
// key present in doc must exist in schema, leaf types must match, and
// nested objects recurse. Unlike the source this core is grounded on
// (see DESIGN.md's Open Question #2), a nested validation failure
// always propagates — there is no silent partial acceptance.
func validateDocument(doc Document, schema Schema, prefix string) error {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		field, known := schema[key]
		if !known {
			return &InvalidDocSchemaError{Path: path, Reason: "unknown field"}
		}
		if field.Nested != nil {
			nestedDoc, ok := value.(Document)
			if !ok {
				if m, ok2 := value.(map[string]any); ok2 {
					nestedDoc = Document(m)
				} else {
					return &InvalidDocSchemaError{Path: path, Reason: "expected nested object"}
				}
			}
			if err := validateDocument(nestedDoc, field.Nested, path); err != nil {
				return err
			}
			continue
		}
		if err := validateLeaf(path, field.Kind, value); err != nil {
			return err
		}
	}
	return nil
}

func validateLeaf(path string, kind Kind, value any) error {
	switch kind {
	case Text:
		if _, ok := value.(string); !ok {
			return &InvalidDocSchemaError{Path: path, Reason: "expected text"}
		}
	case Number:
		n, ok := value.(float64)
		if !ok {
			if i, ok2 := value.(int); ok2 {
				n = float64(i)
				ok = true
			}
		}
		if !ok {
			return &InvalidDocSchemaError{Path: path, Reason: "expected number"}
		}
		if isNonFinite(n) {
			return &InvalidDocSchemaError{Path: path, Reason: "non-finite number"}
		}
	case Boolean:
		if _, ok := value.(bool); !ok {
			return &InvalidDocSchemaError{Path: path, Reason: "expected boolean"}
		}
	default:
		return &InvalidDocSchemaError{Path: path, Reason: "unknown leaf kind"}
	}
	return nil
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// leafAt resolves the value stored at a dotted flat path within doc,
// descending through nested objects.
func leafAt(doc Document, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = doc
	for _, p := range parts {
		m, ok := asDocument(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[p]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func asDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	default:
		return nil, false
	}
}

// leafValue is one flattened (path, kind, value) triple produced by
// collectLeaves, used to drive per-field indexing on insert/delete.
type leafValue struct {
	path  string
	kind  Kind
	value any
}

// collectLeaves walks doc against schema's fields (in Go map iteration
// order, which is not fixed), emitting a leafValue for every leaf
// present in doc. Fields declared in the
// schema but absent from doc are skipped — documents may be partial.
// The caller is assumed to have already validated doc against schema.
func collectLeaves(doc Document, schema Schema, prefix string, out *[]leafValue) {
	for name, field := range schema {
		value, present := doc[name]
		if !present {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if field.Nested != nil {
			nested, ok := asDocument(value)
			if !ok {
				continue
			}
			collectLeaves(nested, field.Nested, path, out)
			continue
		}
		*out = append(*out, leafValue{path: path, kind: field.Kind, value: value})
	}
}

// toFloat coerces an already-validated numeric leaf value (float64 or
// int) to float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
