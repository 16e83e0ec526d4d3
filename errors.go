package lyra

import "fmt"

// Error kinds are structured types (spec §7), not bare string
// sentinels, so callers can errors.As them to recover the offending
// value.

// LanguageNotSupportedError is returned when a language passed to
// Create or overridden per-call is outside the tokenizer's enumerated
// set.
type LanguageNotSupportedError struct {
	Language string
}

func (e *LanguageNotSupportedError) Error() string {
	return fmt.Sprintf("lyra: language not supported: %q", e.Language)
}

// InvalidSchemaTypeError is returned by schema construction when a
// field is neither a nested object nor one of the three leaf types.
type InvalidSchemaTypeError struct {
	Path      string
	FoundType string
}

func (e *InvalidSchemaTypeError) Error() string {
	return fmt.Sprintf("lyra: invalid schema type at %q: %s", e.Path, e.FoundType)
}

// InvalidDocSchemaError is returned when a document passed to Insert
// violates the engine's schema.
type InvalidDocSchemaError struct {
	Path   string
	Reason string
}

func (e *InvalidDocSchemaError) Error() string {
	return fmt.Sprintf("lyra: document violates schema at %q: %s", e.Path, e.Reason)
}

// InvalidPropertyError is returned when a search names a text field
// unknown to the schema.
type InvalidPropertyError struct {
	Name  string
	Known []string
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("lyra: unknown search property %q (known: %v)", e.Name, e.Known)
}

// InvalidQueryParamsError is returned for a malformed `where` clause:
// a field not in the schema, the wrong leaf type, more than one
// comparison operator on a numeric field, or an operator outside the
// enumerated set.
type InvalidQueryParamsError struct {
	Path   string
	Reason string
}

func (e *InvalidQueryParamsError) Error() string {
	return fmt.Sprintf("lyra: invalid query parameters at %q: %s", e.Path, e.Reason)
}

// DocIDDoesNotExistError is returned by Delete when the id is unknown
// to the document table.
type DocIDDoesNotExistError struct {
	ID string
}

func (e *DocIDDoesNotExistError) Error() string {
	return fmt.Sprintf("lyra: document id does not exist: %q", e.ID)
}

// IndexRemovalFailureError is a fatal error (spec §7): the radix tree
// reported an inconsistency while removing a token during delete.
type IndexRemovalFailureError struct {
	ID    string
	Field string
	Token string
}

func (e *IndexRemovalFailureError) Error() string {
	return fmt.Sprintf("lyra: failed to remove token %q of field %q for document %q", e.Token, e.Field, e.ID)
}
