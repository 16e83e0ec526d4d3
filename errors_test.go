package lyra

import (
	"strings"
	"testing"
)

func TestErrorMessagesNameTheOffendingValue(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"language", &LanguageNotSupportedError{Language: "klingon"}, "klingon"},
		{"schema type", &InvalidSchemaTypeError{Path: "year", FoundType: "nope"}, "year"},
		{"doc schema", &InvalidDocSchemaError{Path: "title", Reason: "expected text"}, "title"},
		{"property", &InvalidPropertyError{Name: "bogus"}, "bogus"},
		{"query params", &InvalidQueryParamsError{Path: "year", Reason: "unknown field"}, "year"},
		{"doc id", &DocIDDoesNotExistError{ID: "abc123"}, "abc123"},
		{"index removal", &IndexRemovalFailureError{ID: "abc123", Field: "title", Token: "x"}, "abc123"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if msg := c.err.Error(); !strings.Contains(msg, c.want) {
				t.Errorf("Error() = %q, want it to contain %q", msg, c.want)
			}
		})
	}
}
