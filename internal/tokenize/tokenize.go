// Package tokenize implements the pluggable tokenizer of spec §4.1:
// split a string into a set of normalized tokens for a given language.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball"
)

// Language is one of the enumerated languages the default tokenizer
// understands (spec §6: "a fixed enumerated set known to the
// tokenizer").
type Language string

const (
	English    Language = "english"
	French     Language = "french"
	German     Language = "german"
	Italian    Language = "italian"
	Portuguese Language = "portuguese"
	Spanish    Language = "spanish"
)

var known = map[Language]bool{
	English:    true,
	French:     true,
	German:     true,
	Italian:    true,
	Portuguese: true,
	Spanish:    true,
}

// Supported reports whether l is one of the enumerated languages.
func Supported(l Language) bool {
	return known[l]
}

// UnsupportedLanguageError is returned by Tokenize when asked to
// tokenize in a language outside Supported.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return "tokenize: language not supported: " + e.Language
}

// Tokenizer is the pluggable collaborator named in spec §1/§6
// (components.tokenizer). Output is a set: duplicates collapse and
// order is irrelevant.
type Tokenizer interface {
	Tokenize(text string, language Language) (map[string]struct{}, error)
}

// Default is the built-in Tokenizer: Unicode word-boundary splitting
// (UAX#29, via uax29/v2/words), lower-casing, stop-word removal and
// language-specific stemming (via kljensen/snowball).
type Default struct {
	// StopWords overrides the built-in per-language stop word lists.
	// A nil entry for a language falls back to the built-in list.
	StopWords map[Language]map[string]struct{}
}

// NewDefault returns the built-in Tokenizer with its standard
// stop-word lists.
func NewDefault() *Default {
	return &Default{}
}

func (d *Default) Tokenize(text string, language Language) (map[string]struct{}, error) {
	if !Supported(language) {
		return nil, &UnsupportedLanguageError{Language: string(language)}
	}
	stop := d.stopWordsFor(language)

	out := make(map[string]struct{})
	seg := words.NewSegmenter([]byte(text))
	for seg.Next() {
		raw := strings.ToLower(strings.TrimSpace(string(seg.Value())))
		if raw == "" || !hasWordRune(raw) {
			continue
		}
		if _, isStop := stop[raw]; isStop {
			continue
		}
		stemmed, err := snowball.Stem(raw, string(language), true)
		if err != nil || stemmed == "" {
			stemmed = raw
		}
		out[stemmed] = struct{}{}
	}
	return out, nil
}

func (d *Default) stopWordsFor(language Language) map[string]struct{} {
	if d.StopWords != nil {
		if sw, ok := d.StopWords[language]; ok && sw != nil {
			return sw
		}
	}
	return builtinStopWords[language]
}

// hasWordRune reports whether s contains at least one letter or digit,
// filtering out the punctuation/whitespace segments the UAX#29
// segmenter also yields.
func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// builtinStopWords are small, representative stop-word lists — kept
// intentionally short; callers needing a complete list supply their
// own via Default.StopWords or their own Tokenizer implementation
// (spec §1 treats full stop-word lists as an external collaborator).
var builtinStopWords = map[Language]map[string]struct{}{
	English: set("a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
		"to", "was", "were", "will", "with"),
	French: set("le", "la", "les", "un", "une", "des", "et", "de", "du",
		"en", "que", "qui", "dans", "pour", "sur", "est", "au", "aux"),
	German: set("der", "die", "das", "und", "ist", "ein", "eine", "den",
		"dem", "des", "mit", "auf", "für", "im", "von", "zu"),
	Italian: set("il", "lo", "la", "i", "gli", "le", "un", "uno", "una",
		"di", "che", "e", "per", "in", "con", "su", "è"),
	Portuguese: set("o", "a", "os", "as", "um", "uma", "de", "do", "da",
		"que", "e", "em", "para", "com", "por", "é"),
	Spanish: set("el", "la", "los", "las", "un", "una", "de", "que", "y",
		"en", "por", "para", "con", "es", "al", "del"),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
