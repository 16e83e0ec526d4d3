package tokenize

import (
	"errors"
	"testing"
)

func TestDefaultTokenizeLowercasesAndSplits(t *testing.T) {
	d := NewDefault()
	tokens, err := d.Tokenize("The Quick Brown Fox", English)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for _, want := range []string{"quick", "brown", "fox"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("expected token %q in %v", want, tokens)
		}
	}
	if _, ok := tokens["the"]; ok {
		t.Errorf("expected stop word \"the\" to be removed, got %v", tokens)
	}
}

func TestDefaultTokenizeStems(t *testing.T) {
	d := NewDefault()
	tokens, err := d.Tokenize("running runner runs", English)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("expected at least one stemmed token")
	}
}

func TestDefaultTokenizeUnsupportedLanguage(t *testing.T) {
	d := NewDefault()
	_, err := d.Tokenize("hello", Language("klingon"))
	if err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
	var target *UnsupportedLanguageError
	if !errors.As(err, &target) {
		t.Fatalf("expected *UnsupportedLanguageError, got %T", err)
	}
}

func TestSupported(t *testing.T) {
	for _, lang := range []Language{English, French, German, Italian, Portuguese, Spanish} {
		if !Supported(lang) {
			t.Errorf("expected %q to be supported", lang)
		}
	}
	if Supported(Language("esperanto")) {
		t.Error("expected \"esperanto\" to be unsupported")
	}
}

func TestCustomStopWords(t *testing.T) {
	d := &Default{StopWords: map[Language]map[string]struct{}{
		English: {"fox": {}},
	}}
	tokens, err := d.Tokenize("the quick fox", English)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if _, ok := tokens["fox"]; ok {
		t.Errorf("expected custom stop word \"fox\" to be removed, got %v", tokens)
	}
}
