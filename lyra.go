// Package lyra is an in-memory, typo-tolerant, full-text search engine
// over a user-declared document schema (spec §1). Callers declare a
// nested Schema, Insert Documents conforming to it, and Search with a
// free-text term plus structured filters over the numeric and boolean
// leaves.
package lyra

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	roaring "github.com/RoaringBitmap/roaring/v2"

	"github.com/go-mizu/blueprints/lyra/internal/boolindex"
	"github.com/go-mizu/blueprints/lyra/internal/numindex"
	"github.com/go-mizu/blueprints/lyra/internal/radixtext"
	"github.com/go-mizu/blueprints/lyra/internal/tokenize"
	"github.com/go-mizu/blueprints/lyra/internal/writequeue"
)

// Language names one of the tokenizer's enumerated languages (spec
// §6). The canonical set lives in internal/tokenize; this is a type
// alias so callers never need to import the internal package.
type Language = tokenize.Language

// The enumerated, supported languages (spec §6: "a fixed enumerated
// set known to the tokenizer; the default is English").
const (
	English    = tokenize.English
	French     = tokenize.French
	German     = tokenize.German
	Italian    = tokenize.Italian
	Portuguese = tokenize.Portuguese
	Spanish    = tokenize.Spanish
)

// Tokenizer is the pluggable collaborator of spec §4.1
// (components.tokenizer in the configuration).
type Tokenizer = tokenize.Tokenizer

// Configuration is the argument to Create (spec §6).
type Configuration struct {
	// Schema is required: the nested field declaration every
	// inserted Document is checked against.
	Schema Schema

	// DefaultLanguage is used for tokenization whenever Insert or
	// Search is not given a per-call override. Zero value => English.
	DefaultLanguage Language

	// Edge mirrors the source configuration's "edge" flag. It is
	// reserved for forward compatibility with edge-deployment
	// variants of the engine; the in-memory core does not change
	// behavior based on it.
	Edge bool

	// Hooks is an opaque, caller-owned value (spec §1: hook/plugin
	// dispatch is an external collaborator, out of scope for this
	// core). The engine never reads or calls it.
	Hooks any

	// Tokenizer overrides the default tokenizer
	// (components.tokenizer). Nil uses tokenize.NewDefault().
	Tokenizer Tokenizer

	// IntersectTokenScores mirrors
	// components.algorithms.intersectTokenScores from the source
	// configuration. It is reserved for a future ranking component
	// (spec §9: "ranking data ... may be omitted until a ranking
	// component is specified") and is never invoked by this core.
	IntersectTokenScores any

	// Logger receives writer-lane diagnostics. The zero value is a
	// disabled logger (zerolog.Nop()).
	Logger zerolog.Logger

	// WriteQueueBuffer bounds how many accepted-but-unapplied writes
	// may queue before Insert/Delete block. <= 0 uses a default of 64.
	WriteQueueBuffer int
}

// Engine is a constructed search engine: schema-derived indices, a
// document table, and the serialized writer lane that mutates them
// (spec §3, §4.5).
type Engine struct {
	// mu is the single write lock spec §9's re-architecture guidance
	// calls out directly ("a single write lock whose critical section
	// is the per-index mutation"): the writer holds it exclusively
	// while applying a mutation; Search and Frequencies hold it for
	// reading, so a reader never observes a torn radix-tree edge
	// split or a torn posting-set update.
	mu sync.RWMutex

	schema Schema

	textPaths []string
	numPaths  map[string]bool
	boolPaths map[string]bool

	textIndex map[string]*radixtext.Tree
	numIndex  map[string]*numindex.Index
	boolIndex map[string]*boolindex.Index

	docs    *docTable
	allIDs  *roaring.Bitmap
	tokenFreq map[string]map[string]map[uint32]int // path -> token -> ordinal -> count (§3, reserved)
	globalFreq map[string]map[string]int            // path -> token -> count (§3, reserved)

	tokenizer       Tokenizer
	defaultLanguage Language
	logger          zerolog.Logger

	queue *writequeue.Queue
}

// Create builds a new Engine from configuration (spec §6). The schema
// is walked once, up front, and is fixed for the engine's lifetime
// (spec §1 Non-goal: no schema evolution after construction).
func Create(cfg Configuration) (*Engine, error) {
	if cfg.Schema == nil {
		return nil, &InvalidSchemaTypeError{Path: "", FoundType: "nil schema"}
	}
	built, err := buildIndices(cfg.Schema)
	if err != nil {
		return nil, err
	}

	defaultLanguage := cfg.DefaultLanguage
	if defaultLanguage == "" {
		defaultLanguage = English
	}
	if !tokenize.Supported(defaultLanguage) {
		return nil, &LanguageNotSupportedError{Language: string(defaultLanguage)}
	}

	tok := cfg.Tokenizer
	if tok == nil {
		tok = tokenize.NewDefault()
	}

	buffer := cfg.WriteQueueBuffer
	if buffer <= 0 {
		buffer = 64
	}

	e := &Engine{
		schema:          cfg.Schema,
		textPaths:       built.textPaths,
		numPaths:        toSet(built.numPaths),
		boolPaths:       toSet(built.boolPaths),
		textIndex:       make(map[string]*radixtext.Tree, len(built.textPaths)),
		numIndex:        make(map[string]*numindex.Index, len(built.numPaths)),
		boolIndex:       make(map[string]*boolindex.Index, len(built.boolPaths)),
		docs:            newDocTable(),
		allIDs:          roaring.New(),
		tokenFreq:       make(map[string]map[string]map[uint32]int),
		globalFreq:      make(map[string]map[string]int),
		tokenizer:       tok,
		defaultLanguage: defaultLanguage,
		logger:          cfg.Logger,
		queue:           writequeue.Start(context.Background(), buffer),
	}
	for _, p := range built.textPaths {
		e.textIndex[p] = radixtext.New()
	}
	for _, p := range built.numPaths {
		e.numIndex[p] = numindex.New()
	}
	for _, p := range built.boolPaths {
		e.boolIndex[p] = boolindex.New()
	}
	return e, nil
}

// Close stops the writer lane, waiting for already-accepted writes to
// finish applying.
func (e *Engine) Close() error {
	return e.queue.Close()
}

// InsertResult is the return value of Insert (spec §6: "insert(doc,
// language?) → {id}").
type InsertResult struct {
	ID string
}

// Insert validates doc against the schema synchronously, assigns it an
// id, and enqueues it onto the writer lane. Per spec §5, Insert
// returns as soon as the item is accepted — it does not wait for the
// writer to apply it.
func (e *Engine) Insert(doc Document, language ...Language) (InsertResult, error) {
	lang := e.resolveLanguage(language)
	if !tokenize.Supported(lang) {
		return InsertResult{}, &LanguageNotSupportedError{Language: string(lang)}
	}
	if err := validateDocument(doc, e.schema, ""); err != nil {
		return InsertResult{}, err
	}

	id := newExternalID()
	e.queue.Submit(func() error {
		err := e.applyInsert(id, doc, lang)
		if err != nil {
			e.logger.Warn().Err(err).Str("id", id).Msg("lyra: insert failed")
		}
		return err
	})
	e.logger.Debug().Str("id", id).Msg("lyra: insert accepted")
	return InsertResult{ID: id}, nil
}

// Delete removes a document by id (spec §4.7). It runs on the writer
// lane and, unlike Insert, suspends until application completes, so a
// subsequent Search is guaranteed not to see id.
func (e *Engine) Delete(id string) error {
	e.mu.RLock()
	ordinal, ok := e.docs.ordinalOf(id)
	e.mu.RUnlock()
	if !ok {
		return &DocIDDoesNotExistError{ID: id}
	}

	done := e.queue.Submit(func() error {
		return e.applyDelete(id, ordinal)
	})
	return <-done
}

// Flush blocks until every write accepted before this call has been
// applied. Insert does not wait for application (spec §5), so a
// caller that needs a subsequent Search to observe a just-inserted
// document — a batch loader, or a test — should Flush first.
func (e *Engine) Flush() error {
	done := e.queue.Submit(func() error { return nil })
	return <-done
}

// Search executes params against the engine (spec §4.6, §6).
func (e *Engine) Search(params SearchParams, language ...Language) (SearchResult, error) {
	lang := e.resolveLanguage(language)
	if !tokenize.Supported(lang) {
		return SearchResult{}, &LanguageNotSupportedError{Language: string(lang)}
	}
	return e.runSearch(params, lang)
}

// Frequencies returns the recorded per-document token count for token
// at the given text path (spec §3: "reserved for ranking; not
// required for correctness of this core"). It is never consulted by
// Search.
func (e *Engine) Frequencies(path, token, docID string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ordinal, ok := e.docs.ordinalOf(docID)
	if !ok {
		return 0, false
	}
	byToken, ok := e.tokenFreq[path]
	if !ok {
		return 0, false
	}
	byDoc, ok := byToken[token]
	if !ok {
		return 0, false
	}
	n, ok := byDoc[ordinal]
	return n, ok
}

func (e *Engine) resolveLanguage(override []Language) Language {
	if len(override) > 0 && override[0] != "" {
		return override[0]
	}
	return e.defaultLanguage
}

// applyInsert is the writer-lane mutation Insert enqueues. It holds
// the write lock for the duration of the mutation (spec §9's single
// write lock guidance).
func (e *Engine) applyInsert(id string, doc Document, language Language) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ordinal := e.docs.put(id, doc, language)
	e.allIDs.Add(ordinal)

	var leaves []leafValue
	collectLeaves(doc, e.schema, "", &leaves)

	for _, lv := range leaves {
		switch lv.kind {
		case Text:
			text, _ := lv.value.(string)
			tokens, err := e.tokenizer.Tokenize(text, language)
			if err != nil {
				return fmt.Errorf("lyra: tokenize field %q: %w", lv.path, err)
			}
			tree := e.textIndex[lv.path]
			for tok := range tokens {
				tree.Insert(tok, ordinal)
				e.bumpFrequency(lv.path, tok, ordinal)
			}
		case Number:
			e.numIndex[lv.path].Insert(toFloat(lv.value), ordinal)
		case Boolean:
			b, _ := lv.value.(bool)
			e.boolIndex[lv.path].Insert(b, ordinal)
		}
	}
	e.logger.Debug().Str("id", id).Msg("lyra: insert applied")
	return nil
}

// applyDelete is the writer-lane mutation Delete enqueues.
func (e *Engine) applyDelete(id string, ordinal uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.docs.get(ordinal)
	if !ok {
		return &DocIDDoesNotExistError{ID: id}
	}

	var leaves []leafValue
	collectLeaves(stored.value, e.schema, "", &leaves)

	for _, lv := range leaves {
		switch lv.kind {
		case Text:
			text, _ := lv.value.(string)
			tokens, err := e.tokenizer.Tokenize(text, stored.language)
			if err != nil {
				return fmt.Errorf("lyra: tokenize field %q: %w", lv.path, err)
			}
			tree := e.textIndex[lv.path]
			for tok := range tokens {
				if !tree.Remove(tok, ordinal) {
					e.logger.Warn().Str("id", id).Str("field", lv.path).Str("token", tok).
						Msg("lyra: index removal failure")
					return &IndexRemovalFailureError{ID: id, Field: lv.path, Token: tok}
				}
				e.dropFrequency(lv.path, tok, ordinal)
			}
		case Number:
			e.numIndex[lv.path].Remove(toFloat(lv.value), ordinal)
		case Boolean:
			b, _ := lv.value.(bool)
			e.boolIndex[lv.path].Remove(b, ordinal)
		}
	}

	e.docs.delete(id, ordinal)
	e.allIDs.Remove(ordinal)
	e.logger.Debug().Str("id", id).Msg("lyra: delete applied")
	return nil
}

func (e *Engine) bumpFrequency(path, token string, ordinal uint32) {
	byToken, ok := e.tokenFreq[path]
	if !ok {
		byToken = make(map[string]map[uint32]int)
		e.tokenFreq[path] = byToken
	}
	byDoc, ok := byToken[token]
	if !ok {
		byDoc = make(map[uint32]int)
		byToken[token] = byDoc
	}
	byDoc[ordinal]++

	if e.globalFreq[path] == nil {
		e.globalFreq[path] = make(map[string]int)
	}
	e.globalFreq[path][token]++
}

func (e *Engine) dropFrequency(path, token string, ordinal uint32) {
	byToken, ok := e.tokenFreq[path]
	if !ok {
		return
	}
	byDoc, ok := byToken[token]
	if !ok {
		return
	}
	delete(byDoc, ordinal)
	if len(byDoc) == 0 {
		delete(byToken, token)
	}
	if n := e.globalFreq[path][token]; n <= 1 {
		delete(e.globalFreq[path], token)
	} else {
		e.globalFreq[path][token] = n - 1
	}
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, i := range items {
		out[i] = true
	}
	return out
}
