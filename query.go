package lyra

import (
	"strings"
	"time"

	roaring "github.com/RoaringBitmap/roaring/v2"

	"github.com/go-mizu/blueprints/lyra/internal/numindex"
	"github.com/go-mizu/blueprints/lyra/internal/radixtext"
)

// Where is a structured filter clause (spec §4.6, §6). At a boolean
// leaf its value is a bool; at a numeric leaf its value is a
// single-key map naming one of the five comparison operators ("<",
// "<=", "=", ">", ">="); at a nested object its value is another
// Where. Text leaves cannot be filtered — use Term/Properties.
type Where map[string]any

// Lt, Lte, Eq, Gt and Gte build the single-operator value a numeric
// Where leaf expects, e.g. Where{"year": Lt(2000)}.
func Lt(v float64) map[string]any  { return map[string]any{"<": v} }
func Lte(v float64) map[string]any { return map[string]any{"<=": v} }
func Eq(v float64) map[string]any  { return map[string]any{"=": v} }
func Gt(v float64) map[string]any  { return map[string]any{">": v} }
func Gte(v float64) map[string]any { return map[string]any{">=": v} }

// SearchParams is the input to Search (spec §6).
type SearchParams struct {
	// Term is the free-text query. Empty means "match every document
	// allowed by Where" (see runSearch).
	Term string

	// Properties restricts which text paths Term is matched against.
	// Empty, or ["*"], means every text path in the schema.
	Properties []string

	// Limit bounds how many hits are returned. <= 0 uses a default of
	// 10 (spec §6's default page size).
	Limit int

	// Offset skips this many matches, globally, before collecting hits.
	Offset int

	// Exact requires whole-token matches instead of prefix matching.
	Exact bool

	// Tolerance, when > 0, enables bounded edit-distance matching
	// instead of prefix matching (ignored when Exact is set).
	Tolerance int

	// Where narrows the result to documents whose numeric/boolean
	// leaves satisfy the given constraints (spec §4.6).
	Where Where
}

// Hit is one result row: the external id paired with the stored
// document.
type Hit struct {
	ID       string
	Document Document
}

// SearchResult is Search's return value (spec §6: "{count, hits,
// elapsed}"). Count is the true number of matching documents — it is
// not capped by Limit (see DESIGN.md's Open Question #1).
type SearchResult struct {
	Count   int
	Hits    []Hit
	Elapsed string
}

type boolLookup struct {
	path  string
	value bool
}

type numLookup struct {
	path     string
	operator numindex.Operator
	target   float64
}

// runSearch implements the planning algorithm of spec §4.6.
func (e *Engine) runSearch(params SearchParams, language Language) (SearchResult, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	paths, err := e.resolveTextPaths(params.Properties)
	if err != nil {
		return SearchResult{}, err
	}

	boolLookups, numLookups, err := normalizeWhere(params.Where, e.schema, "")
	if err != nil {
		return SearchResult{}, err
	}

	filterSet, constrained := e.computeFilterSet(boolLookups, numLookups)

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	emitted := roaring.New()
	var hitOrdinals []uint32
	totalCount := 0
	skipped := 0

	// process folds one candidate set (already restricted to one
	// token×path pair, or — for an empty term — the whole universe)
	// into the running result: intersect with the filter set,
	// subtract ids already emitted by an earlier pair, add the
	// remainder's size to the running total, then stream surviving
	// ids out (after skipping the first `offset` globally) until
	// `limit` hits have been collected.
	process := func(candidates *roaring.Bitmap) {
		if constrained {
			candidates.And(filterSet)
		}
		candidates.AndNot(emitted)
		totalCount += int(candidates.GetCardinality())
		emitted.Or(candidates)

		if len(hitOrdinals) >= limit {
			return
		}
		it := candidates.Iterator()
		for it.HasNext() {
			id := it.Next()
			if skipped < offset {
				skipped++
				continue
			}
			if len(hitOrdinals) >= limit {
				break
			}
			hitOrdinals = append(hitOrdinals, id)
		}
	}

	if strings.TrimSpace(params.Term) == "" {
		var universe *roaring.Bitmap
		if constrained {
			universe = filterSet.Clone()
		} else {
			universe = e.allIDs.Clone()
		}
		process(universe)
	} else {
		tokens, err := e.tokenizer.Tokenize(params.Term, language)
		if err != nil {
			return SearchResult{}, err
		}
		for token := range tokens {
			for _, path := range paths {
				tree := e.textIndex[path]
				matches := tree.Find(radixtext.Params{
					Term:      token,
					Exact:     params.Exact,
					Tolerance: params.Tolerance,
				})
				candidates := roaring.New()
				for _, ids := range matches {
					candidates.Or(ids)
				}
				process(candidates)
			}
		}
	}

	hits := make([]Hit, 0, len(hitOrdinals))
	for _, ordinal := range hitOrdinals {
		stored, ok := e.docs.get(ordinal)
		if !ok {
			continue
		}
		hits = append(hits, Hit{ID: stored.externalID, Document: stored.value})
	}

	return SearchResult{
		Count:   totalCount,
		Hits:    hits,
		Elapsed: time.Since(start).String(),
	}, nil
}

func (e *Engine) resolveTextPaths(properties []string) ([]string, error) {
	if len(properties) == 0 || (len(properties) == 1 && properties[0] == "*") {
		return e.textPaths, nil
	}
	known := make(map[string]bool, len(e.textPaths))
	for _, p := range e.textPaths {
		known[p] = true
	}
	for _, p := range properties {
		if !known[p] {
			return nil, &InvalidPropertyError{Name: p, Known: e.textPaths}
		}
	}
	return properties, nil
}

// computeFilterSet implements the F of spec §4.6: the intersection of
// the union of every boolean lookup's posting set and the union of
// every numeric lookup's posting set. An empty bag contributes "no
// constraint" — the sentinel — rather than the empty set; if both
// bags are empty the whole filter is unconstrained.
func (e *Engine) computeFilterSet(boolLookups []boolLookup, numLookups []numLookup) (filterSet *roaring.Bitmap, constrained bool) {
	var boolUnion *roaring.Bitmap
	if len(boolLookups) > 0 {
		boolUnion = roaring.New()
		for _, bl := range boolLookups {
			boolUnion.Or(e.boolIndex[bl.path].Query(bl.value))
		}
	}

	var numUnion *roaring.Bitmap
	if len(numLookups) > 0 {
		numUnion = roaring.New()
		for _, nl := range numLookups {
			numUnion.Or(e.numIndex[nl.path].Query(nl.operator, nl.target))
		}
	}

	switch {
	case boolUnion == nil && numUnion == nil:
		return nil, false
	case boolUnion == nil:
		return numUnion, true
	case numUnion == nil:
		return boolUnion, true
	default:
		result := boolUnion.Clone()
		result.And(numUnion)
		return result, true
	}
}

// normalizeWhere walks a Where clause against schema, producing the
// two flat bags spec §4.6 describes, rejecting anything malformed
// with InvalidQueryParamsError: an unknown field, a text-leaf filter,
// a non-bool value at a boolean leaf, or a numeric leaf whose value
// isn't a single-key comparison-operator map.
func normalizeWhere(where Where, schema Schema, prefix string) ([]boolLookup, []numLookup, error) {
	var bools []boolLookup
	var nums []numLookup

	for key, raw := range where {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		field, known := schema[key]
		if !known {
			return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "unknown field"}
		}

		if field.Nested != nil {
			nestedWhere, ok := asWhere(raw)
			if !ok {
				return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "expected nested filter object"}
			}
			nb, nn, err := normalizeWhere(nestedWhere, field.Nested, path)
			if err != nil {
				return nil, nil, err
			}
			bools = append(bools, nb...)
			nums = append(nums, nn...)
			continue
		}

		switch field.Kind {
		case Boolean:
			b, ok := raw.(bool)
			if !ok {
				return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "expected a boolean value"}
			}
			bools = append(bools, boolLookup{path: path, value: b})

		case Number:
			ops, ok := rawAsOpMap(raw)
			if !ok {
				return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "expected a single comparison operator"}
			}
			if len(ops) != 1 {
				return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "exactly one comparison operator is required"}
			}
			for opStr, target := range ops {
				op, ok := parseOperator(opStr)
				if !ok {
					return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "unknown operator " + opStr}
				}
				nums = append(nums, numLookup{path: path, operator: op, target: target})
			}

		case Text:
			return nil, nil, &InvalidQueryParamsError{Path: path, Reason: "text fields cannot be filtered with where"}
		}
	}

	return bools, nums, nil
}

func asWhere(raw any) (Where, bool) {
	switch m := raw.(type) {
	case Where:
		return m, true
	case map[string]any:
		return Where(m), true
	default:
		return nil, false
	}
}

func rawAsOpMap(raw any) (map[string]float64, bool) {
	switch m := raw.(type) {
	case map[string]float64:
		return m, true
	case map[string]any:
		out := make(map[string]float64, len(m))
		for k, v := range m {
			f, ok := toFloatOK(v)
			if !ok {
				return nil, false
			}
			out[k] = f
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloatOK(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func parseOperator(s string) (numindex.Operator, bool) {
	switch s {
	case "<":
		return numindex.LT, true
	case "<=":
		return numindex.LTE, true
	case "=":
		return numindex.EQ, true
	case ">":
		return numindex.GT, true
	case ">=":
		return numindex.GTE, true
	default:
		return 0, false
	}
}
