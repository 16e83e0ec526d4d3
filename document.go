package lyra

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// idEntropy/idEntropyLock generate the opaque document identifiers
// spec §3 calls for ("a unique opaque string id generated at
// insertion"). Grounded on the teacher's blueprints/chat/pkg/ulid/
// ulid.go New(), folded here rather than kept as a standalone
// generic-ulid package: the document table is the one place an id is
// ever minted, and nothing in this engine needs the teacher helper's
// NewAt/Time/IsValid (no feature parses a timestamp back out of an id
// or validates one that didn't come from ordinalOf's own lookup).
var (
	idEntropy     = ulid.Monotonic(rand.Reader, 0)
	idEntropyLock sync.Mutex
)

// newExternalID returns a new, lexically sortable, globally unique
// document id.
func newExternalID() string {
	idEntropyLock.Lock()
	defer idEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}

// storedDoc is one row of the document table (spec §3): the external
// id and the document value, kept verbatim so search hits can be
// reconstructed. language is the tokenization language used at
// insertion time; delete must re-tokenize text leaves with the same
// language or the token set won't match what was indexed.
type storedDoc struct {
	externalID string
	value      Document
	language   Language
}

// docTable maps the internal uint32 ordinals the posting sets are
// keyed by back to the stored document, and external ids to ordinals.
// It is mutated only by the writer lane (spec §3's lifecycle rule).
type docTable struct {
	byOrdinal map[uint32]storedDoc
	byID      map[string]uint32
	next      uint32
}

func newDocTable() *docTable {
	return &docTable{
		byOrdinal: make(map[uint32]storedDoc),
		byID:      make(map[string]uint32),
	}
}

func (t *docTable) put(externalID string, doc Document, language Language) uint32 {
	ordinal := t.next
	t.next++
	t.byOrdinal[ordinal] = storedDoc{externalID: externalID, value: doc, language: language}
	t.byID[externalID] = ordinal
	return ordinal
}

func (t *docTable) ordinalOf(externalID string) (uint32, bool) {
	ordinal, ok := t.byID[externalID]
	return ordinal, ok
}

func (t *docTable) get(ordinal uint32) (storedDoc, bool) {
	d, ok := t.byOrdinal[ordinal]
	return d, ok
}

func (t *docTable) delete(externalID string, ordinal uint32) {
	delete(t.byOrdinal, ordinal)
	delete(t.byID, externalID)
}
