// Package document holds the ordered set of open documents and the pointer to
// the active one.
//
// The Store is owned by the bubbletea model and is only touched from Update,
// so it carries no locks. Operations addressed to unknown ids are no-ops that
// report false; the store never errors.
package document

import (
	"slices"
	"strconv"
)

// BootstrapID is the id of the document every store starts with.
const BootstrapID = "welcome"

// Document is one editable unit of text.
type Document struct {
	ID      string
	Title   string
	Content string
}

// Store is an ordered collection of documents with one active document.
// It always holds at least one document.
type Store struct {
	gen      IDGenerator
	docs     []Document
	activeID string
	created  int
}

// Option configures a Store.
type Option func(*Store)

// WithBootstrap replaces the default initial document.
func WithBootstrap(id, title, content string) Option {
	return func(s *Store) {
		s.docs[0] = Document{ID: id, Title: title, Content: content}
		s.activeID = id
	}
}

// New creates a store holding the bootstrap document.
// A nil generator falls back to UUIDGenerator.
func New(gen IDGenerator, opts ...Option) *Store {
	if gen == nil {
		gen = UUIDGenerator{}
	}
	s := &Store{gen: gen, created: 1}
	s.docs = []Document{{ID: BootstrapID, Title: untitled(1)}}
	s.activeID = BootstrapID
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func untitled(n int) string {
	return "Untitled " + strconv.Itoa(n)
}

// Create appends a document, makes it active and returns its id.
// An empty titleHint yields the next "Untitled N" placeholder.
func (s *Store) Create(content, titleHint string) string {
	s.created++
	id := s.gen.NextID()

	title := titleHint
	if title == "" {
		title = untitled(s.created)
	}

	s.docs = append(s.docs, Document{ID: id, Title: title, Content: content})
	s.activeID = id
	return id
}

// Update replaces the content of a document.
func (s *Store) Update(id, content string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.docs[i].Content = content
	return true
}

// Rename sets the title of a document. Empty titles are refused.
func (s *Store) Rename(id, title string) bool {
	i := s.Index(id)
	if i < 0 || title == "" {
		return false
	}
	s.docs[i].Title = title
	return true
}

// Remove closes a document. The last remaining document cannot be removed.
// When the active document is removed, the document that slid into its slot
// becomes active, or the new last one if it was last.
func (s *Store) Remove(id string) bool {
	if len(s.docs) <= 1 {
		return false
	}
	i := s.Index(id)
	if i < 0 {
		return false
	}

	s.docs = slices.Delete(s.docs, i, i+1)
	if s.activeID == id {
		s.activeID = s.docs[min(i, len(s.docs)-1)].ID
	}
	return true
}

// SwitchActive makes id the active document.
func (s *Store) SwitchActive(id string) bool {
	if s.Index(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

// Next activates the document after the active one, wrapping around.
func (s *Store) Next() string {
	return s.step(1)
}

// Prev activates the document before the active one, wrapping around.
func (s *Store) Prev() string {
	return s.step(-1)
}

func (s *Store) step(delta int) string {
	i := max(s.Index(s.activeID), 0)
	n := len(s.docs)
	s.activeID = s.docs[((i+delta)%n+n)%n].ID
	return s.activeID
}

// Active returns the active document, falling back to the first document if
// the active pointer is stale.
func (s *Store) Active() Document {
	if i := s.Index(s.activeID); i >= 0 {
		return s.docs[i]
	}
	return s.docs[0]
}

// ActiveID returns the id of the active document.
func (s *Store) ActiveID() string {
	return s.Active().ID
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (Document, bool) {
	i := s.Index(id)
	if i < 0 {
		return Document{}, false
	}
	return s.docs[i], true
}

// Index returns the tab position of id, or -1.
func (s *Store) Index(id string) int {
	return slices.IndexFunc(s.docs, func(d Document) bool { return d.ID == id })
}

// Documents returns a copy of the documents in tab order.
func (s *Store) Documents() []Document {
	return slices.Clone(s.docs)
}

// IDs returns the document ids in tab order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.docs))
	for i, d := range s.docs {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	return len(s.docs)
}
