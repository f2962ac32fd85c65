package document

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

func newTestStore() *Store {
	return New(&CounterGenerator{})
}

func TestNewStoreBootstrap(t *testing.T) {
	s := newTestStore()

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.ActiveID() != BootstrapID {
		t.Errorf("ActiveID = %q, want %q", s.ActiveID(), BootstrapID)
	}
	if got := s.Active().Title; got != "Untitled 1" {
		t.Errorf("bootstrap title = %q, want %q", got, "Untitled 1")
	}
}

func TestWithBootstrap(t *testing.T) {
	s := New(nil, WithBootstrap("intro", "Intro", "# hi"))
	doc := s.Active()
	if doc.ID != "intro" || doc.Title != "Intro" || doc.Content != "# hi" {
		t.Errorf("unexpected bootstrap document: %+v", doc)
	}
}

func TestCreate(t *testing.T) {
	s := newTestStore()

	id := s.Create("body", "")
	if s.ActiveID() != id {
		t.Errorf("created document is not active")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	doc, ok := s.Get(id)
	if !ok {
		t.Fatal("created document not found")
	}
	if doc.Title != "Untitled 2" {
		t.Errorf("Title = %q, want %q", doc.Title, "Untitled 2")
	}
	if doc.Content != "body" {
		t.Errorf("Content = %q, want %q", doc.Content, "body")
	}

	named := s.Create("", "notes")
	if doc, _ := s.Get(named); doc.Title != "notes" {
		t.Errorf("Title = %q, want %q", doc.Title, "notes")
	}
}

func TestCreateIDsAreUnique(t *testing.T) {
	for name, gen := range map[string]IDGenerator{
		"counter": &CounterGenerator{Now: func() time.Time { return time.Unix(0, 0) }},
		"uuid":    UUIDGenerator{},
	} {
		t.Run(name, func(t *testing.T) {
			s := New(gen)
			seen := map[string]bool{BootstrapID: true}
			for range 200 {
				id := s.Create("", "")
				if seen[id] {
					t.Fatalf("duplicate id %q", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestCounterGeneratorsAreIndependent(t *testing.T) {
	fixed := func() time.Time { return time.Unix(1, 0) }
	a := &CounterGenerator{Now: fixed}
	b := &CounterGenerator{Now: fixed}

	a.NextID()
	a.NextID()
	if got := b.NextID(); !strings.HasSuffix(got, "-1") {
		t.Errorf("second generator shares state with the first: %q", got)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore()

	if !s.Update(BootstrapID, "new") {
		t.Fatal("Update on existing id returned false")
	}
	if s.Active().Content != "new" {
		t.Errorf("Content = %q, want %q", s.Active().Content, "new")
	}
	if s.Update("missing", "x") {
		t.Error("Update on missing id returned true")
	}
}

func TestRename(t *testing.T) {
	s := newTestStore()
	if !s.Rename(BootstrapID, "Readme") {
		t.Fatal("Rename returned false")
	}
	if s.Active().Title != "Readme" {
		t.Errorf("Title = %q", s.Active().Title)
	}
	if s.Rename(BootstrapID, "") || s.Rename("missing", "x") {
		t.Error("Rename accepted an empty title or missing id")
	}
}

func TestRemoveLastDocumentRefused(t *testing.T) {
	s := newTestStore()
	if s.Remove(BootstrapID) {
		t.Error("removed the last document")
	}
	if s.Len() != 1 || s.ActiveID() != BootstrapID {
		t.Error("state changed after refused removal")
	}
}

func TestRemoveActiveSelection(t *testing.T) {
	tests := []struct {
		name       string
		tabs       int
		activeIdx  int
		removeIdx  int
		wantActive int // index into the tab order before removal
	}{
		{"middle active picks right neighbour", 4, 1, 1, 2},
		{"first active picks new first", 3, 0, 0, 1},
		{"last active picks new last", 3, 2, 2, 1},
		{"two tabs remove last", 2, 1, 1, 0},
		{"inactive removal keeps active", 4, 3, 0, 3},
		{"inactive removal after active", 4, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			ids := []string{BootstrapID}
			for i := 1; i < tt.tabs; i++ {
				ids = append(ids, s.Create("", ""))
			}
			s.SwitchActive(ids[tt.activeIdx])

			if !s.Remove(ids[tt.removeIdx]) {
				t.Fatal("Remove returned false")
			}
			if got := s.ActiveID(); got != ids[tt.wantActive] {
				t.Errorf("ActiveID = %q, want %q", got, ids[tt.wantActive])
			}
		})
	}
}

func TestRemoveMissing(t *testing.T) {
	s := newTestStore()
	s.Create("", "")
	if s.Remove("missing") {
		t.Error("Remove on missing id returned true")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestSwitchActive(t *testing.T) {
	s := newTestStore()
	s.Create("", "")

	if !s.SwitchActive(BootstrapID) {
		t.Fatal("SwitchActive returned false")
	}
	if s.ActiveID() != BootstrapID {
		t.Errorf("ActiveID = %q", s.ActiveID())
	}
	if s.SwitchActive("missing") {
		t.Error("SwitchActive accepted a missing id")
	}
	if s.ActiveID() != BootstrapID {
		t.Error("failed switch changed the active document")
	}
}

func TestNextPrevWrap(t *testing.T) {
	s := newTestStore()
	b := s.Create("", "")
	c := s.Create("", "")

	if got := s.Next(); got != BootstrapID {
		t.Errorf("Next from last = %q, want %q", got, BootstrapID)
	}
	if got := s.Prev(); got != c {
		t.Errorf("Prev from first = %q, want %q", got, c)
	}
	if got := s.Prev(); got != b {
		t.Errorf("Prev = %q, want %q", got, b)
	}
}

func TestActiveFallsBackToFirst(t *testing.T) {
	s := newTestStore()
	s.Create("", "")
	s.activeID = "stale"

	if got := s.Active().ID; got != BootstrapID {
		t.Errorf("Active().ID = %q, want %q", got, BootstrapID)
	}
}

func TestDocumentsIsACopy(t *testing.T) {
	s := newTestStore()
	docs := s.Documents()
	docs[0].Content = "mutated"
	if s.Active().Content == "mutated" {
		t.Error("Documents exposed internal storage")
	}
}

// TestRandomOperationsKeepInvariants drives the store with random
// create/remove/switch sequences and checks the collection invariants
// after every step.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := newTestStore()

	for step := range 2000 {
		ids := s.IDs()
		switch rng.IntN(3) {
		case 0:
			s.Create("", "")
		case 1:
			target := ids[rng.IntN(len(ids))]
			wasActive := target == s.ActiveID()
			idx := s.Index(target)
			removed := s.Remove(target)
			if len(ids) == 1 && removed {
				t.Fatalf("step %d: removed the last document", step)
			}
			if removed && wasActive {
				after := s.IDs()
				want := after[min(idx, len(after)-1)]
				if s.ActiveID() != want {
					t.Fatalf("step %d: active = %q, want %q", step, s.ActiveID(), want)
				}
			}
		case 2:
			s.SwitchActive(ids[rng.IntN(len(ids))])
		}

		if s.Len() < 1 {
			t.Fatalf("step %d: store is empty", step)
		}
		if s.Index(s.activeID) < 0 {
			t.Fatalf("step %d: active id %q not in collection", step, s.activeID)
		}
	}
}
