package hierarchy

import (
	"path/filepath"
	"testing"

	"github.com/neurobagel/vocab-handling/internal/athena"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.db")

	original := Build([]athena.Relationship{
		{ChildID: 10, ParentID: 20},
		{ChildID: 20, ParentID: 30},
		{ChildID: 40, ParentID: 30},
	})

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Save(original); err != nil {
		t.Fatalf("save graph: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	store, err = OpenStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	empty, err := store.Empty()
	if err != nil {
		t.Fatalf("probe store: %v", err)
	}
	if empty {
		t.Fatal("expected non-empty store after save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}

	if loaded.EdgeCount() != original.EdgeCount() {
		t.Errorf("expected %d edges, got %d", original.EdgeCount(), loaded.EdgeCount())
	}

	// Descendant queries must be unchanged by the round trip.
	for _, roots := range [][]int64{{30}, {20}, {10}, {99}} {
		want := original.Descendants(roots)
		got := loaded.Descendants(roots)
		if len(want) != len(got) {
			t.Fatalf("roots %v: expected %d descendants, got %d", roots, len(want), len(got))
		}
		for id := range want {
			if !got[id] {
				t.Errorf("roots %v: expected %d in loaded descendants", roots, id)
			}
		}
	}
}

func TestStore_FreshFileIsEmpty(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "graph.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	empty, err := store.Empty()
	if err != nil {
		t.Fatalf("probe store: %v", err)
	}
	if !empty {
		t.Error("expected fresh store to be empty")
	}
}

func TestStore_SaveReplacesPriorEdges(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "graph.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Save(Build([]athena.Relationship{{ChildID: 1, ParentID: 2}})); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(Build([]athena.Relationship{{ChildID: 3, ParentID: 4}})); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}
	if loaded.EdgeCount() != 1 {
		t.Errorf("expected 1 edge after replace, got %d", loaded.EdgeCount())
	}
	got := loaded.Descendants([]int64{4})
	if !got[3] {
		t.Errorf("expected descendants of 4 to contain 3, got %v", got)
	}
	if got[1] {
		t.Error("stale edge survived save")
	}
}
