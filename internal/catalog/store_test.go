package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gstcatalog/internal/inspect"
)

func newTestStore(elements ...inspect.Element) *Store {
	store := NewStore()
	for _, element := range elements {
		store.Put(element)
	}
	return store
}

func TestStorePutOverwritesAndReturnsPrevious(t *testing.T) {
	store := NewStore()
	if _, replaced := store.Put(inspect.Element{Name: "tee", LongName: "first"}); replaced {
		t.Fatal("first Put should not replace")
	}
	prev, replaced := store.Put(inspect.Element{Name: "tee", LongName: "second"})
	if !replaced || prev.LongName != "first" {
		t.Fatalf("expected previous element, got %+v replaced=%v", prev, replaced)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one element, got %d", store.Len())
	}
	if got := store.Get("tee").LongName; got != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestStoreGetUnknownReturnsZeroValue(t *testing.T) {
	store := newTestStore(inspect.Element{Name: "tee"})
	if diff := cmp.Diff(inspect.Element{}, store.Get("queue")); diff != "" {
		t.Fatalf("expected zero element (-want +got):\n%s", diff)
	}
	if _, ok := store.Lookup("queue"); ok {
		t.Fatal("Lookup should report missing element")
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	original := inspect.Element{
		Name:       "videotestsrc",
		Properties: []inspect.Property{{Name: "pattern", EnumValues: []string{"smpte"}}},
	}
	store := newTestStore(original)
	original.Properties[0].Name = "mutated"

	got := store.Get("videotestsrc")
	if got.Properties[0].Name != "pattern" {
		t.Fatalf("store should not share caller slices, got %q", got.Properties[0].Name)
	}
	got.Properties[0].EnumValues[0] = "mutated"
	if again := store.Get("videotestsrc"); again.Properties[0].EnumValues[0] != "smpte" {
		t.Fatalf("reader mutation leaked into store: %q", again.Properties[0].EnumValues[0])
	}
}

func TestStoreNamesSorted(t *testing.T) {
	store := newTestStore(
		inspect.Element{Name: "videotestsrc"},
		inspect.Element{Name: "autoaudiosink"},
		inspect.Element{Name: "tee"},
	)
	if diff := cmp.Diff([]string{"autoaudiosink", "tee", "videotestsrc"}, store.Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestStoreByClassification(t *testing.T) {
	store := newTestStore(
		inspect.Element{Name: "videotestsrc", Classification: "Source/Video"},
		inspect.Element{Name: "weird", Classification: "AUDIO/video"},
		inspect.Element{Name: "autoaudiosink", Classification: "Sink/Audio"},
		inspect.Element{Name: "tee", Classification: "Generic"},
	)

	tests := []struct {
		substr string
		want   []string
	}{
		{substr: "video", want: []string{"videotestsrc", "weird"}},
		{substr: "AUDIO", want: []string{"autoaudiosink", "weird"}},
		{substr: "sink/", want: []string{"autoaudiosink"}},
		{substr: "decoder", want: nil},
		{substr: "", want: []string{"autoaudiosink", "tee", "videotestsrc", "weird"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, store.ByClassification(tt.substr)); diff != "" {
			t.Fatalf("ByClassification(%q) (-want +got):\n%s", tt.substr, diff)
		}
	}
}

func TestStoreByName(t *testing.T) {
	store := newTestStore(
		inspect.Element{Name: "videotestsrc"},
		inspect.Element{Name: "audiotestsrc"},
		inspect.Element{Name: "tee"},
	)
	if diff := cmp.Diff([]string{"audiotestsrc", "videotestsrc"}, store.ByName("TestSrc")); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestStoreClasses(t *testing.T) {
	store := newTestStore(
		inspect.Element{Name: "a", Classification: "Source/Video"},
		inspect.Element{Name: "b", Classification: "Sink/Video"},
		inspect.Element{Name: "c", Classification: "Generic"},
		inspect.Element{Name: "d"},
	)
	want := map[string]int{"Source": 1, "Sink": 1, "Video": 2, "Generic": 1}
	if diff := cmp.Diff(want, store.Classes()); diff != "" {
		t.Fatalf("unexpected classes (-want +got):\n%s", diff)
	}
}

func TestStoreReplaceSwapsContent(t *testing.T) {
	store := newTestStore(inspect.Element{Name: "old"})
	next := map[string]inspect.Element{"new": {Name: "new"}}
	store.Replace(next)
	delete(next, "new")

	if diff := cmp.Diff([]string{"new"}, store.Names()); diff != "" {
		t.Fatalf("unexpected names after replace (-want +got):\n%s", diff)
	}
}
