package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gstcatalog/internal/inspect"
)

type fakeSource struct {
	dump       string
	dumpErr    error
	single     map[string]string
	inspectErr error
	dumpCalls  int
}

func (f *fakeSource) Dump(context.Context) (string, error) {
	f.dumpCalls++
	return f.dump, f.dumpErr
}

func (f *fakeSource) Inspect(_ context.Context, name string) (string, error) {
	if f.inspectErr != nil {
		return "", f.inspectErr
	}
	return f.single[name], nil
}

type recordingObserver struct {
	mu       sync.Mutex
	parsed   []string
	progress [][2]int
	finished []int
}

func (r *recordingObserver) ElementParsed(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsed = append(r.parsed, name)
}

func (r *recordingObserver) ParseProgress(current, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [2]int{current, total})
}

func (r *recordingObserver) ParseFinished(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, count)
}

func loadDump(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "inspect", "testdata", "print_all.txt"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func TestLoadPopulatesStoreAndNotifies(t *testing.T) {
	observer := &recordingObserver{}
	engine := NewEngine(nil, WithObserver(observer), WithWorkers(2))

	count, err := engine.Load(context.Background(), loadDump(t))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 elements, got %d", count)
	}
	if diff := cmp.Diff([]string{"autoaudiosink", "tee", "videotestsrc"}, engine.Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"videotestsrc", "autoaudiosink", "tee"}, observer.parsed); diff != "" {
		t.Fatalf("elements should be reported in dump order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][2]int{{1, 3}, {2, 3}, {3, 3}}, observer.progress); diff != "" {
		t.Fatalf("unexpected progress (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3}, observer.finished); diff != "" {
		t.Fatalf("unexpected finish notifications (-want +got):\n%s", diff)
	}

	tee := engine.Element("tee")
	if tee.Classification != "Generic" || len(tee.PadTemplates) != 2 {
		t.Fatalf("unexpected tee element: %+v", tee)
	}
	if diff := cmp.Diff([]string{"videotestsrc"}, engine.ByClassification("video")); diff != "" {
		t.Fatalf("unexpected classification filter (-want +got):\n%s", diff)
	}
}

func TestLoadDuplicateNamesLastWins(t *testing.T) {
	dump := "foo: Factory Details:\nfoo:   Klass                    First\n" +
		"bar: Factory Details:\nbar:   Klass                    Other\n" +
		"foo: Factory Details:\nfoo:   Klass                    Second\n"
	observer := &recordingObserver{}
	engine := NewEngine(nil, WithObserver(observer))

	count, err := engine.Load(context.Background(), dump)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unique elements, got %d", count)
	}
	if got := engine.Element("foo").Classification; got != "Second" {
		t.Fatalf("expected last occurrence to win, got %q", got)
	}
	if len(observer.parsed) != 3 {
		t.Fatalf("every chunk should be reported, got %v", observer.parsed)
	}
	if diff := cmp.Diff([]int{2}, observer.finished); diff != "" {
		t.Fatalf("unexpected finish count (-want +got):\n%s", diff)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dump := loadDump(t)
	engine := NewEngine(nil)
	if _, err := engine.Load(context.Background(), dump); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	first := engine.Element("videotestsrc")
	if _, err := engine.Load(context.Background(), dump); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if diff := cmp.Diff(first, engine.Element("videotestsrc")); diff != "" {
		t.Fatalf("second load changed record (-first +second):\n%s", diff)
	}
	if engine.Store().Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", engine.Store().Len())
	}
}

func TestLoadReplacesPreviousContent(t *testing.T) {
	engine := NewEngine(nil)
	if _, err := engine.Load(context.Background(), loadDump(t)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := engine.Load(context.Background(), "queue: Factory Details:\n"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"queue"}, engine.Names()); diff != "" {
		t.Fatalf("expected only the new dump's elements (-want +got):\n%s", diff)
	}
}

func TestLoadCancelledLeavesStoreUntouched(t *testing.T) {
	engine := NewEngine(nil)
	if _, err := engine.Load(context.Background(), "tee: Factory Details:\n"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Load(ctx, loadDump(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if diff := cmp.Diff([]string{"tee"}, engine.Names()); diff != "" {
		t.Fatalf("store changed after cancelled load (-want +got):\n%s", diff)
	}
}

func TestRefreshSourceFailureKeepsStore(t *testing.T) {
	source := &fakeSource{dump: "tee: Factory Details:\n"}
	engine := NewEngine(source)
	if _, err := engine.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	tests := []struct {
		name    string
		dump    string
		dumpErr error
	}{
		{name: "tool failure", dumpErr: errors.New("exit status 1")},
		{name: "empty output", dump: "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source.dump, source.dumpErr = tt.dump, tt.dumpErr
			_, err := engine.Refresh(context.Background())
			if !errors.Is(err, ErrNoRecords) {
				t.Fatalf("expected ErrNoRecords, got %v", err)
			}
			if tt.dumpErr != nil && !errors.Is(err, tt.dumpErr) {
				t.Fatalf("expected source error to be wrapped, got %v", err)
			}
			if diff := cmp.Diff([]string{"tee"}, engine.Names()); diff != "" {
				t.Fatalf("store changed after failed refresh (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRefreshWithoutSource(t *testing.T) {
	engine := NewEngine(nil)
	if _, err := engine.Refresh(context.Background()); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestRefreshDumpWithoutElementsEmptiesStore(t *testing.T) {
	source := &fakeSource{dump: "tee: Factory Details:\n"}
	engine := NewEngine(source)
	if _, err := engine.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	source.dump = "Total count: 0 plugins\n"
	count, err := engine.Refresh(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("Refresh = %d, %v", count, err)
	}
	if engine.Store().Len() != 0 {
		t.Fatalf("expected empty store, got %v", engine.Names())
	}
}

func TestInspectElementDoesNotTouchStore(t *testing.T) {
	single := "Factory Details:\n" +
		"  Rank                     primary (256)\n" +
		"  Long-name                Queue\n" +
		"  Klass                    Generic\n" +
		"\n" +
		"Element Properties:\n" +
		"  max-size-buffers    : Max. number of buffers in the queue (0=disable)\n" +
		"                        flags: readable, writable\n" +
		"                        Unsigned Integer. Range: 0 - 4294967295 Default: 200\n"
	source := &fakeSource{single: map[string]string{"queue": single}}
	engine := NewEngine(source)

	element, err := engine.InspectElement(context.Background(), "queue")
	if err != nil {
		t.Fatalf("InspectElement: %v", err)
	}
	want := inspect.Element{
		Name:           "queue",
		LongName:       "Queue",
		Classification: "Generic",
		Rank:           "primary",
		Properties: []inspect.Property{{
			Name:        "max-size-buffers",
			Type:        "Unsigned Integer",
			Description: "Max. number of buffers in the queue (0=disable)",
			Default:     "200",
			Range:       "0 - 4294967295",
			Readable:    true,
			Writable:    true,
		}},
	}
	if diff := cmp.Diff(want, element); diff != "" {
		t.Fatalf("unexpected element (-want +got):\n%s", diff)
	}
	if engine.Store().Len() != 0 {
		t.Fatal("InspectElement should not modify the store")
	}
}

func TestInspectElementErrors(t *testing.T) {
	engine := NewEngine(&fakeSource{inspectErr: errors.New("No such element or plugin 'nope'")})
	if _, err := engine.InspectElement(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := engine.InspectElement(context.Background(), "nope"); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	if _, err := NewEngine(nil).InspectElement(context.Background(), "tee"); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords without source, got %v", err)
	}
}

func TestObserverFuncsSkipNil(t *testing.T) {
	var finished int
	engine := NewEngine(nil, WithObserver(ObserverFuncs{OnFinished: func(count int) { finished = count }}))
	if _, err := engine.Load(context.Background(), loadDump(t)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if finished != 3 {
		t.Fatalf("expected finish count 3, got %d", finished)
	}
}
