package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gstcatalog/internal/inspect"
	"gstcatalog/internal/logging"
)

// ErrNoRecords reports that the data source produced nothing to parse.
var ErrNoRecords = errors.New("no records produced")

// Source produces raw gst-inspect report text.
type Source interface {
	Dump(ctx context.Context) (string, error)
	Inspect(ctx context.Context, name string) (string, error)
}

// Observer receives parse notifications. ElementParsed and ParseProgress fire
// once per element in dump order; ParseFinished fires once after the store
// has been swapped.
type Observer interface {
	ElementParsed(name string)
	ParseProgress(current, total int)
	ParseFinished(count int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnElement  func(name string)
	OnProgress func(current, total int)
	OnFinished func(count int)
}

func (f ObserverFuncs) ElementParsed(name string) {
	if f.OnElement != nil {
		f.OnElement(name)
	}
}

func (f ObserverFuncs) ParseProgress(current, total int) {
	if f.OnProgress != nil {
		f.OnProgress(current, total)
	}
}

func (f ObserverFuncs) ParseFinished(count int) {
	if f.OnFinished != nil {
		f.OnFinished(count)
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithParser replaces the default parser.
func WithParser(parser *inspect.Parser) Option {
	return func(e *Engine) {
		if parser != nil {
			e.parser = parser
		}
	}
}

// WithObserver registers a notification observer.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// WithWorkers bounds how many chunks are parsed concurrently. Values below 1
// select GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.workers = workers
	}
}

// Engine owns the element store and drives full-dump parses into it.
type Engine struct {
	source    Source
	parser    *inspect.Parser
	store     *Store
	logger    *slog.Logger
	observers []Observer
	workers   int

	loadMu sync.Mutex
}

// NewEngine constructs an engine. source may be nil when only Load is used.
func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		parser: inspect.NewParser(),
		store:  NewStore(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	e.logger = logging.NewComponentLogger(e.logger, "catalog")
	return e
}

// Store exposes the engine's element store.
func (e *Engine) Store() *Store {
	return e.store
}

// Load parses a full dump and replaces the store with its elements. Duplicate
// names resolve to the last occurrence. It returns the number of elements
// stored.
func (e *Engine) Load(ctx context.Context, dump string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	logger := logging.WithContext(ctx, e.logger)
	started := time.Now()

	chunks := slices.Collect(inspect.Chunks(dump))
	results := make([]inspect.Element, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)
	for i, chunk := range chunks {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = e.parser.ParseChunk(chunk.Name, chunk.Text)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("parse dump: %w", err)
	}

	next := make(map[string]inspect.Element, len(results))
	for i, element := range results {
		if _, exists := next[element.Name]; exists {
			logger.Debug("duplicate element overwritten",
				logging.String(logging.FieldElement, element.Name),
				logging.Int("line", chunks[i].Line+1),
			)
		}
		next[element.Name] = element
		e.notifyElement(element.Name, i+1, len(results))
	}

	e.store.Replace(next)
	e.notifyFinished(len(next))

	logger.Info("catalog loaded",
		logging.Int("chunk_count", len(chunks)),
		logging.Int("element_count", len(next)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return len(next), nil
}

// Refresh asks the source for a full dump and loads it. When the source fails
// or produces no output the store is left untouched and the error wraps
// ErrNoRecords.
func (e *Engine) Refresh(ctx context.Context) (int, error) {
	dump, err := e.fetchDump(ctx)
	if err != nil {
		logging.WithContext(ctx, e.logger).Warn("element refresh produced no records",
			logging.Error(err),
			logging.Alert("source_failed"),
		)
		return 0, err
	}
	return e.Load(ctx, dump)
}

func (e *Engine) fetchDump(ctx context.Context) (string, error) {
	if e.source == nil {
		return "", fmt.Errorf("%w: no source configured", ErrNoRecords)
	}
	dump, err := e.source.Dump(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoRecords, err)
	}
	if strings.TrimSpace(dump) == "" {
		return "", fmt.Errorf("%w: empty dump", ErrNoRecords)
	}
	return dump, nil
}

// InspectElement runs a single-element report through the source and parses it.
// The store is not modified.
func (e *Engine) InspectElement(ctx context.Context, name string) (inspect.Element, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return inspect.Element{}, errors.New("element name required")
	}
	if e.source == nil {
		return inspect.Element{}, fmt.Errorf("%w: no source configured", ErrNoRecords)
	}
	text, err := e.source.Inspect(ctx, name)
	if err != nil {
		return inspect.Element{}, fmt.Errorf("%w: inspect %s: %w", ErrNoRecords, name, err)
	}
	element := e.parser.ParseChunk(name, text)
	logging.WithContext(ctx, e.logger).Debug("element inspected",
		logging.String(logging.FieldElement, name),
		logging.Int("property_count", len(element.Properties)),
		logging.Int("pad_template_count", len(element.PadTemplates)),
	)
	return element, nil
}

// Names lists every known element name in sorted order.
func (e *Engine) Names() []string {
	return e.store.Names()
}

// Element returns the named element, or a zero Element when unknown.
func (e *Engine) Element(name string) inspect.Element {
	return e.store.Get(name)
}

// ByClassification filters element names by case-insensitive classification substring.
func (e *Engine) ByClassification(substr string) []string {
	return e.store.ByClassification(substr)
}

func (e *Engine) notifyElement(name string, current, total int) {
	for _, observer := range e.observers {
		observer.ElementParsed(name)
		observer.ParseProgress(current, total)
	}
}

func (e *Engine) notifyFinished(count int) {
	for _, observer := range e.observers {
		observer.ParseFinished(count)
	}
}
