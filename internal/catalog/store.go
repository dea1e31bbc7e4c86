package catalog

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"gstcatalog/internal/inspect"
)

// Store is the name-keyed element lookup. A name maps to at most one element;
// writing an existing name overwrites it.
type Store struct {
	mu       sync.RWMutex
	elements map[string]inspect.Element
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{elements: make(map[string]inspect.Element)}
}

// Put stores element under its name and returns the element it replaced, if any.
func (s *Store) Put(element inspect.Element) (inspect.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, replaced := s.elements[element.Name]
	s.elements[element.Name] = element.Clone()
	return prev, replaced
}

// Replace swaps the whole content of the store in one step. Readers see either
// the old or the new set, never a mix.
func (s *Store) Replace(elements map[string]inspect.Element) {
	next := make(map[string]inspect.Element, len(elements))
	for name, element := range elements {
		next[name] = element
	}
	s.mu.Lock()
	s.elements = next
	s.mu.Unlock()
}

// Lookup returns the element stored under name.
func (s *Store) Lookup(name string) (inspect.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	element, ok := s.elements[name]
	if !ok {
		return inspect.Element{}, false
	}
	return element.Clone(), true
}

// Get returns the element stored under name, or a zero Element when absent.
func (s *Store) Get(name string) inspect.Element {
	element, _ := s.Lookup(name)
	return element
}

// Len returns the number of stored elements.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// Names returns all element names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.elements))
	for name := range s.elements {
		names = append(names, name)
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

// ByClassification returns the sorted names of elements whose classification
// contains substr, ignoring case. An empty substr matches every element.
func (s *Store) ByClassification(substr string) []string {
	return s.filter(substr, func(e inspect.Element) string { return e.Classification })
}

// ByName returns the sorted names containing substr, ignoring case.
func (s *Store) ByName(substr string) []string {
	return s.filter(substr, func(e inspect.Element) string { return e.Name })
}

func (s *Store) filter(substr string, field func(inspect.Element) string) []string {
	// A Caser carries state, so each call gets its own.
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(substr))

	s.mu.RLock()
	var names []string
	for name, element := range s.elements {
		if strings.Contains(folder.String(field(element)), needle) {
			names = append(names, name)
		}
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Classes counts, per slash-delimited classification token ("Source", "Video",
// ...), how many elements carry it.
func (s *Store) Classes() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int)
	for _, element := range s.elements {
		for _, token := range strings.Split(element.Classification, "/") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			out[token]++
		}
	}
	return out
}
