package client

import (
	"strings"
	"sync"
)

// ListStore owns the in-memory collection behind one admin table: the
// loaded items, the loading flag and the current filters. Mutations
// patch the collection in place from the server's response instead of
// refetching the whole list.
type ListStore[T any] struct {
	mu sync.Mutex

	items   []T
	loading bool

	// searchTerm narrows the derived view only; it never triggers a
	// refetch. statusFilter is the server-side filter the caller passes
	// to its fetch.
	searchTerm   string
	statusFilter string
	page         int

	// generation guards against a slow refresh overwriting the result
	// of a newer one.
	generation uint64

	id       func(T) uint
	matches  func(item T, term string) bool
	statusOf func(T) string
}

// StoreConfig tells a ListStore how to identify, search and
// status-partition its item type.
type StoreConfig[T any] struct {
	ID       func(T) uint
	Matches  func(item T, term string) bool
	StatusOf func(T) string
}

func NewListStore[T any](cfg StoreConfig[T]) *ListStore[T] {
	return &ListStore[T]{
		statusFilter: "all",
		page:         1,
		id:           cfg.ID,
		matches:      cfg.Matches,
		statusOf:     cfg.StatusOf,
	}
}

// Refresh replaces the whole collection from fetch. A failed fetch
// keeps the previous items. A refresh that was superseded by a newer
// one discards its result.
func (s *ListStore[T]) Refresh(fetch func() ([]T, error)) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	items, err := fetch()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// A newer refresh owns the store now.
		return err
	}

	s.loading = false
	if err != nil {
		return err
	}
	s.items = items
	return nil
}

func (s *ListStore[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ListStore[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ListStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *ListStore[T]) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *ListStore[T]) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
}

func (s *ListStore[T]) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}

func (s *ListStore[T]) StatusFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusFilter
}

func (s *ListStore[T]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// FilteredItems derives the visible rows: case-insensitive substring
// match on the search term AND the status filter. Pure with respect to
// the stored items; calling it repeatedly yields the same result.
func (s *ListStore[T]) FilteredItems() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(s.searchTerm))

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if term != "" && s.matches != nil && !s.matches(item, term) {
			continue
		}
		if s.statusFilter != "" && s.statusFilter != "all" &&
			s.statusOf != nil && s.statusOf(item) != s.statusFilter {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ApplyCreate appends the entity a successful create returned.
func (s *ListStore[T]) ApplyCreate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// ApplyUpdate replaces the matching entity in place, keeping its
// position. An unknown id is a no-op.
func (s *ListStore[T]) ApplyUpdate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == s.id(item) {
			s.items[i] = item
			return
		}
	}
}

// ApplyDelete removes the entity with the given id.
func (s *ListStore[T]) ApplyDelete(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
