// Package cache holds the current article generation in memory with a
// freshness window. State is process-local and lost on restart.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"healthfeed/types"
)

// PageResult is one paginated slice of the current generation.
type PageResult struct {
	Articles []types.Article
	HasMore  bool
	Total    int
}

// Store owns one cache generation: the normalized article set, its fetch
// timestamp and a generation tag. All methods are safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	articles   []types.Article
	fetchedAt  time.Time
	generation string
	ttl        time.Duration
	now        func() time.Time
}

// New returns an empty store whose generations stay fresh for ttl.
func New(ttl time.Duration) *Store {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{ttl: ttl, now: now}
}

// IsFresh reports whether the store holds articles fetched within the
// freshness window.
func (s *Store) IsFresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.articles) == 0 || s.fetchedAt.IsZero() {
		return false
	}
	return s.now().Sub(s.fetchedAt) < s.ttl
}

// Page returns the 1-based page of the given size. Page numbers below 1
// are floored to 1.
func (s *Store) Page(page, size int) PageResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	total := len(s.articles)

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]types.Article, end-start)
	copy(items, s.articles[start:end])

	return PageResult{
		Articles: items,
		HasMore:  end < total,
		Total:    total,
	}
}

// Replace swaps in a new generation wholesale and resets the fetch
// timestamp. Ids from earlier generations become stale references.
func (s *Store) Replace(articles []types.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = make([]types.Article, len(articles))
	copy(s.articles, articles)
	s.fetchedAt = s.now()
	s.generation = uuid.NewString()
}

// Clear empties the store. The next read will miss.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = nil
	s.fetchedAt = time.Time{}
	s.generation = ""
}

// UpdateArticle applies mutate to the article with the given id within the
// current generation. It reports false, without side effects, when the id
// is absent (stale reference from a prior generation).
func (s *Store) UpdateArticle(id int, mutate func(*types.Article)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			mutate(&s.articles[i])
			return true
		}
	}
	return false
}

// Find returns a copy of the article with the given id.
func (s *Store) Find(id int) (types.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			return s.articles[i], true
		}
	}
	return types.Article{}, false
}

// Articles returns a snapshot copy of the current generation.
func (s *Store) Articles() []types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// Len returns the number of cached articles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// Generation returns the tag of the current generation, empty when the
// store has never been filled.
func (s *Store) Generation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
