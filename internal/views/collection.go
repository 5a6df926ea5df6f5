package views

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Collection is the in-memory row set behind a list view. Rows are kept in
// insertion order unless a sort order is given, in which case the order is
// re-established on every Set and Insert. Replace never moves a row.
type Collection[R any] struct {
	mu   sync.RWMutex
	rows []R
	id   func(R) int64
	less func(a, b R) bool
}

// NewCollection returns an empty collection. less may be nil.
func NewCollection[R any](id func(R) int64, less func(a, b R) bool) *Collection[R] {
	return &Collection[R]{id: id, less: less}
}

func (c *Collection[R]) Set(rows []R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(make([]R, 0, len(rows)), rows...)
	c.sortLocked()
}

// Rows returns a copy of every row in display order.
func (c *Collection[R]) Rows() []R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]R, 0, len(c.rows)), c.rows...)
}

func (c *Collection[R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

func (c *Collection[R]) Get(id int64) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.rows, func(r R) bool { return c.id(r) == id })
}

func (c *Collection[R]) Insert(r R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, r)
	c.sortLocked()
}

// Replace swaps the row with r's id for r. It reports false when no such
// row exists.
func (c *Collection[R]) Replace(r R) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(c.rows, func(x R) bool { return c.id(x) == c.id(r) })
	if !ok {
		return false
	}
	c.rows[idx] = r
	return true
}

func (c *Collection[R]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.rows)
	c.rows = lo.Reject(c.rows, func(r R, _ int) bool { return c.id(r) == id })
	return len(c.rows) != n
}

// Filter returns the rows where any of fields(row) contains query,
// case-insensitively. A blank query returns every row.
func (c *Collection[R]) Filter(query string, fields func(R) []string) []R {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Rows()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Filter(c.rows, func(r R, _ int) bool {
		return lo.SomeBy(fields(r), func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		})
	})
}

func (c *Collection[R]) sortLocked() {
	if c.less == nil {
		return
	}
	sort.SliceStable(c.rows, func(i, j int) bool { return c.less(c.rows[i], c.rows[j]) })
}
