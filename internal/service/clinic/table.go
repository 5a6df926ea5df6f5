package clinic

import "sync"

// table is an in-memory relation with auto-increment ids. Rows are
// returned in insertion order.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	order  []int64
	nextID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]T{}}
}

func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) exists(id int64) bool {
	_, ok := t.get(id)
	return ok
}

// insert assigns the next id through build and stores the row.
func (t *table[T]) insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	row := build(t.nextID)
	t.rows[t.nextID] = row
	t.order = append(t.order, t.nextID)
	return row
}

func (t *table[T]) put(id int64, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// taken reports whether some row other than skipID satisfies match.
func (t *table[T]) taken(skipID int64, match func(T) bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for k, row := range t.rows {
		if k != skipID && match(row) {
			return true
		}
	}
	return false
}
