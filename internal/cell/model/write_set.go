package model

import (
	"maps"
	"slices"
)

// WriteSet collects record and scalar mutations that a store commits atomically.
// A later Put or Delete of the same ID replaces the earlier one.
type WriteSet struct {
	puts       map[string]*LiveCell
	deletes    map[string]struct{}
	setScalars map[string]string
	delScalars map[string]struct{}
}

// NewWriteSet returns an empty WriteSet.
func NewWriteSet() *WriteSet {
	return &WriteSet{
		puts:       make(map[string]*LiveCell),
		deletes:    make(map[string]struct{}),
		setScalars: make(map[string]string),
		delScalars: make(map[string]struct{}),
	}
}

// Put stores c under its ID.
func (w *WriteSet) Put(c *LiveCell) {
	delete(w.deletes, c.ID)
	w.puts[c.ID] = c
}

// Delete removes the record with id.
func (w *WriteSet) Delete(id string) {
	delete(w.puts, id)
	w.deletes[id] = struct{}{}
}

// Pending returns the record queued for id, if any.
func (w *WriteSet) Pending(id string) (*LiveCell, bool) {
	c, ok := w.puts[id]
	return c, ok
}

// Deleted reports whether id is queued for deletion.
func (w *WriteSet) Deleted(id string) bool {
	_, ok := w.deletes[id]
	return ok
}

// SetScalar sets a scalar key.
func (w *WriteSet) SetScalar(key, value string) {
	delete(w.delScalars, key)
	w.setScalars[key] = value
}

// DelScalar removes a scalar key.
func (w *WriteSet) DelScalar(key string) {
	delete(w.setScalars, key)
	w.delScalars[key] = struct{}{}
}

// Cells returns queued records ordered by ID.
func (w *WriteSet) Cells() []*LiveCell {
	out := make([]*LiveCell, 0, len(w.puts))
	for _, id := range slices.Sorted(maps.Keys(w.puts)) {
		out = append(out, w.puts[id])
	}
	return out
}

// DeletedIDs returns IDs queued for deletion in order.
func (w *WriteSet) DeletedIDs() []string {
	return slices.Sorted(maps.Keys(w.deletes))
}

// Scalars returns queued scalar sets.
func (w *WriteSet) Scalars() map[string]string {
	return maps.Clone(w.setScalars)
}

// DeletedScalars returns queued scalar deletions in order.
func (w *WriteSet) DeletedScalars() []string {
	return slices.Sorted(maps.Keys(w.delScalars))
}

// Empty reports whether the set holds no mutation.
func (w *WriteSet) Empty() bool {
	return len(w.puts) == 0 && len(w.deletes) == 0 && len(w.setScalars) == 0 && len(w.delScalars) == 0
}
