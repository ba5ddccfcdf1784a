// Package store holds the assembled files. A Store is built once through a
// Builder and is read-only afterwards, so it can be shared between request
// goroutines without locking.
package store

import (
	"maps"
	"slices"
)

// Entry is one stored file.
type Entry struct {
	// Name is the served name, the request path without its leading slash.
	Name string `json:"name" yaml:"name"`

	// Content is the final text after replacements.
	Content string `json:"-" yaml:"-"`

	// Source is the local path or URL the content was read from.
	Source string `json:"source" yaml:"source"`

	// Replacements is the number of replacement rules applied.
	Replacements int `json:"replacements" yaml:"replacements"`
}

// Size returns the content length in bytes.
func (e Entry) Size() int {
	return len(e.Content)
}

// Store is an immutable name to content mapping.
type Store struct {
	entries map[string]Entry
}

// Get returns the content stored under name.
func (s *Store) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	e, ok := s.entries[name]
	return e.Content, ok
}

// Entry returns the full entry stored under name.
func (s *Store) Entry(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[name]
	return e, ok
}

// Len returns the number of stored files.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.entries))
}

// Entries returns every entry sorted by name.
func (s *Store) Entries() []Entry {
	names := s.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, s.entries[name])
	}
	return entries
}

// Builder accumulates entries for a Store. It is not safe for concurrent use.
type Builder struct {
	entries map[string]Entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// Put inserts e, replacing any entry with the same name. It returns the
// replaced entry and whether one existed.
func (b *Builder) Put(e Entry) (Entry, bool) {
	prev, existed := b.entries[e.Name]
	b.entries[e.Name] = e
	return prev, existed
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build returns a Store holding a copy of the entries. The Builder may
// keep being used without affecting the returned Store.
func (b *Builder) Build() *Store {
	return &Store{entries: maps.Clone(b.entries)}
}

// FromMap builds a Store from plain name to content pairs.
func FromMap(files map[string]string) *Store {
	b := NewBuilder()
	for name, content := range files {
		b.Put(Entry{Name: name, Content: content})
	}
	return b.Build()
}
