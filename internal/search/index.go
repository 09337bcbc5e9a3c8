// Package search filters records by multi-word substring match over selected fields.
package search

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Field selects a searchable value from an item. Strings, string pointers and
// fmt.Stringers are used as is; anything else is rendered with fmt.Sprint.
// Nil values, typed nil pointers included, contribute nothing.
type Field[T any] func(T) any

// Index holds items with one precomputed "soup" per item: its field values
// concatenated and normalized. It is safe for concurrent use.
type Index[T any] struct {
	mu     sync.RWMutex
	fields []Field[T]
	items  []T
	soups  []string
}

func New[T any](items []T, fields ...Field[T]) *Index[T] {
	idx := &Index[T]{fields: fields}
	idx.Replace(items)

	return idx
}

// Replace swaps the indexed items and recomputes every soup.
func (idx *Index[T]) Replace(items []T) {
	items = slices.Clone(items)

	soups := make([]string, len(items))
	for i, item := range items {
		soups[i] = idx.soup(item)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items = items
	idx.soups = soups
}

// Search returns the items whose soup contains every word of term, in index order.
// An empty term, or one with no searchable characters, matches everything.
func (idx *Index[T]) Search(term string) []T {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if term == "" {
		return slices.Clone(idx.items)
	}

	var words []string

	for _, w := range strings.Fields(term) {
		if w = normalize(w); w != "" {
			words = append(words, w)
		}
	}

	matches := make([]T, 0)

	for i, soup := range idx.soups {
		if containsAll(soup, words) {
			matches = append(matches, idx.items[i])
		}
	}

	return matches
}

func (idx *Index[T]) Items() []T {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return slices.Clone(idx.items)
}

func (idx *Index[T]) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.items)
}

func (idx *Index[T]) soup(item T) string {
	var b strings.Builder

	for _, f := range idx.fields {
		b.WriteString(text(f(item)))
	}

	return strings.Join(strings.Fields(normalize(b.String())), "")
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}

		return *v
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprint(v)
}

// normalize trims and lowercases s, then drops everything but ASCII letters,
// digits and whitespace.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || unicode.IsSpace(r) {
			return r
		}

		return -1
	}, s)
}

func containsAll(soup string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(soup, w) {
			return false
		}
	}

	return true
}
