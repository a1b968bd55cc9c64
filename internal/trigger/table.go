// Package trigger maps lower-cased trigger words to fixed text responses.
//
// Entries keep their insertion order. Listing and matching both follow it,
// so the first configured trigger wins when several words match.
package trigger

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
)

// Table is a trigger word to response mapping. It is safe for concurrent use.
type Table struct {
	mu        sync.RWMutex
	keys      []string
	responses map[string]string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		responses: map[string]string{},
	}
}

// Normalize returns the canonical form of a trigger word.
func Normalize(word string) string {
	return strings.ToLower(word)
}

// Set adds the trigger or overwrites its response.
// The returned bool tells whether the trigger already existed.
// An overwritten trigger keeps its original position.
func (t *Table) Set(word, response string) bool {
	key := Normalize(word)

	t.mu.Lock()
	defer t.mu.Unlock()

	_, exists := t.responses[key]
	if !exists {
		t.keys = append(t.keys, key)
	}
	t.responses[key] = response
	return exists
}

// Update overwrites the response of an existing trigger.
// Unlike Set, ErrNotFound is returned and nothing changes when the trigger is absent.
func (t *Table) Update(word, response string) error {
	key := Normalize(word)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.responses[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	t.responses[key] = response
	return nil
}

// Remove deletes the trigger.
func (t *Table) Remove(word string) error {
	key := Normalize(word)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.responses[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(t.responses, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
	return nil
}

// Clear removes every trigger.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.keys = nil
	clear(t.responses)
}

// Get returns the response of the given trigger.
func (t *Table) Get(word string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	response, ok := t.responses[Normalize(word)]
	return response, ok
}

// Len returns the number of configured triggers.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}

// List returns the configured triggers as (word, response) pairs in insertion order.
// The sequence iterates over a snapshot taken on call, so it can be ranged over
// any number of times and is not affected by later changes.
// ErrEmpty is returned when nothing is configured.
func (t *Table) List() (iter.Seq2[string, string], error) {
	entries := t.snapshot()
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	return func(yield func(string, string) bool) {
		for _, e := range entries {
			if !yield(e.word, e.response) {
				return
			}
		}
	}, nil
}

// Match returns the first trigger, in insertion order, whose word is contained in the given text.
// The comparison is case-insensitive.
func (t *Table) Match(text string) (word string, response string, ok bool) {
	lowered := strings.ToLower(text)
	for _, e := range t.snapshot() {
		if strings.Contains(lowered, e.word) {
			return e.word, e.response, true
		}
	}
	return "", "", false
}

type entry struct {
	word     string
	response string
}

func (t *Table) snapshot() []entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, entry{word: k, response: t.responses[k]})
	}
	return entries
}
