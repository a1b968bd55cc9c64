// Package image keeps the in-process list of image URLs the bot can post.
package image

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"sync"
)

// MaxBatchSize is the maximum number of URLs a single batch may carry.
const MaxBatchSize = 10

var urlPattern = regexp.MustCompile(`(?i)^https?://.*\.(jpg|jpeg|png|gif)$`)

// IsValidURL reports whether the given string is an http(s) link to a supported image file.
func IsValidURL(url string) bool {
	return urlPattern.MatchString(url)
}

// Registry is an ordered list of image URLs.
// Duplicates are allowed. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	urls []string
	intn func(n int) int
}

// RegistryOption defines a function signature for Registry's functional options.
type RegistryOption func(*Registry)

// WithIntn replaces the random index source used by PickRandom.
// The given function must return a value in [0, n).
func WithIntn(fnc func(n int) int) RegistryOption {
	return func(r *Registry) {
		r.intn = fnc
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		intn: rand.IntN,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Add appends the given URL and returns the stored value.
// ErrInvalidURL is returned and the list stays untouched when the URL does not qualify.
func (r *Registry) Add(url string) (string, error) {
	if !IsValidURL(url) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return url, nil
}

// Remove deletes the first occurrence of the given URL.
func (r *Registry) Remove(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.urls, url)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	r.urls = slices.Delete(r.urls, idx, idx+1)
	return nil
}

// PickRandom returns one of the registered URLs without removing it.
func (r *Registry) PickRandom() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.urls) == 0 {
		return "", ErrEmpty
	}
	return r.urls[r.intn(len(r.urls))], nil
}

// Len returns the number of registered URLs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.urls)
}

// List returns a copy of the registered URLs in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.urls)
}
