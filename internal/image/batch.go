package image

import "fmt"

// BatchItem is the outcome for one URL of a batch.
// Err is nil when URL is a valid image link, and ErrInvalidURL otherwise.
type BatchItem struct {
	URL string
	Err error
}

// Valid reports whether the item can be rendered as an image.
func (i BatchItem) Valid() bool {
	return i.Err == nil
}

// SendBatch judges each URL independently and returns one item per URL in input order.
// The whole batch is rejected with ErrTooManyURLs when it exceeds MaxBatchSize.
// It does not touch any Registry; images are only posted, not stored.
func SendBatch(urls []string) ([]BatchItem, error) {
	if len(urls) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d given, up to %d allowed", ErrTooManyURLs, len(urls), MaxBatchSize)
	}

	items := make([]BatchItem, 0, len(urls))
	for _, url := range urls {
		item := BatchItem{URL: url}
		if !IsValidURL(url) {
			item.Err = fmt.Errorf("%w: %s", ErrInvalidURL, url)
		}
		items = append(items, item)
	}
	return items, nil
}
