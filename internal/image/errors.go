package image

import "errors"

// ErrInvalidURL indicates that the given string is not an http(s) link to a jpg, jpeg, png or gif file.
var ErrInvalidURL = errors.New("invalid image URL")

// ErrNotFound indicates that the given URL is not registered.
var ErrNotFound = errors.New("image not found")

// ErrEmpty indicates that no image is registered.
var ErrEmpty = errors.New("no images available")

// ErrTooManyURLs indicates that a batch carries more than MaxBatchSize URLs.
var ErrTooManyURLs = errors.New("too many image URLs")
