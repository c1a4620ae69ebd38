package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// PageRequest represents a client request for one page of an ordered result set.
type PageRequest struct {
	Number int `json:"pageNumber"`
	Size   int `json:"pageSize"`
}

// PageRequestFromQuery parses pageNumber and pageSize from URL query values.
// Absent parameters take their defaults from the config; present parameters
// are taken verbatim so that Validate can reject out-of-range values instead
// of silently clamping them.
func PageRequestFromQuery(values url.Values, cfg Config) (PageRequest, error) {
	req := PageRequest{Number: 1, Size: cfg.DefaultPageSize}

	if v := values.Get("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return PageRequest{}, fmt.Errorf("pageNumber must be an integer")
		}
		req.Number = n
	}

	if v := values.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return PageRequest{}, fmt.Errorf("pageSize must be an integer")
		}
		req.Size = n
	}

	if err := req.Validate(cfg); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

// Validate rejects page numbers below 1 and page sizes outside [1, MaxPageSize].
func (r PageRequest) Validate(cfg Config) error {
	if r.Number < 1 {
		return fmt.Errorf("pageNumber cannot be less than 1")
	}
	if r.Size < 1 || r.Size > cfg.MaxPageSize {
		return fmt.Errorf("pageSize must be between 1 and %d", cfg.MaxPageSize)
	}
	return nil
}

// Offset calculates the number of records to skip based on page number and size.
func (r PageRequest) Offset() int {
	return (r.Number - 1) * r.Size
}

// Page returns the slice of items covered by the request, preserving input
// order. A page beyond the end of the input yields an empty slice, not an
// error. The result is always a fresh slice header over the input backing
// array; the input is never reordered.
func Page[T any](items []T, r PageRequest) []T {
	offset := r.Offset()
	if offset >= len(items) {
		return []T{}
	}

	end := offset + r.Size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
