package pricepi

import (
	"errors"
	"fmt"
)

// SortOrder selects how the Pricepi API orders search results.
type SortOrder string

// Sort order constants.
const (
	SortRelevance SortOrder = "relevance"
	SortPrice     SortOrder = "price"
)

var (
	// ErrInvalidSort is returned when a SearchRequest names an unknown sort order.
	ErrInvalidSort = errors.New("invalid sort order")

	// ErrInvalidPaging is returned when limit or offset are out of range.
	ErrInvalidPaging = errors.New("invalid paging")
)

// SearchRequest defines the parameters for a Pricepi product search.
type SearchRequest struct {
	Query    string
	Currency string
	Seller   string // empty matches every seller
	Limit    int
	Offset   int
	SortBy   SortOrder

	// IncludeUnknownSellers is not part of the signed parameter set, see
	// UnknownParam.
	IncludeUnknownSellers bool
}

// Validate checks paging and sort order. An empty SortBy is accepted and
// treated as SortRelevance.
func (r SearchRequest) Validate() error {
	if r.Limit < 1 {
		return fmt.Errorf("%w: limit must be positive (got %d)", ErrInvalidPaging, r.Limit)
	}
	if r.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative (got %d)", ErrInvalidPaging, r.Offset)
	}
	switch r.SortBy {
	case "", SortRelevance, SortPrice:
		return nil
	default:
		return fmt.Errorf("%w %q: must be one of %s, %s", ErrInvalidSort, r.SortBy, SortRelevance, SortPrice)
	}
}

// Sort returns the effective sort order.
func (r SearchRequest) Sort() SortOrder {
	if r.SortBy == "" {
		return SortRelevance
	}
	return r.SortBy
}

// UnknownParam returns the "on"/"off" form of IncludeUnknownSellers. The
// API does not accept it in the signed request, so it is only exposed for
// callers that build their own query strings.
func (r SearchRequest) UnknownParam() string {
	if r.IncludeUnknownSellers {
		return "on"
	}
	return "off"
}

// ParseSortOrder converts a user-supplied string into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortPrice:
		return SortPrice, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidSort, s)
	}
}
