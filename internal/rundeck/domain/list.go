package domain

// ListResponse wraps any list-shaped result with the total available on the
// server, the count actually returned, and a truncation flag. Item order is
// whatever the remote source returned; it is never changed here.
type ListResponse[T any] struct {
	Items     []T  `json:"items"`
	Total     int  `json:"total"`
	Returned  int  `json:"returned"`
	Truncated bool `json:"truncated"`
}

// NewListResponse wraps a fully fetched sequence, capping it at limit. The
// total is the pre-cap length, so truncation caused by the cap is visible.
// A limit <= 0 means uncapped.
func NewListResponse[T any](items []T, limit int) ListResponse[T] {
	return NewListResponseWithTotal(items, len(items), limit)
}

// NewListResponseWithTotal wraps a sequence whose source performs its own
// limiting and reports the total itself. The reported total is trusted, not
// recomputed; it is only raised to the returned count when the source
// under-reports, so Truncated can never contradict the sequence length.
func NewListResponseWithTotal[T any](items []T, total, limit int) ListResponse[T] {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if total < len(items) {
		total = len(items)
	}
	return ListResponse[T]{
		Items:     items,
		Total:     total,
		Returned:  len(items),
		Truncated: total > len(items),
	}
}
