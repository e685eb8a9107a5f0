package catalog

// Page is one contiguous window of a result sequence
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate returns items [(page-1)*size, page*size) of seq clamped to its
// bounds. A page outside 1..TotalPages yields no items; it is the caller's
// job to keep the page in range.
func Paginate[T any](seq []T, page, size int) Page[T] {
	p := Page[T]{
		Items:    []T{},
		Page:     page,
		PageSize: size,
		Total:    len(seq),
	}
	if size <= 0 {
		return p
	}

	p.TotalPages = (len(seq) + size - 1) / size
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, len(seq))
	p.Items = seq[start:end:end]
	return p
}
