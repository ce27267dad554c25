// Package paginate holds the list-envelope shape and the page/limit
// clamping rules shared by the product and order listings.
package paginate

// Page is the wire envelope for every list response.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// Clamp normalizes a requested page and limit: page is at least 1,
// limit falls back to def when unset or invalid and is clamped into
// [1, max].
func Clamp(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = def
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return page, limit
}

// Pages computes ceil(total/limit); zero when there are no matches.
func Pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// New assembles a Page from the query result. A nil items slice is
// replaced with an empty one so the JSON is always an array.
func New[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: Pages(total, limit),
	}
}
