package pagination

// Info describes the page window returned alongside every list response.
type Info struct {
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Current int   `json:"current"`
}

// New computes the window for a list of total items viewed page by page.
// Pages is ceil(total/limit); an empty list has zero pages.
func New(total int64, page int, limit int) Info {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return Info{
		Total:   total,
		Pages:   pages,
		Current: page,
	}
}

// Offset converts a 1-indexed page into the skip offset for the store.
func Offset(page int, limit int) int {
	if page < 1 {
		page = 1
	}

	return (page - 1) * limit
}

// Normalize clamps the requested page and limit into the configured range.
func Normalize(page *int, limit *int, defaultLimit int, maxLimit int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = defaultLimit
	}
	if *limit > maxLimit {
		*limit = maxLimit
	}
}
