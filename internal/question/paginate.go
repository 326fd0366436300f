package question

import "strconv"

// PageSize is the number of items per listing page.
const PageSize = 10

// Paginate returns the page-th slice of PageSize items. Pages below 1 are
// treated as the first page; pages past the end yield an empty slice.
func Paginate[T any](page int, items []T) []T {
	if page < 1 {
		page = 1
	}
	pages := (len(items) + PageSize - 1) / PageSize
	if page > pages {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// ParsePage reads the ?page= query value, defaulting to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
