package walk

import "strconv"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// ParsePage resolves the page and limit query parameters. Invalid or
// non-numeric input falls back to the defaults instead of failing the
// request; limit clamps to maxLimit.
func ParsePage(pageStr, limitStr string) Page {
	page := defaultPage
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		page = n
	}

	limit := defaultLimit
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		limit = n
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(totalCount / limit).
func TotalPages(totalCount, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
