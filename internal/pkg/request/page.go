package request

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Normalize applies the default page and page size used by every list endpoint.
func Normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Offset returns the number of rows to skip for the given page.
func Offset(page, pageSize int) int {
	page, pageSize = Normalize(page, pageSize)
	return (page - 1) * pageSize
}

// Bounds returns the half-open [lo, hi) window of a slice of length total
// that belongs to the given page. It never returns indexes past total.
func Bounds(total, page, pageSize int) (int, int) {
	page, pageSize = Normalize(page, pageSize)
	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
