package trivia

// DefaultPageSize is the fixed number of questions per paginated response.
const DefaultPageSize = 10

// Paginate slices items into the requested fixed-size window. The page
// number clamps to 1 when it is not a positive integer, since a missing
// page parameter is the common case rather than an error. Requests past
// the last page yield an empty page with the correct total.
//
// items must already be in canonical order (primary key ascending) so
// that sequential pages cover the collection without gaps or duplicates.
// size is a server constant, never request input; a non-positive size is
// a programming error.
func Paginate(items []Question, page, size int) Page {
	if size <= 0 {
		panic("trivia: page size must be positive")
	}
	if page < 1 {
		page = 1
	}

	// Pages past the data short-circuit before the start/end arithmetic,
	// which would otherwise overflow for very large page numbers.
	if lastPage := (len(items)-1)/size + 1; page > lastPage {
		return Page{
			Questions: items[len(items):],
			Total:     len(items),
		}
	}

	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Questions: items[start:end],
		Total:     len(items),
	}
}
