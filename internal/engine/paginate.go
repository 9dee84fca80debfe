package engine

import "github.com/venuebook/ticketer/internal/model"

// PageSize is the fixed number of screenings shown per page.
const PageSize = 6

// MaxPage returns the number of pages needed for n screenings.
func MaxPage(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate slices one page out of an already-ordered screening list.
// Pages are one-based; the last page holds the remainder.  Requesting
// a page past the end fails with a PageError.  A one-page request
// against an empty list yields an empty page rather than an error so
// an empty catalogue is browsable.
//
// Genre filtering happens before this call (Store.ScreeningsByGenre);
// the filtered list carries its own independent page count, and
// resetting the current page after a filter switch is the caller's
// responsibility.
func Paginate(screenings []*model.Screening, page int) ([]*model.Screening, error) {
	if len(screenings) == 0 && page == 1 {
		return nil, nil
	}
	max := MaxPage(len(screenings))
	if page < 1 || page > max {
		return nil, &PageError{Page: page, MaxPage: max}
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(screenings) {
		end = len(screenings)
	}
	return screenings[start:end], nil
}
