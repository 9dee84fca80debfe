package model

// Venue is a physical screening location with a rectangular seat
// grid.  Rows are designated by a letter, columns by a number, so the
// seat at grid position (1, 16) is labelled "B17".
//
// Fields:
//
//	Number – unique venue number (always > 0).
//	Rows   – number of seat rows (always > 0).
//	Cols   – number of seat columns (always > 0).
type Venue struct {
	Number int // venue.venue_no
	Rows   int // venue.no_of_rows
	Cols   int // venue.no_of_cols
}

// TotalSeats returns the seat capacity of the venue.
func (v Venue) TotalSeats() int {
	return v.Rows * v.Cols
}

// Equal reports whether two venues are the same venue.  Identity is
// the venue number alone.
func (v Venue) Equal(other Venue) bool {
	return v.Number == other.Number
}
