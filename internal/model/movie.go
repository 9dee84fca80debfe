package model

// Movie is a film that one or more screenings show.  Movies are
// loaded once at startup and never change afterwards.  The title is
// the unique key; two movies with the same title are the same movie.
//
// Fields:
//
//	Title       – unique movie title.
//	Genre       – genre label, e.g. "Horror".
//	RunningTime – running time in minutes (always > 0).
//	ReleaseYear – year of release (always > 1900).
type Movie struct {
	Title       string // movie.name
	Genre       string // movie.genre
	RunningTime int    // movie.running_time (minutes)
	ReleaseYear int    // movie.release_year
}

// Equal reports whether two movies are the same movie.  Identity is
// the title alone; the remaining attributes are descriptive.
func (m Movie) Equal(other Movie) bool {
	return m.Title == other.Title
}
