package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/ticketer/internal/model"
)

func storeWithScreenings(n int) *Store {
	venue := testVenue(1, 2, 3)
	screenings := make([]*model.Screening, 0, n)
	for i := 1; i <= n; i++ {
		genre := "Horror"
		if i%2 == 0 {
			genre = "Comedy"
		}
		m := testMovie(fmt.Sprintf("Movie %d", i), genre)
		screenings = append(screenings, testScreening(i, m, venue, day(0), day(30)))
	}
	return NewStore(nil, []model.Venue{venue}, screenings, nil)
}

func TestPaginateThirteenScreenings(t *testing.T) {
	st := storeWithScreenings(13)
	all := st.Screenings()

	assert.Equal(t, 3, MaxPage(len(all)))

	page1, err := Paginate(all, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 6)
	assert.Equal(t, 1, page1[0].ID)

	page2, err := Paginate(all, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 6)
	assert.Equal(t, 7, page2[0].ID)

	page3, err := Paginate(all, 3)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Equal(t, 13, page3[0].ID)

	_, err = Paginate(all, 4)
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 4, pageErr.Page)
	assert.Equal(t, 3, pageErr.MaxPage)
}

func TestPaginateExactMultiple(t *testing.T) {
	st := storeWithScreenings(12)
	all := st.Screenings()

	assert.Equal(t, 2, MaxPage(len(all)))
	page2, err := Paginate(all, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 6, "last page is full when the count divides evenly")
}

func TestPaginateRejectsBadPages(t *testing.T) {
	all := storeWithScreenings(5).Screenings()
	for _, page := range []int{0, -1, 2} {
		_, err := Paginate(all, page)
		assert.Error(t, err, "page %d", page)
	}
}

func TestPaginateEmptySet(t *testing.T) {
	page, err := Paginate(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = Paginate(nil, 2)
	assert.Error(t, err)
}

// A genre filter yields its own independent sequence and page count.
func TestGenreFilterHasIndependentBounds(t *testing.T) {
	st := storeWithScreenings(13) // 7 Horror (odd IDs), 6 Comedy (even IDs)

	horror := st.ScreeningsByGenre("Horror")
	require.Len(t, horror, 7)
	assert.Equal(t, 2, MaxPage(len(horror)))

	page2, err := Paginate(horror, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.Equal(t, 13, page2[0].ID)

	_, err = Paginate(horror, 3)
	assert.Error(t, err)

	comedy := st.ScreeningsByGenre("Comedy")
	require.Len(t, comedy, 6)
	assert.Equal(t, 1, MaxPage(len(comedy)))
}
