package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edudigital/portal/internal/domain/catalog"
)

func TestSearchBooks(t *testing.T) {
	cases := []struct {
		name  string
		by    catalog.SearchBy
		field string
	}{
		{name: "title", by: catalog.SearchByTitle, field: "title"},
		{name: "author", by: catalog.SearchByAuthor, field: "author"},
		{name: "default", by: "", field: "title"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got *http.Request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
				_, _ = w.Write([]byte(`{"numFound":2,"docs":[
					{"key":"/works/OL1W","title":"Doña Bárbara","author_name":["Rómulo Gallegos"],"first_publish_year":1929,"cover_i":123,"language":["spa"],"ia":["donabarbara0000gall"]},
					{"key":"/works/OL2W","title":"Canaima"}
				]}`))
			}))
			defer srv.Close()

			books, err := NewClient(srv.URL, time.Second).SearchBooks(context.Background(), catalog.BookQuery{Term: "Doña Bárbara", By: tc.by, Limit: 24})
			require.NoError(t, err)
			require.Len(t, books, 2)
			require.Equal(t, catalog.Book{
				Key:              "/works/OL1W",
				Title:            "Doña Bárbara",
				Authors:          []string{"Rómulo Gallegos"},
				FirstPublishYear: 1929,
				CoverID:          123,
				Languages:        []string{"spa"},
				IA:               []string{"donabarbara0000gall"},
				IAID:             "donabarbara0000gall",
				Source:           "Archive.org",
			}, books[0])
			require.Empty(t, books[1].IA)

			require.Equal(t, "/search.json", got.URL.Path)
			q := got.URL.Query()
			require.Equal(t, "Doña Bárbara", q.Get(tc.field))
			require.Equal(t, "24", q.Get("limit"))
			require.Equal(t, searchFields, q.Get("fields"))
		})
	}
}

func TestSearchBooksStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).SearchBooks(context.Background(), catalog.BookQuery{Term: "x"})
	require.ErrorContains(t, err, "status=502")
}
