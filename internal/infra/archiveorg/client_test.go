package archiveorg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edudigital/portal/internal/domain/catalog"
)

func TestSearchArchive(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"responseHeader":{"status":0},"response":{"numFound":3,"docs":[
			{"identifier":"Discurso_de_Angostura","title":"Discurso de Angostura","description":"Proclama de 1819"},
			{"identifier":"multi","title":["Primero","Segundo"],"description":["a","b"]},
			{"identifier":"bare"}
		]}}`))
	}))
	defer srv.Close()

	docs, err := NewClient(srv.URL, time.Second).SearchArchive(context.Background(), catalog.ArchiveQuery{Title: "angostura (1819)", MediaType: "audio", Rows: 12})
	require.NoError(t, err)
	require.Equal(t, []catalog.ArchiveDoc{
		{Identifier: "Discurso_de_Angostura", Title: "Discurso de Angostura", Description: "Proclama de 1819"},
		{Identifier: "multi", Title: "Primero"},
		{Identifier: "bare"},
	}, docs)

	require.Equal(t, "/advancedsearch.php", got.URL.Path)
	q := got.URL.Query()
	require.Equal(t, "title:(angostura  1819 ) AND mediatype:(audio)", q.Get("q"))
	require.Equal(t, "json", q.Get("output"))
	require.Equal(t, "12", q.Get("rows"))
	require.Equal(t, []string{"identifier", "title", "description"}, q["fl[]"])
}

func TestSearchArchiveStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).SearchArchive(context.Background(), catalog.ArchiveQuery{Title: "x", MediaType: "image"})
	require.ErrorContains(t, err, "status=503")
}

func TestFirstString(t *testing.T) {
	cases := map[string]string{
		`"uno"`:       "uno",
		`["dos","x"]`: "dos",
		`[]`:          "",
		`42`:          "",
		``:            "",
	}
	for raw, want := range cases {
		got, _ := firstString(json.RawMessage(raw))
		require.Equal(t, want, got, raw)
	}
}
