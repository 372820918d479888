package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edudigital/portal/internal/domain/inventory"
	apperrors "github.com/edudigital/portal/pkg/errors"
)

type fakeVideos struct {
	mu      sync.Mutex
	queries []VideoQuery
	hits    []VideoHit
	err     error
}

func (f *fakeVideos) SearchVideos(_ context.Context, q VideoQuery) ([]VideoHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type fakeBooks struct {
	queries []BookQuery
	books   []Book
	err     error
}

func (f *fakeBooks) SearchBooks(_ context.Context, q BookQuery) ([]Book, error) {
	f.queries = append(f.queries, q)
	return f.books, f.err
}

type fakeArchive struct {
	queries []ArchiveQuery
	docs    []ArchiveDoc
	err     error
}

func (f *fakeArchive) SearchArchive(_ context.Context, q ArchiveQuery) ([]ArchiveDoc, error) {
	f.queries = append(f.queries, q)
	return f.docs, f.err
}

type fakeGenerator struct {
	calls int
	out   Generation
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (Generation, error) {
	f.calls++
	if prompt == "" {
		return Generation{}, errors.New("empty prompt")
	}
	return f.out, f.err
}

type fakeInventory struct {
	entries map[inventory.Section][]inventory.Entry
	err     error
}

func (f *fakeInventory) Section(_ context.Context, section inventory.Section) ([]inventory.Entry, error) {
	return f.entries[section], f.err
}

type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

type mapBlobs struct {
	objects map[string][]byte
	err     error
}

func (b *mapBlobs) Put(_ context.Context, key string, data []byte, _ string) error {
	if b.err != nil {
		return b.err
	}
	b.objects[key] = data
	return nil
}

func (b *mapBlobs) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return data, nil
}

type fixture struct {
	videos    *fakeVideos
	books     *fakeBooks
	archive   *fakeArchive
	generator *fakeGenerator
	inventory *fakeInventory
	cache     *mapCache
	blobs     *mapBlobs
}

func newFixture() *fixture {
	return &fixture{
		videos:    &fakeVideos{},
		books:     &fakeBooks{},
		archive:   &fakeArchive{},
		generator: &fakeGenerator{},
		inventory: &fakeInventory{entries: map[inventory.Section][]inventory.Entry{}},
		cache:     newMapCache(),
		blobs:     &mapBlobs{objects: map[string][]byte{}},
	}
}

func (f *fixture) service(now time.Time) *service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(Config{CacheTTL: time.Minute}, f.videos, f.books, f.archive, f.generator, f.inventory, f.cache, f.blobs, nil, logger).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestLibraryKeepsReadableBooksAndCaches(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.books.books = []Book{
		{Key: "/works/OL1W", Title: "Doña Bárbara", CoverID: 42, IA: []string{"donabarbara00"}},
		{Key: "/works/OL2W", Title: "Sin copia digital"},
		{Key: "/works/OL3W", Title: "Canaima", IA: []string{"canaima00"}},
	}
	entry := inventory.Entry{Module: inventory.ModuleBooks, Payload: inventory.Payload{ID: "b-1"}}
	f.inventory.entries[inventory.SectionLibrary] = []inventory.Entry{entry}
	svc := f.service(time.Now())

	result, err := svc.Library(context.Background(), "  Gallegos ", SearchByAuthor)
	require.NoError(t, err)
	require.Len(t, result.Books, 2)
	require.Equal(t, "https://covers.openlibrary.org/b/id/42-M.jpg", result.Books[0].CoverURL)
	require.Equal(t, coverPlaceholder, result.Books[1].CoverURL)
	require.Equal(t, []inventory.Entry{entry}, result.Collection)
	require.Equal(t, []BookQuery{{Term: "Gallegos", By: SearchByAuthor, Limit: 24}}, f.books.queries)

	again, err := svc.Library(context.Background(), "gallegos", SearchByAuthor)
	require.NoError(t, err)
	require.Equal(t, result.Books, again.Books)
	require.Len(t, f.books.queries, 1)
}

func TestLibraryValidatesAndDegrades(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.books.err = errors.New("boom")
	svc := f.service(time.Now())

	_, err := svc.Library(context.Background(), "x", SearchBy("isbn"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	empty, err := svc.Library(context.Background(), "   ", "")
	require.NoError(t, err)
	require.Empty(t, empty.Books)
	require.NotNil(t, empty.Collection)
	require.Empty(t, f.books.queries)

	failed, err := svc.Library(context.Background(), "Rómulo", "")
	require.NoError(t, err)
	require.Empty(t, failed.Books)
	require.Empty(t, f.cache.values)
}

func TestCinemaQueries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		filter string
		query  string
	}{
		{filter: "", query: "documental venezuela paisajes"},
		{filter: FilterTerritories, query: "documental venezuela paisajes"},
		{filter: FilterNature, query: "fauna flora parques nacionales venezuela"},
		{filter: FilterCulture, query: "cultura tradiciones venezuela"},
		{filter: "Otro", query: "cultura tradiciones venezuela"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.filter, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.videos.hits = []VideoHit{{ID: "abc", Title: "Roraima", Thumbnail: "t.jpg"}, {Title: "missing id"}}
			svc := f.service(time.Now())

			result, err := svc.Cinema(context.Background(), tc.filter)
			require.NoError(t, err)
			require.Len(t, f.videos.queries, 1)
			q := f.videos.queries[0]
			require.True(t, strings.HasPrefix(q.Query, tc.query+" -politica"))
			require.True(t, strings.HasSuffix(q.Query, "-violencia"))
			require.Equal(t, 20, q.MaxResults)
			require.True(t, q.Movie)
			require.Equal(t, []Video{{
				ID:        "abc",
				Title:     "Roraima",
				Thumbnail: "t.jpg",
				Platform:  PlatformYouTube,
				URL:       "https://www.youtube.com/embed/abc",
				Category:  "Patrimonio Documental",
			}}, result.Videos)
		})
	}
}

func TestHistoryDegradesOnUpstreamFailure(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.videos.err = errors.New("quota exceeded")
	svc := f.service(time.Now())

	result, err := svc.History(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Videos)
	require.Empty(t, result.Videos)
	require.Equal(t, 12, f.videos.queries[0].MaxResults)
	require.False(t, f.videos.queries[0].Movie)
	require.Empty(t, f.cache.values)
}

func TestHistoryPropagatesInventoryErrors(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.inventory.err = apperrors.Wrap(apperrors.CodeStorage, "db down", nil)
	svc := f.service(time.Now())

	_, err := svc.History(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.Empty(t, f.videos.queries)
}

func TestCoursesReturnsCopies(t *testing.T) {
	t.Parallel()
	svc := newFixture().service(time.Now())

	result, err := svc.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Courses, 8)
	require.Len(t, result.Channels, 4)
	result.Courses[0].Title = "changed"
	result.Channels[0].Items[0].Title = "changed"

	again, err := svc.Courses(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Desarrollo Web Avanzado", again.Courses[0].Title)
	require.Equal(t, "Excel: de Básico a Experto", again.Channels[0].Items[0].Title)
}

func TestArchivesCuratedTabs(t *testing.T) {
	t.Parallel()
	svc := newFixture().service(time.Now())

	cases := map[ArchiveTab]int{"": 12, TabInformatica: 12, TabSoftware: 12, TabAudio: 12, TabImage: 12}
	for tab, want := range cases {
		items, err := svc.Archives(context.Background(), tab, " ")
		require.NoError(t, err)
		require.Len(t, items, want)
	}

	software, err := svc.Archives(context.Background(), TabSoftware, "")
	require.NoError(t, err)
	require.Equal(t, "s-extra-0", software[4].ID)
	require.Equal(t, "Software Legacy Vol 1", software[4].Title)
	require.Equal(t, "Software Legacy Vol 8", software[11].Title)

	_, err = svc.Archives(context.Background(), ArchiveTab("video"), "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestArchivesSearchMapsDocs(t *testing.T) {
	t.Parallel()
	f := newFixture()
	long := strings.Repeat("á", 150)
	f.archive.docs = []ArchiveDoc{
		{Identifier: "Discurso_de_Angostura", Title: "Discurso", Description: long},
		{Identifier: "no-title"},
		{Title: "no identifier"},
	}
	svc := f.service(time.Now())

	items, err := svc.Archives(context.Background(), TabAudio, "bolivar")
	require.NoError(t, err)
	require.Equal(t, []ArchiveQuery{{Title: "bolivar", MediaType: "audio", Rows: 12}}, f.archive.queries)
	require.Len(t, items, 2)
	require.Equal(t, strings.Repeat("á", 100), items[0].Description)
	require.Equal(t, "https://archive.org/services/img/Discurso_de_Angostura", items[0].Thumbnail)
	require.Equal(t, TabAudio, items[0].Type)
	require.Equal(t, ArchiveItem{
		ID:          "no-title",
		Title:       "Sin Título",
		Description: "Recurso histórico",
		Thumbnail:   "https://archive.org/services/img/no-title",
		Type:        TabAudio,
		IAID:        "no-title",
	}, items[1])

	_, err = svc.Archives(context.Background(), TabInformatica, "dos")
	require.NoError(t, err)
	require.Equal(t, "software", f.archive.queries[1].MediaType)
}

func TestNewsDefaultsMissingFields(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.generator.out = Generation{
		Text: "```json\n[" +
			`{"id": 7, "title": "Chip cuántico", "summary": "s1"},` +
			`{"title": "Robots", "url": "https://example.com/robots"},` +
			`{"title": "Nube", "category": "Venezuela", "date": "1/1/2026"},` +
			`{"title": "Orquídeas en Mérida"},` +
			`{"title": "  "}` +
			"]\n```",
		SourceURIs: []string{"https://source.example/1"},
	}
	now := time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC)
	svc := f.service(now)

	articles, err := svc.News(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 4)

	require.Equal(t, "7", articles[0].ID)
	require.Equal(t, "https://source.example/1", articles[0].URL)
	require.Equal(t, "Tecnología", articles[0].Category)
	require.Equal(t, "16/10/2026", articles[0].Date)

	require.Equal(t, "news-1", articles[1].ID)
	require.Equal(t, "https://example.com/robots", articles[1].URL)

	require.Equal(t, "Venezuela", articles[2].Category)
	require.Equal(t, "1/1/2026", articles[2].Date)

	require.Equal(t, "https://google.com/search?q=Orqu%C3%ADdeas+en+M%C3%A9rida", articles[3].URL)
	require.Equal(t, "Venezuela", articles[3].Category)

	cached, err := svc.News(context.Background())
	require.NoError(t, err)
	require.Equal(t, articles, cached)
	require.Equal(t, 1, f.generator.calls)
}

func TestNewsFallback(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	cases := map[string]Generation{
		"not json":    {Text: "no puedo ayudar"},
		"empty array": {Text: "[]"},
		"broken json": {Text: `[{"title": }]`},
	}
	for name, out := range cases {
		out := out
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.generator.out = out
			articles, err := f.service(now).News(context.Background())
			require.NoError(t, err)
			require.Len(t, articles, 2)
			require.Equal(t, "err-1", articles[0].ID)
			require.Equal(t, "5/3/2026", articles[0].Date)
			require.Empty(t, f.cache.values)
		})
	}

	t.Run("upstream error", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.generator.err = errors.New("503")
		articles, err := f.service(now).News(context.Background())
		require.NoError(t, err)
		require.Equal(t, "err-2", articles[1].ID)
	})

	t.Run("no generator", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewService(Config{}, f.videos, f.books, f.archive, nil, f.inventory, f.cache, f.blobs, nil, logger)
		articles, err := svc.News(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)
	})
}

func TestVideoSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.videos.hits = []VideoHit{{ID: "v1", Title: "Curso"}}
	now := time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC)
	svc := f.service(now)

	_, err := svc.VideoSnapshot(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	published, err := svc.RefreshVideoSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, published.Categories, 5)
	require.Len(t, f.videos.queries, 5)
	for _, q := range f.videos.queries {
		require.Equal(t, 3, q.MaxResults)
		require.False(t, q.Movie)
		require.Contains(t, q.Query, "curso completo español -politica")
	}
	require.Equal(t, "Formación Digital", published.Categories["ia"][0].Category)
	require.Contains(t, f.blobs.objects, "public/data-youtube.json")

	read, err := svc.VideoSnapshot(context.Background())
	require.NoError(t, err)
	require.True(t, now.Equal(read.LastUpdate))
	require.Equal(t, published.Categories, read.Categories)
}

func TestRefreshVideoSnapshotFailures(t *testing.T) {
	t.Parallel()

	t.Run("all topics fail", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.videos.err = errors.New("quota")
		_, err := f.service(time.Now()).RefreshVideoSnapshot(context.Background())
		require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
		require.Empty(t, f.blobs.objects)
	})

	t.Run("storage fails", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.blobs.err = errors.New("bucket gone")
		_, err := f.service(time.Now()).RefreshVideoSnapshot(context.Background())
		require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	})
}
