package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/edudigital/portal/internal/domain/inventory"
	apperrors "github.com/edudigital/portal/pkg/errors"
	"github.com/edudigital/portal/pkg/metrics"
	"github.com/edudigital/portal/pkg/util"
)

// Upstream sources, used as metric labels.
const (
	sourceYouTube     = "youtube"
	sourceOpenLibrary = "openlibrary"
	sourceArchive     = "archive"
	sourceGemini      = "gemini"
)

const (
	libraryLimit      = 24
	cinemaResults     = 20
	historyResults    = 12
	archiveRows       = 12
	snapshotPerTopic  = 3
	descriptionRunes  = 100
	historyQuery      = "documental historia de venezuela bolívar"
	categoryMovie     = "Patrimonio Documental"
	categoryTraining  = "Formación Digital"
	untitled          = "Sin Título"
	defaultArchiveDoc = "Recurso histórico"
	coverPlaceholder  = "https://via.placeholder.com/400x600?text=Sin+Portada"
	defaultSnapshot   = "public/data-youtube.json"
)

// excludedTerms keep political and violent content out of video searches.
var excludedTerms = []string{
	"-politica", "-chavez", "-maduro", "-gobierno", "-crisis", "-protestas",
	"-elecciones", "-guaido", "-oposicion", "-noticias", "-violencia",
}

// Cinema filters.
const (
	FilterTerritories = "Territorios"
	FilterNature      = "Naturaleza"
	FilterCulture     = "Cultura"
)

// Service exposes the public browsing sections.
type Service interface {
	Library(ctx context.Context, query string, by SearchBy) (LibraryResult, error)
	Cinema(ctx context.Context, filter string) (VideoResult, error)
	History(ctx context.Context) (VideoResult, error)
	Courses(ctx context.Context) (CoursesResult, error)
	Archives(ctx context.Context, tab ArchiveTab, query string) ([]ArchiveItem, error)
	News(ctx context.Context) ([]NewsArticle, error)
	RefreshVideoSnapshot(ctx context.Context) (VideoSnapshot, error)
	VideoSnapshot(ctx context.Context) (VideoSnapshot, error)
}

type service struct {
	cfg       Config
	videos    VideoSearcher
	books     BookSearcher
	archives  ArchiveSearcher
	generator Generator
	inventory InventoryReader
	cache     Cache
	blobs     BlobStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       util.Clock
	newsZone  *time.Location
}

// NewService wires up the catalog domain. generator may be nil, in which
// case News serves the fallback articles.
func NewService(cfg Config, videos VideoSearcher, books BookSearcher, archives ArchiveSearcher, generator Generator, inv InventoryReader, cache Cache, blobs BlobStore, m *metrics.Metrics, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.SnapshotObjectKey) == "" {
		cfg.SnapshotObjectKey = defaultSnapshot
	}
	return &service{
		cfg:       cfg,
		videos:    videos,
		books:     books,
		archives:  archives,
		generator: generator,
		inventory: inv,
		cache:     cache,
		blobs:     blobs,
		metrics:   m,
		logger:    logger.With("component", "catalog.service"),
		now:       util.NowUTC,
		newsZone:  time.FixedZone("America/Caracas", -4*60*60),
	}
}

func (s *service) Library(ctx context.Context, query string, by SearchBy) (LibraryResult, error) {
	switch by {
	case "":
		by = SearchByTitle
	case SearchByTitle, SearchByAuthor:
	default:
		return LibraryResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "by must be title or author", nil)
	}
	collection, err := s.section(ctx, inventory.SectionLibrary)
	if err != nil {
		return LibraryResult{}, err
	}
	result := LibraryResult{Collection: collection, Books: []Book{}}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}
	key := fmt.Sprintf("library:%s:%s", by, strings.ToLower(query))
	if s.lookup(ctx, key, &result.Books) {
		return result, nil
	}

	found, err := s.books.SearchBooks(ctx, BookQuery{Term: query, By: by, Limit: libraryLimit})
	s.metrics.ObserveUpstream(sourceOpenLibrary, err)
	if err != nil {
		s.logger.Warn("book search failed", "query", query, "by", by, "error", err)
		return result, nil
	}
	for _, book := range found {
		if len(book.IA) == 0 {
			continue
		}
		book.CoverURL = CoverURL(book.CoverID)
		result.Books = append(result.Books, book)
	}
	s.store(ctx, key, result.Books)
	return result, nil
}

// CoverURL returns the medium OpenLibrary cover for id, or a placeholder.
func CoverURL(id int) string {
	if id <= 0 {
		return coverPlaceholder
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", id)
}

func (s *service) Cinema(ctx context.Context, filter string) (VideoResult, error) {
	collection, err := s.section(ctx, inventory.SectionCinema)
	if err != nil {
		return VideoResult{}, err
	}
	var query string
	switch strings.TrimSpace(filter) {
	case "", FilterTerritories:
		query = "documental venezuela paisajes"
	case FilterNature:
		query = "fauna flora parques nacionales venezuela"
	default:
		query = "cultura tradiciones venezuela"
	}
	videos := s.searchVideos(ctx, VideoQuery{Query: query, MaxResults: cinemaResults, Movie: true})
	return VideoResult{Collection: collection, Videos: videos}, nil
}

func (s *service) History(ctx context.Context) (VideoResult, error) {
	collection, err := s.section(ctx, inventory.SectionHistory)
	if err != nil {
		return VideoResult{}, err
	}
	videos := s.searchVideos(ctx, VideoQuery{Query: historyQuery, MaxResults: historyResults})
	return VideoResult{Collection: collection, Videos: videos}, nil
}

func (s *service) Courses(ctx context.Context) (CoursesResult, error) {
	collection, err := s.section(ctx, inventory.SectionCourses)
	if err != nil {
		return CoursesResult{}, err
	}
	courses := make([]Course, len(incesCourses))
	copy(courses, incesCourses)
	channels := make([]ChannelGroup, len(channelGroups))
	for i, group := range channelGroups {
		items := make([]ChannelItem, len(group.Items))
		copy(items, group.Items)
		channels[i] = ChannelGroup{Category: group.Category, Items: items}
	}
	return CoursesResult{Courses: courses, Channels: channels, Collection: collection}, nil
}

func (s *service) Archives(ctx context.Context, tab ArchiveTab, query string) ([]ArchiveItem, error) {
	if tab == "" {
		tab = TabInformatica
	}
	if !tab.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown archive tab", nil)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		curated := curatedArchives[tab]
		out := make([]ArchiveItem, len(curated))
		copy(out, curated)
		return out, nil
	}

	items := []ArchiveItem{}
	key := fmt.Sprintf("archives:%s:%s", tab, strings.ToLower(query))
	if s.lookup(ctx, key, &items) {
		return items, nil
	}
	docs, err := s.archives.SearchArchive(ctx, ArchiveQuery{Title: query, MediaType: tab.MediaType(), Rows: archiveRows})
	s.metrics.ObserveUpstream(sourceArchive, err)
	if err != nil {
		s.logger.Warn("archive search failed", "query", query, "tab", tab, "error", err)
		return items, nil
	}
	for _, doc := range docs {
		if doc.Identifier == "" {
			continue
		}
		items = append(items, archiveItem(doc, tab))
	}
	s.store(ctx, key, items)
	return items, nil
}

func archiveItem(doc ArchiveDoc, tab ArchiveTab) ArchiveItem {
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = untitled
	}
	description := defaultArchiveDoc
	if doc.Description != "" {
		description = truncateRunes(doc.Description, descriptionRunes)
	}
	return ArchiveItem{
		ID:          doc.Identifier,
		Title:       title,
		Description: description,
		Thumbnail:   "https://archive.org/services/img/" + doc.Identifier,
		Type:        tab,
		IAID:        doc.Identifier,
	}
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}

func (s *service) RefreshVideoSnapshot(ctx context.Context) (VideoSnapshot, error) {
	snapshot := VideoSnapshot{
		LastUpdate: s.now(),
		Categories: make(map[string][]Video, len(snapshotCategories)),
	}
	failures := 0
	for _, topic := range snapshotCategories {
		hits, err := s.videos.SearchVideos(ctx, VideoQuery{
			Query:      withExclusions(topic.query),
			MaxResults: snapshotPerTopic,
		})
		s.metrics.ObserveUpstream(sourceYouTube, err)
		if err != nil {
			if ctx.Err() != nil {
				return VideoSnapshot{}, ctx.Err()
			}
			s.logger.Warn("snapshot topic failed", "topic", topic.id, "error", err)
			failures++
			snapshot.Categories[topic.id] = []Video{}
			continue
		}
		snapshot.Categories[topic.id] = toVideos(hits, false)
	}
	if failures == len(snapshotCategories) {
		return VideoSnapshot{}, apperrors.Wrap(apperrors.CodeUpstream, "video provider unavailable, snapshot kept", nil)
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return VideoSnapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.blobs.Put(ctx, s.cfg.SnapshotObjectKey, payload, "application/json"); err != nil {
		return VideoSnapshot{}, apperrors.Wrap(apperrors.CodeStorage, "failed to publish video snapshot", err)
	}
	s.logger.Info("video snapshot published", "key", s.cfg.SnapshotObjectKey, "failedTopics", failures)
	return snapshot, nil
}

func (s *service) VideoSnapshot(ctx context.Context) (VideoSnapshot, error) {
	payload, err := s.blobs.Get(ctx, s.cfg.SnapshotObjectKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return VideoSnapshot{}, apperrors.Wrap(apperrors.CodeNotFound, "video snapshot not published yet", err)
		}
		return VideoSnapshot{}, apperrors.Wrap(apperrors.CodeStorage, "failed to read video snapshot", err)
	}
	var snapshot VideoSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return VideoSnapshot{}, apperrors.Wrap(apperrors.CodeStorage, "video snapshot is corrupt", err)
	}
	return snapshot, nil
}

// searchVideos runs a cached video search. Failures yield an empty list.
func (s *service) searchVideos(ctx context.Context, query VideoQuery) []Video {
	query.Query = withExclusions(query.Query)
	videos := []Video{}
	key := fmt.Sprintf("videos:%t:%d:%s", query.Movie, query.MaxResults, query.Query)
	if s.lookup(ctx, key, &videos) {
		return videos
	}
	hits, err := s.videos.SearchVideos(ctx, query)
	s.metrics.ObserveUpstream(sourceYouTube, err)
	if err != nil {
		s.logger.Warn("video search failed", "query", query.Query, "error", err)
		return videos
	}
	videos = toVideos(hits, query.Movie)
	s.store(ctx, key, videos)
	return videos
}

func withExclusions(query string) string {
	return strings.TrimSpace(query) + " " + strings.Join(excludedTerms, " ")
}

func toVideos(hits []VideoHit, movie bool) []Video {
	category := categoryTraining
	if movie {
		category = categoryMovie
	}
	out := make([]Video, 0, len(hits))
	for _, hit := range hits {
		if hit.ID == "" {
			continue
		}
		out = append(out, Video{
			ID:          hit.ID,
			Title:       hit.Title,
			Thumbnail:   hit.Thumbnail,
			Description: hit.Description,
			Platform:    PlatformYouTube,
			URL:         "https://www.youtube.com/embed/" + hit.ID,
			Category:    category,
		})
	}
	return out
}

func (s *service) section(ctx context.Context, section inventory.Section) ([]inventory.Entry, error) {
	entries, err := s.inventory.Section(ctx, section)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []inventory.Entry{}
	}
	return entries, nil
}

// lookup decodes a cached value into dst. Cache errors count as misses.
func (s *service) lookup(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.Warn("catalog cache entry undecodable", "key", key, "error", err)
		return false
	}
	return true
}

func (s *service) store(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

var _ Service = (*service)(nil)
