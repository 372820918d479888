package catalog

import (
	"time"

	"github.com/edudigital/portal/internal/domain/inventory"
)

// Config tunes the catalog service.
type Config struct {
	CacheTTL          time.Duration
	SnapshotObjectKey string
}

// SearchBy selects the OpenLibrary search field.
type SearchBy string

const (
	SearchByTitle  SearchBy = "title"
	SearchByAuthor SearchBy = "author"
)

// Book is an OpenLibrary work readable on the Internet Archive.
type Book struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Authors          []string `json:"author_name,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	CoverID          int      `json:"cover_i,omitempty"`
	CoverURL         string   `json:"cover_url"`
	Languages        []string `json:"language,omitempty"`
	IA               []string `json:"ia,omitempty"`
	IAID             string   `json:"ia_id,omitempty"`
	Source           string   `json:"source,omitempty"`
}

// Platform identifies where a video is hosted.
type Platform string

const PlatformYouTube Platform = "YouTube"

// Video is an embeddable video.
type Video struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Platform    Platform `json:"platform"`
	URL         string   `json:"url"`
	Duration    string   `json:"duration,omitempty"`
	Category    string   `json:"category"`
}

// VideoHit is a raw search result as returned by the video provider.
type VideoHit struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
}

// VideoQuery describes a video search.
type VideoQuery struct {
	Query      string
	MaxResults int
	// Movie restricts the search to medium length videos.
	Movie bool
}

// BookQuery describes a book search.
type BookQuery struct {
	Term  string
	By    SearchBy
	Limit int
}

// Course is a curated training program.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Category    string `json:"category"`
}

// ChannelItem is a curated playlist.
type ChannelItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Description string `json:"desc"`
}

// ChannelGroup groups playlists under a topic.
type ChannelGroup struct {
	Category string        `json:"category"`
	Items    []ChannelItem `json:"items"`
}

// ArchiveTab is a tab of the digital archive section.
type ArchiveTab string

const (
	TabInformatica ArchiveTab = "informatica"
	TabSoftware    ArchiveTab = "software"
	TabAudio       ArchiveTab = "audio"
	TabImage       ArchiveTab = "image"
)

// Valid reports whether t is a known tab.
func (t ArchiveTab) Valid() bool {
	switch t {
	case TabInformatica, TabSoftware, TabAudio, TabImage:
		return true
	}
	return false
}

// MediaType maps the tab to the Internet Archive media type it searches.
func (t ArchiveTab) MediaType() string {
	switch t {
	case TabAudio:
		return "audio"
	case TabImage:
		return "image"
	default:
		return "software"
	}
}

// ArchiveItem is an Internet Archive resource.
type ArchiveItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
	Type        ArchiveTab `json:"type"`
	IAID        string     `json:"iaId"`
}

// ArchiveDoc is a raw advanced search document. Description is empty when
// the upstream value was missing or not a plain string.
type ArchiveDoc struct {
	Identifier  string
	Title       string
	Description string
}

// ArchiveQuery describes an advanced search.
type ArchiveQuery struct {
	Title     string
	MediaType string
	Rows      int
}

// NewsArticle is a generated headline.
type NewsArticle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Image    string `json:"image,omitempty"`
}

// Generation is the raw text answer of a grounded language model plus the
// source links it cited, in citation order.
type Generation struct {
	Text       string
	SourceURIs []string
}

// VideoSnapshot is the periodically refreshed set of course videos.
type VideoSnapshot struct {
	LastUpdate time.Time          `json:"lastUpdate"`
	Categories map[string][]Video `json:"categories"`
}

// LibraryResult combines the admin collection with the search results.
type LibraryResult struct {
	Collection []inventory.Entry `json:"collection"`
	Books      []Book            `json:"books"`
}

// VideoResult combines the admin collection with the video results.
type VideoResult struct {
	Collection []inventory.Entry `json:"collection"`
	Videos     []Video           `json:"videos"`
}

// CoursesResult lists curated programs, playlists and admin entries.
type CoursesResult struct {
	Courses    []Course          `json:"courses"`
	Channels   []ChannelGroup    `json:"channels"`
	Collection []inventory.Entry `json:"collection"`
}
