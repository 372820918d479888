package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/edudigital/portal/internal/domain/catalog"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	searchFields   = "key,title,author_name,first_publish_year,cover_i,language,ia"
)

// Client queries the OpenLibrary search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverI           int      `json:"cover_i"`
		Language         []string `json:"language"`
		IA               []string `json:"ia"`
	} `json:"docs"`
}

// SearchBooks searches works by title or author.
func (c *Client) SearchBooks(ctx context.Context, query catalog.BookQuery) ([]catalog.Book, error) {
	field := "title"
	if query.By == catalog.SearchByAuthor {
		field = "author"
	}
	params := url.Values{}
	params.Set(field, query.Term)
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	params.Set("fields", searchFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build openlibrary request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("openlibrary request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode openlibrary response: %w", err)
	}
	books := make([]catalog.Book, 0, len(raw.Docs))
	for _, doc := range raw.Docs {
		book := catalog.Book{
			Key:              doc.Key,
			Title:            doc.Title,
			Authors:          doc.AuthorName,
			FirstPublishYear: doc.FirstPublishYear,
			CoverID:          doc.CoverI,
			Languages:        doc.Language,
			IA:               doc.IA,
		}
		if len(doc.IA) > 0 {
			book.IAID = doc.IA[0]
			book.Source = "Archive.org"
		}
		books = append(books, book)
	}
	return books, nil
}

var _ catalog.BookSearcher = (*Client)(nil)
