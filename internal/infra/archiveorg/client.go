package archiveorg

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

const defaultBaseURL = "https://archive.org"

// Client queries the Internet Archive advanced search.
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
	Response struct {
		Docs []struct {
			Identifier  string          `json:"identifier"`
			Title       json.RawMessage `json:"title"`
			Description json.RawMessage `json:"description"`
		} `json:"docs"`
	} `json:"response"`
}

// SearchArchive runs a title search within one media type.
func (c *Client) SearchArchive(ctx context.Context, query catalog.ArchiveQuery) ([]catalog.ArchiveDoc, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("title:(%s) AND mediatype:(%s)", escapeTerm(query.Title), query.MediaType))
	params.Add("fl[]", "identifier")
	params.Add("fl[]", "title")
	params.Add("fl[]", "description")
	params.Set("output", "json")
	if query.Rows > 0 {
		params.Set("rows", strconv.Itoa(query.Rows))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/advancedsearch.php?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build archive request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("archive request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode archive response: %w", err)
	}
	docs := make([]catalog.ArchiveDoc, 0, len(raw.Response.Docs))
	for _, doc := range raw.Response.Docs {
		title, _ := firstString(doc.Title)
		description, _ := plainString(doc.Description)
		docs = append(docs, catalog.ArchiveDoc{
			Identifier:  doc.Identifier,
			Title:       title,
			Description: description,
		})
	}
	return docs, nil
}

// plainString decodes a JSON string. Other JSON values report false.
func plainString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

// firstString accepts a string or an array of strings.
func firstString(raw json.RawMessage) (string, bool) {
	if value, ok := plainString(raw); ok {
		return value, true
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// escapeTerm drops characters that would close the title group early.
func escapeTerm(term string) string {
	return strings.NewReplacer("(", " ", ")", " ").Replace(strings.TrimSpace(term))
}

var _ catalog.ArchiveSearcher = (*Client)(nil)
