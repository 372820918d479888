package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/edudigital/portal/internal/domain/catalog"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client searches videos through the YouTube Data API v3.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds an API client. rps <= 0 disables client side throttling.
func NewClient(apiKey, baseURL string, rps float64, burst int, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("youtube api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}, nil
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnails  struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SearchVideos runs a search restricted to Spanish language videos relevant to Venezuela.
func (c *Client) SearchVideos(ctx context.Context, query catalog.VideoQuery) ([]catalog.VideoHit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("youtube rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query.Query)
	params.Set("maxResults", strconv.Itoa(query.MaxResults))
	params.Set("type", "video")
	params.Set("relevanceLanguage", "es")
	params.Set("regionCode", "VE")
	if query.Movie {
		params.Set("videoDuration", "medium")
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build youtube request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		var apiErr errorResponse
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("youtube request error: status=%d message=%s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("youtube request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode youtube response: %w", err)
	}
	hits := make([]catalog.VideoHit, 0, len(raw.Items))
	for _, item := range raw.Items {
		hits = append(hits, catalog.VideoHit{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
		})
	}
	return hits, nil
}

// ErrNotConfigured is returned by Unconfigured.
var ErrNotConfigured = errors.New("youtube api key not configured")

// Unconfigured stands in for Client when no API key is set; every search fails.
type Unconfigured struct{}

// SearchVideos implements catalog.VideoSearcher.
func (Unconfigured) SearchVideos(context.Context, catalog.VideoQuery) ([]catalog.VideoHit, error) {
	return nil, ErrNotConfigured
}

var (
	_ catalog.VideoSearcher = (*Client)(nil)
	_ catalog.VideoSearcher = Unconfigured{}
)
