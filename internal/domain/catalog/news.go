package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	newsCategoryTech      = "Tecnología"
	newsCategoryVenezuela = "Venezuela"
	newsCacheKey          = "news"
)

const newsPrompt = "Busca noticias reales de las últimas 48 horas sobre: 1. Avances tecnológicos globales. " +
	"2. Noticias positivas de cultura o ciencia en Venezuela. Proporciona una lista con ID, Título, " +
	"un resumen de 3 frases y la URL real de la fuente. Devuelve el resultado en formato JSON puro " +
	"como un arreglo de objetos con los campos id, title, summary, url, category, date e image. " +
	"No inventes noticias, usa Google Search para verificar los hechos."

func (s *service) News(ctx context.Context) ([]NewsArticle, error) {
	today := s.today()
	if s.generator == nil {
		return fallbackNews(today), nil
	}
	articles := []NewsArticle{}
	if s.lookup(ctx, newsCacheKey, &articles) && len(articles) > 0 {
		return articles, nil
	}

	generation, err := s.generator.Generate(ctx, newsPrompt)
	s.metrics.ObserveUpstream(sourceGemini, err)
	if err != nil {
		s.logger.Warn("news generation failed", "error", err)
		return fallbackNews(today), nil
	}
	articles, err = parseNews(generation, today)
	if err != nil {
		s.logger.Warn("news response unusable", "error", err)
		return fallbackNews(today), nil
	}
	s.store(ctx, newsCacheKey, articles)
	return articles, nil
}

func (s *service) today() string {
	now := s.now().In(s.newsZone)
	return fmt.Sprintf("%d/%d/%d", now.Day(), int(now.Month()), now.Year())
}

// newsDraft is one article as written by the model. Any field may be missing.
type newsDraft struct {
	ID       looseString `json:"id"`
	Title    string      `json:"title"`
	Summary  string      `json:"summary"`
	URL      string      `json:"url"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
	Image    string      `json:"image"`
}

// looseString accepts JSON strings and numbers.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*l = looseString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*l = looseString(number.String())
	return nil
}

// parseNews decodes the JSON array embedded in the model answer and fills
// missing fields. Grounding sources take precedence over model URLs.
func parseNews(generation Generation, today string) ([]NewsArticle, error) {
	raw, err := extractJSONArray(generation.Text)
	if err != nil {
		return nil, err
	}
	var drafts []newsDraft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}

	articles := make([]NewsArticle, 0, len(drafts))
	for i, draft := range drafts {
		title := strings.TrimSpace(draft.Title)
		if title == "" {
			continue
		}
		article := NewsArticle{
			ID:       string(draft.ID),
			Title:    title,
			Summary:  strings.TrimSpace(draft.Summary),
			URL:      strings.TrimSpace(draft.URL),
			Category: strings.TrimSpace(draft.Category),
			Date:     strings.TrimSpace(draft.Date),
			Image:    strings.TrimSpace(draft.Image),
		}
		if article.ID == "" {
			article.ID = "news-" + strconv.Itoa(i)
		}
		if i < len(generation.SourceURIs) && generation.SourceURIs[i] != "" {
			article.URL = generation.SourceURIs[i]
		}
		if article.URL == "" {
			article.URL = "https://google.com/search?q=" + url.QueryEscape(title)
		}
		if article.Date == "" {
			article.Date = today
		}
		if article.Category == "" {
			article.Category = newsCategoryVenezuela
			if i < 3 {
				article.Category = newsCategoryTech
			}
		}
		articles = append(articles, article)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles in model answer")
	}
	return articles, nil
}

// extractJSONArray returns the outermost JSON array in text, tolerating
// markdown code fences and prose around it.
func extractJSONArray(text string) ([]byte, error) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end < start {
		return nil, fmt.Errorf("no json array in model answer")
	}
	return []byte(text[start : end+1]), nil
}
