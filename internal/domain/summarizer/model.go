package summarizer

// Config configures the summarizer service.
type Config struct {
	MaxInputBytes int
	MaxKeywords   int
}

// Request represents the incoming summarization payload.
type Request struct {
	Text string `json:"text"`
}

// Response is returned by the sync endpoint.
type Response struct {
	Sentences   []string `json:"sentences"`
	Keywords    []string `json:"keywords"`
	Passthrough bool     `json:"passthrough"`
	DurationMs  int64    `json:"durationMs,omitempty"`
}

// StreamChunk represents a streaming update. Sentence chunks arrive in
// summary order; the last chunk has Completed set and carries the keywords.
type StreamChunk struct {
	Index     int      `json:"index"`
	Sentence  string   `json:"sentence,omitempty"`
	Completed bool     `json:"completed"`
	Keywords  []string `json:"keywords,omitempty"`
}
