package assistant

import "time"

// Config bounds assistant sessions.
type Config struct {
	MaxDocumentBytes int64
	SessionTTL       time.Duration
}

// Role identifies the author of a transcript message.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is a single transcript line.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsSummary bool      `json:"isSummary,omitempty"`
}

// Document is the text currently loaded into a session.
type Document struct {
	FileName string    `json:"fileName"`
	Text     string    `json:"text"`
	Bytes    int       `json:"bytes"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Session is one chat with its transcript and current document.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	Document  *Document `json:"document,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasDocument reports whether a non-empty document is loaded.
func (s Session) HasDocument() bool {
	return s.Document != nil && s.Document.Text != ""
}

// SessionView is the public shape of a session; the document body is omitted.
type SessionView struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	FileName  string    `json:"fileName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View converts the session for transport.
func (s Session) View() SessionView {
	view := SessionView{
		ID:        s.ID,
		Messages:  s.Messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Document != nil {
		view.FileName = s.Document.FileName
	}
	return view
}

// MessageRequest is the chat input payload.
type MessageRequest struct {
	Text string `json:"text"`
}

// MessageResponse returns the assistant reply and the updated session.
type MessageResponse struct {
	Reply   Message     `json:"reply"`
	Session SessionView `json:"session"`
}
