package assistant

import "context"

// Store persists sessions. Save refreshes the expiry of the session.
type Store interface {
	Get(ctx context.Context, id string) (Session, bool, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}

// Extractor turns an uploaded file into plain text, choosing the decoder
// from the file name extension.
type Extractor interface {
	Extract(ctx context.Context, fileName string, content []byte) (string, error)
}
