package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/edudigital/portal/internal/domain/assistant"
)

// ValkeyStore persists sessions as JSON documents in Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "assistant"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

// Get implements assistant.Store.
func (s *ValkeyStore) Get(ctx context.Context, id string) (assistant.Session, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return assistant.Session{}, false, nil
		}
		return assistant.Session{}, false, err
	}
	var session assistant.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return assistant.Session{}, false, err
	}
	return session, true, nil
}

// Save implements assistant.Store.
func (s *ValkeyStore) Save(ctx context.Context, session assistant.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(session.ID)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Delete implements assistant.Store.
func (s *ValkeyStore) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(id)).Build()).Error()
}

func (s *ValkeyStore) key(id string) string {
	return s.prefix + ":session:" + id
}

var _ assistant.Store = (*ValkeyStore)(nil)
