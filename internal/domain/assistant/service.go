package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edudigital/portal/internal/domain/summarizer"
	apperrors "github.com/edudigital/portal/pkg/errors"
	"github.com/edudigital/portal/pkg/util"
)

// maxTranscript caps the stored messages; the oldest are dropped first.
const maxTranscript = 200

// Service drives the document chat.
type Service interface {
	CreateSession(ctx context.Context) (Session, error)
	Session(ctx context.Context, id string) (Session, error)
	LoadDocument(ctx context.Context, id, fileName string, content []byte) (Session, error)
	SendMessage(ctx context.Context, id, text string) (MessageResponse, error)
	Reset(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	cfg       Config
	store     Store
	extractor Extractor
	now       util.Clock
	newID     func() string
	locksMu   sync.Mutex
	locks     map[string]*sessionLock
	logger    *slog.Logger
}

// sessionLock is held by at most one writer; refs counts the callers
// holding or waiting on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService is a wire provider for the assistant domain.
func NewService(cfg Config, store Store, extractor Extractor, logger *slog.Logger) Service {
	return newService(cfg, store, extractor, util.NowUTC, func() string { return uuid.New().String() }, logger)
}

func newService(cfg Config, store Store, extractor Extractor, now util.Clock, newID func() string, logger *slog.Logger) *service {
	return &service{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		now:       now.OrDefault(),
		newID:     newID,
		locks:     make(map[string]*sessionLock),
		logger:    logger.With("component", "assistant.service"),
	}
}

func (s *service) CreateSession(ctx context.Context) (Session, error) {
	now := s.now()
	session := Session{
		ID:        s.newID(),
		Messages:  []Message{{Role: RoleAssistant, Content: welcomeMessage, Timestamp: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store session", err)
	}
	s.logger.Debug("assistant session created", "session", session.ID)
	return session, nil
}

func (s *service) Session(ctx context.Context, id string) (Session, error) {
	return s.load(ctx, id)
}

func (s *service) LoadDocument(ctx context.Context, id, fileName string, content []byte) (Session, error) {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "file name is required", nil)
	}
	if s.cfg.MaxDocumentBytes > 0 && int64(len(content)) > s.cfg.MaxDocumentBytes {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("document exceeds %d bytes", s.cfg.MaxDocumentBytes), nil)
	}

	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return Session{}, err
	}

	text, extractErr := s.extractor.Extract(ctx, fileName, content)
	now := s.now()
	if extractErr != nil {
		s.logger.Warn("document extraction failed", "session", id, "file", fileName, "error", extractErr)
		s.append(&session, Message{Role: RoleAssistant, Content: readErrorMessage, Timestamp: now})
		if err := s.save(ctx, &session); err != nil {
			return Session{}, err
		}
		return session, apperrors.Wrap(apperrors.CodeInvalidInput, "unable to read "+fileName, extractErr)
	}

	session.Document = &Document{
		FileName: fileName,
		Text:     text,
		Bytes:    len(content),
		LoadedAt: now,
	}
	s.append(&session, Message{Role: RoleAssistant, Content: fmt.Sprintf(loadedMessage, fileName), Timestamp: now})
	if err := s.save(ctx, &session); err != nil {
		return Session{}, err
	}
	s.logger.Info("document loaded", "session", id, "file", fileName, "bytes", len(content), "chars", len(text))
	return session, nil
}

func (s *service) SendMessage(ctx context.Context, id, text string) (MessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return MessageResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "message cannot be empty", nil)
	}

	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return MessageResponse{}, err
	}

	now := s.now()
	s.append(&session, Message{Role: RoleUser, Content: text, Timestamp: now})

	var (
		reply    Message
		appendIt = true
	)
	switch classify(text) {
	case intentGreeting:
		reply = Message{Role: RoleAssistant, Content: greetingMessage, Timestamp: now}
	case intentSummary:
		reply = s.summaryReply(session, now)
	case intentReset:
		session = s.reset(session)
		reply, appendIt = session.Messages[0], false
	default:
		reply = Message{Role: RoleAssistant, Content: helpMessage, Timestamp: now}
	}
	if appendIt {
		s.append(&session, reply)
	}

	if err := s.save(ctx, &session); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Reply: reply, Session: session.View()}, nil
}

func (s *service) Reset(ctx context.Context, id string) (Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	session = s.reset(session)
	if err := s.save(ctx, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete session", err)
	}
	return nil
}

func (s *service) summaryReply(session Session, now time.Time) Message {
	if !session.HasDocument() {
		return Message{Role: RoleAssistant, Content: noDocumentMessage, Timestamp: now}
	}
	points := summarizer.Summarize(session.Document.Text)
	bullets := make([]string, 0, len(points))
	for _, p := range points {
		bullets = append(bullets, summaryBullet+p)
	}
	return Message{
		Role:      RoleAssistant,
		Content:   fmt.Sprintf(summaryHeader, session.Document.FileName) + strings.Join(bullets, "\n\n"),
		Timestamp: now,
		IsSummary: true,
	}
}

func (s *service) reset(session Session) Session {
	now := s.now()
	session.Document = nil
	session.Messages = []Message{{Role: RoleAssistant, Content: resetMessage, Timestamp: now}}
	return session
}

func (s *service) append(session *Session, msg Message) {
	session.Messages = append(session.Messages, msg)
	if over := len(session.Messages) - maxTranscript; over > 0 {
		session.Messages = append([]Message(nil), session.Messages[over:]...)
	}
}

func (s *service) load(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "session id is required", nil)
	}
	session, found, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load session", err)
	}
	if !found {
		return Session{}, apperrors.Wrap(apperrors.CodeNotFound, "session "+id+" not found", nil)
	}
	return session, nil
}

func (s *service) save(ctx context.Context, session *Session) error {
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *session); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to store session", err)
	}
	return nil
}

// lock serializes read-modify-write cycles on one session within this process.
// The entry is dropped once the last holder releases it.
func (s *service) lock(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}
