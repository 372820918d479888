package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/edudigital/portal/pkg/errors"
)

const longDocument = "Las aves migran cada año. El cambio climático afecta las rutas migratorias. " +
	"Los científicos estudian patrones climáticos globales. La migración depende de la temperatura oceánica. " +
	"Nuevas tecnologías satelitales rastrean especies migratorias."

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *service {
	t.Helper()
	return newService(
		Config{MaxDocumentBytes: 1024, SessionTTL: time.Hour},
		newFakeStore(),
		fakeExtractor{},
		func() time.Time { return testNow },
		func() string { return "session-1" },
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestCreateSessionStartsWithWelcome(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, "session-1", session.ID)
	require.Len(t, session.Messages, 1)
	require.Equal(t, RoleAssistant, session.Messages[0].Role)
	require.Contains(t, session.Messages[0].Content, "¡Bienvenido al Asistente Lógico de EduDigital!")
	require.False(t, session.HasDocument())
}

func TestSendMessageIntents(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "greeting", text: "Hola, ¿qué tal?", want: greetingMessage},
		{name: "greeting wins over summary", text: "hola, dame un resumen", want: greetingMessage},
		{name: "summary without document", text: "Quiero un RESUMEN", want: noDocumentMessage},
		{name: "resume keyword", text: "resume esto", want: noDocumentMessage},
		{name: "help fallback", text: "¿qué puedes hacer?", want: helpMessage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t)
			_, err := svc.CreateSession(context.Background())
			require.NoError(t, err)

			resp, err := svc.SendMessage(context.Background(), "session-1", "  "+tt.text+" ")
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.Reply.Content)
			require.Len(t, resp.Session.Messages, 3)
			require.Equal(t, Message{Role: RoleUser, Content: tt.text, Timestamp: testNow}, resp.Session.Messages[1])
			require.Equal(t, resp.Reply, resp.Session.Messages[2])
		})
	}
}

func TestSummaryOfLoadedDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	session, err := svc.LoadDocument(ctx, "session-1", "/tmp/aves.txt", []byte(longDocument))
	require.NoError(t, err)
	require.True(t, session.HasDocument())
	require.Equal(t, "aves.txt", session.Document.FileName)
	require.Equal(t, "✅ Documento cargado: **aves.txt**. Ya puedes solicitar el **Resumen Lógico**.",
		session.Messages[len(session.Messages)-1].Content)

	resp, err := svc.SendMessage(ctx, "session-1", "Resumen")
	require.NoError(t, err)
	require.True(t, resp.Reply.IsSummary)
	want := "**Resumen Lógico de: aves.txt**\n\n" +
		"• Nuevas tecnologías satelitales rastrean especies migratorias.\n\n" +
		"• El cambio climático afecta las rutas migratorias.\n\n" +
		"• Los científicos estudian patrones climáticos globales.\n\n" +
		"• La migración depende de la temperatura oceánica.\n\n" +
		"• Las aves migran cada año."
	require.Equal(t, want, resp.Reply.Content)
	require.Equal(t, "aves.txt", resp.Session.FileName)
}

func TestLoadDocumentReplacesPrevious(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.LoadDocument(ctx, "session-1", "a.txt", []byte(longDocument))
	require.NoError(t, err)
	_, err = svc.LoadDocument(ctx, "session-1", "b.txt", []byte("Texto breve."))
	require.NoError(t, err)

	resp, err := svc.SendMessage(ctx, "session-1", "resumen")
	require.NoError(t, err)
	require.Equal(t, "**Resumen Lógico de: b.txt**\n\n• Texto breve.", resp.Reply.Content)
}

func TestLoadDocumentFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.LoadDocument(ctx, "session-1", "big.txt", []byte(strings.Repeat("a", 2048)))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	session, err := svc.LoadDocument(ctx, "session-1", "broken.bin", []byte("x"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, readErrorMessage, session.Messages[len(session.Messages)-1].Content)
	require.False(t, session.HasDocument())

	_, err = svc.LoadDocument(ctx, "missing", "a.txt", []byte("x"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestEmptyDocumentCountsAsMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.LoadDocument(ctx, "session-1", "vacio.txt", []byte{})
	require.NoError(t, err)

	resp, err := svc.SendMessage(ctx, "session-1", "resumen")
	require.NoError(t, err)
	require.Equal(t, noDocumentMessage, resp.Reply.Content)
}

func TestLimpiarResetsSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.LoadDocument(ctx, "session-1", "a.txt", []byte(longDocument))
	require.NoError(t, err)

	resp, err := svc.SendMessage(ctx, "session-1", "limpiar todo")
	require.NoError(t, err)
	require.Equal(t, resetMessage, resp.Reply.Content)
	require.Equal(t, []Message{{Role: RoleAssistant, Content: resetMessage, Timestamp: testNow}}, resp.Session.Messages)
	require.Empty(t, resp.Session.FileName)

	resp, err = svc.SendMessage(ctx, "session-1", "resumen")
	require.NoError(t, err)
	require.Equal(t, noDocumentMessage, resp.Reply.Content)
}

func TestResetAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	session, err := svc.Reset(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 1)
	require.Equal(t, resetMessage, session.Messages[0].Content)

	require.NoError(t, svc.Delete(ctx, "session-1"))
	_, err = svc.Session(ctx, "session-1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.True(t, apperrors.IsCode(svc.Delete(ctx, "session-1"), apperrors.CodeNotFound))
}

func TestSendMessageValidation(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SendMessage(context.Background(), "session-1", "   ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.SendMessage(context.Background(), "unknown", "hola")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestSessionLocksAreReleased(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		id := "nope-" + strings.Repeat("x", i%7) + string(rune('a'+i%26))
		_, err := svc.SendMessage(ctx, id, "hola")
		require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
		_, err = svc.Reset(ctx, id)
		require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	}
	require.Empty(t, svc.locks)

	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SendMessage(ctx, "session-1", "hola")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	session, err := svc.Session(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 1+2*writers)
	require.Empty(t, svc.locks)
}

func TestTranscriptIsCapped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	for i := 0; i < maxTranscript; i++ {
		_, err := svc.SendMessage(ctx, "session-1", "hola")
		require.NoError(t, err)
	}
	session, err := svc.Session(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, session.Messages, maxTranscript)
	require.Equal(t, greetingMessage, session.Messages[maxTranscript-1].Content)
}

type fakeExtractor struct{}

func (fakeExtractor) Extract(_ context.Context, fileName string, content []byte) (string, error) {
	if strings.HasSuffix(fileName, ".bin") {
		return "", errors.New("unsupported binary")
	}
	return string(content), nil
}

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]Session)}
}

func (s *fakeStore) Get(_ context.Context, id string) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok, nil
}

func (s *fakeStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
