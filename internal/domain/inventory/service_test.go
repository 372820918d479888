package inventory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/edudigital/portal/pkg/errors"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*service, *fakeRepo) {
	repo := &fakeRepo{}
	seq := 0
	svc := newService(repo, func() time.Time { return fixedNow }, func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func validForm() Form {
	return Form{
		Module:   ModuleCourses,
		Title:    "Curso (Básico) de #Redes*",
		CoverURL: "https://img.example/cover.jpg",
		Links:    "https://a.example , https://b.example,",
	}
}

func TestSaveInsertAppliesDefaults(t *testing.T) {
	svc, _ := newTestService()

	entry, err := svc.Save(context.Background(), validForm(), "")
	require.NoError(t, err)
	require.Equal(t, OperationInsert, entry.Operation)
	require.Equal(t, "id-1", entry.ID())
	require.Equal(t, "Curso Básico de Redes", entry.Payload.Metadata.Title)
	require.Equal(t, "General", entry.Payload.Metadata.Category)
	require.Equal(t, "Cursos", entry.Payload.Metadata.SubLabel)
	require.Equal(t, "N/A", entry.Payload.Metadata.Duration)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, entry.Payload.Resources.Links)
	require.Equal(t, fixedNow, entry.CreatedAt)
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Form)
		wantMsg string
	}{
		{name: "missing title", mutate: func(f *Form) { f.Title = "" }, wantMsg: msgTitleRequired},
		{name: "title only symbols", mutate: func(f *Form) { f.Title = "(#*)" }, wantMsg: msgTitleRequired},
		{name: "book without category", mutate: func(f *Form) { f.Module = ModuleBooks }, wantMsg: msgCategoryRequired},
		{name: "missing cover", mutate: func(f *Form) { f.CoverURL = " " }, wantMsg: msgResourceRequired},
		{name: "missing links", mutate: func(f *Form) { f.Links = " , " }, wantMsg: msgResourceRequired},
		{name: "unknown module", mutate: func(f *Form) { f.Module = "Juegos" }, wantMsg: msgUnknownModule},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService()
			form := validForm()
			tt.mutate(&form)

			_, err := svc.Save(context.Background(), form, "")
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
			require.EqualError(t, err, tt.wantMsg)
			require.Empty(t, repo.entries)
		})
	}
}

func TestSaveUpdate(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Save(context.Background(), validForm(), "")
	require.NoError(t, err)

	form := validForm()
	form.Module = ModuleBooks
	form.Category = "Historia"
	form.Title = "Memorias del Libertador"
	updated, err := svc.Save(context.Background(), form, created.ID())
	require.NoError(t, err)
	require.Equal(t, OperationUpdate, updated.Operation)
	require.Equal(t, created.ID(), updated.ID())
	require.Equal(t, "Libros", updated.Payload.Metadata.SubLabel)

	history, err := svc.Section(context.Background(), SectionHistory)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = svc.Save(context.Background(), form, "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestFind(t *testing.T) {
	svc, _ := newTestService()
	first, err := svc.Save(context.Background(), validForm(), "")
	require.NoError(t, err)
	form := validForm()
	form.Title = "Guión Audiovisual"
	second, err := svc.Save(context.Background(), form, "")
	require.NoError(t, err)

	found, err := svc.Find(context.Background(), "guión")
	require.NoError(t, err)
	require.Equal(t, second.ID(), found.ID())

	found, err = svc.Find(context.Background(), "(REDES)")
	require.NoError(t, err)
	require.Equal(t, first.ID(), found.ID())

	found, err = svc.Find(context.Background(), second.ID())
	require.NoError(t, err)
	require.Equal(t, second.ID(), found.ID())

	_, err = svc.Find(context.Background(), "astronomía")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = svc.Find(context.Background(), " ## ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestDeleteAndSections(t *testing.T) {
	svc, _ := newTestService()
	course, err := svc.Save(context.Background(), validForm(), "")
	require.NoError(t, err)
	movie := validForm()
	movie.Module = ModuleCinema
	_, err = svc.Save(context.Background(), movie, "")
	require.NoError(t, err)

	courses, err := svc.Section(context.Background(), SectionCourses)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	cinema, err := svc.Section(context.Background(), SectionCinema)
	require.NoError(t, err)
	require.Len(t, cinema, 1)

	library, err := svc.Section(context.Background(), SectionLibrary)
	require.NoError(t, err)
	require.NotNil(t, library)
	require.Empty(t, library)

	require.NoError(t, svc.Delete(context.Background(), course.ID()))
	err = svc.Delete(context.Background(), course.ID())
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = svc.Section(context.Background(), "games")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestSanitizeTitle(t *testing.T) {
	require.Equal(t, "Hola Mundo", SanitizeTitle("  (Hola) #Mundo$@%^&*  "))
	require.Equal(t, "Año 1810: Independencia!", SanitizeTitle("Año 1810: Independencia!"))
}

type fakeRepo struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *fakeRepo) Create(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID() == entry.ID() {
			r.entries[i] = entry
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) Get(_ context.Context, id string) (Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID() == id {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID() == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
