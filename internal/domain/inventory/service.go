package inventory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/edudigital/portal/pkg/errors"
	"github.com/edudigital/portal/pkg/util"
)

// Validation messages shown to console operators.
const (
	msgTitleRequired    = "El Título es obligatorio para el mapeo JSON."
	msgCategoryRequired = "¿Bajo qué periodo histórico o categoría guardamos este libro?"
	msgResourceRequired = "Se requiere URL de Portada y al menos un Link de acceso."
	msgUnknownModule    = "Módulo no soportado."
)

const (
	defaultCategory = "General"
	defaultDuration = "N/A"
)

// Service manages the admin curated inventory.
type Service interface {
	// Save inserts a new entry when editID is empty, otherwise updates that entry.
	Save(ctx context.Context, form Form, editID string) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Find(ctx context.Context, query string) (Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Entry, error)
	Section(ctx context.Context, section Section) ([]Entry, error)
}

type service struct {
	repo   Repository
	now    util.Clock
	newID  func() string
	logger *slog.Logger
}

// NewService is a wire provider for the inventory domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return newService(repo, util.NowUTC, func() string { return uuid.New().String() }, logger)
}

func newService(repo Repository, now util.Clock, newID func() string, logger *slog.Logger) *service {
	return &service{
		repo:   repo,
		now:    now.OrDefault(),
		newID:  newID,
		logger: logger.With("component", "inventory.service"),
	}
}

func (s *service) Save(ctx context.Context, form Form, editID string) (Entry, error) {
	payload, err := buildPayload(form)
	if err != nil {
		return Entry{}, err
	}

	now := s.now()
	editID = strings.TrimSpace(editID)
	if editID == "" {
		payload.ID = s.newID()
		entry := Entry{
			Operation: OperationInsert,
			Module:    form.Module,
			Payload:   payload,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, entry); err != nil {
			return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store entry", err)
		}
		s.logger.Info("inventory entry created", "id", entry.ID(), "module", entry.Module)
		return entry, nil
	}

	existing, found, err := s.repo.Get(ctx, editID)
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load entry", err)
	}
	if !found {
		return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "entry "+editID+" not found", nil)
	}
	payload.ID = existing.ID()
	entry := Entry{
		Operation: OperationUpdate,
		Module:    form.Module,
		Payload:   payload,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now,
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "entry "+editID+" not found", err)
		}
		return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update entry", err)
	}
	s.logger.Info("inventory entry updated", "id", entry.ID(), "module", entry.Module)
	return entry, nil
}

func (s *service) Get(ctx context.Context, id string) (Entry, error) {
	entry, found, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load entry", err)
	}
	if !found {
		return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "entry "+id+" not found", nil)
	}
	return entry, nil
}

// Find matches the sanitized, lowercased query against titles, or the raw
// query against ids. The first match in insertion order wins.
func (s *service) Find(ctx context.Context, query string) (Entry, error) {
	raw := strings.TrimSpace(query)
	needle := strings.ToLower(SanitizeTitle(query))
	if needle == "" {
		return Entry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "search query cannot be empty", nil)
	}
	entries, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to list entries", err)
	}
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Payload.Metadata.Title), needle) || entry.ID() == raw {
			return entry, nil
		}
	}
	return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "Recurso \""+raw+"\" no encontrado.", nil)
}

func (s *service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "entry "+id+" not found", err)
		}
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete entry", err)
	}
	s.logger.Info("inventory entry deleted", "id", id)
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Entry, error) {
	if filter.Module != "" && !filter.Module.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, msgUnknownModule, nil)
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list entries", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *service) Section(ctx context.Context, section Section) ([]Entry, error) {
	filter, ok := SectionFilter(section)
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown section "+string(section), nil)
	}
	return s.List(ctx, filter)
}

// SectionFilter maps a public section onto the entries it shows.
func SectionFilter(section Section) (Filter, bool) {
	switch section {
	case SectionLibrary:
		return Filter{Module: ModuleBooks}, true
	case SectionCinema:
		return Filter{Module: ModuleCinema}, true
	case SectionHistory:
		return Filter{Module: ModuleBooks, Category: HistoryCategory}, true
	case SectionCourses:
		return Filter{Module: ModuleCourses}, true
	}
	return Filter{}, false
}

func buildPayload(form Form) (Payload, error) {
	if !form.Module.Valid() {
		return Payload{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgUnknownModule, nil)
	}
	title := SanitizeTitle(form.Title)
	if title == "" {
		return Payload{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgTitleRequired, nil)
	}
	category := strings.TrimSpace(form.Category)
	if form.Module == ModuleBooks && category == "" {
		return Payload{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgCategoryRequired, nil)
	}
	cover := strings.TrimSpace(form.CoverURL)
	links := splitLinks(form.Links)
	if cover == "" || len(links) == 0 {
		return Payload{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgResourceRequired, nil)
	}

	return Payload{
		Metadata: Metadata{
			Title:    title,
			Category: orDefault(category, defaultCategory),
			SubLabel: orDefault(strings.TrimSpace(form.SubLabel), string(form.Module)),
			Duration: orDefault(strings.TrimSpace(form.Duration), defaultDuration),
		},
		Resources: Resources{
			CoverURL: cover,
			Links:    links,
		},
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
