package inventory

import "time"

// Module names a public section an entry feeds.
type Module string

const (
	ModuleCourses Module = "Cursos"
	ModuleCinema  Module = "Cine"
	ModuleBooks   Module = "Libros"
	ModuleMusic   Module = "Musica"
)

// Valid reports whether m is one of the known modules.
func (m Module) Valid() bool {
	switch m {
	case ModuleCourses, ModuleCinema, ModuleBooks, ModuleMusic:
		return true
	}
	return false
}

// Operation records whether the last save created or edited the entry.
type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
)

// Section is a public browsing view over the inventory.
type Section string

const (
	SectionLibrary Section = "library"
	SectionCinema  Section = "cinema"
	SectionHistory Section = "history"
	SectionCourses Section = "courses"
)

// HistoryCategory marks books that also appear in the history section.
const HistoryCategory = "Historia"

// Entry is a persisted management payload.
type Entry struct {
	Operation Operation `json:"operacion"`
	Module    Module    `json:"modulo"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ID is a shortcut for Payload.ID.
func (e Entry) ID() string { return e.Payload.ID }

// Payload carries the entry body.
type Payload struct {
	ID        string    `json:"id"`
	Metadata  Metadata  `json:"metadata"`
	Resources Resources `json:"recursos"`
}

// Metadata describes the resource.
type Metadata struct {
	Title    string `json:"titulo"`
	Category string `json:"categoria_principal"`
	SubLabel string `json:"sub_etiqueta"`
	Duration string `json:"duracion_o_extension"`
}

// Resources lists the cover image and access links.
type Resources struct {
	CoverURL string   `json:"url_portada"`
	Links    []string `json:"enlaces"`
}

// Form is the raw console input. Links is a comma separated list.
type Form struct {
	Module   Module `json:"modulo"`
	Title    string `json:"titulo"`
	Category string `json:"categoria"`
	SubLabel string `json:"subEtiqueta"`
	Duration string `json:"duracion"`
	CoverURL string `json:"urlPortada"`
	Links    string `json:"enlaces"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Module   Module
	Category string
}

// Matches reports whether e passes the filter.
func (f Filter) Matches(e Entry) bool {
	if f.Module != "" && e.Module != f.Module {
		return false
	}
	if f.Category != "" && e.Payload.Metadata.Category != f.Category {
		return false
	}
	return true
}
