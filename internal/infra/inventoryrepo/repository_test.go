package inventoryrepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edudigital/portal/internal/domain/inventory"
)

func entry(id string, module inventory.Module, category string) inventory.Entry {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return inventory.Entry{
		Operation: inventory.OperationInsert,
		Module:    module,
		Payload: inventory.Payload{
			ID: id,
			Metadata: inventory.Metadata{
				Title:    "Titulo " + id,
				Category: category,
				SubLabel: string(module),
				Duration: "N/A",
			},
			Resources: inventory.Resources{
				CoverURL: "https://img.example/" + id,
				Links:    []string{"https://a.example/" + id, "https://b.example/" + id},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func exerciseRepository(t *testing.T, repo inventory.Repository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entry("a", inventory.ModuleBooks, "Historia")))
	require.NoError(t, repo.Create(ctx, entry("b", inventory.ModuleCinema, "General")))
	require.NoError(t, repo.Create(ctx, entry("c", inventory.ModuleBooks, "Ciencia")))

	got, ok, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry("a", inventory.ModuleBooks, "Historia"), got)

	_, ok, err = repo.Get(ctx, "zzz")
	require.NoError(t, err)
	require.False(t, ok)

	all, err := repo.List(ctx, inventory.Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids(all))

	books, err := repo.List(ctx, inventory.Filter{Module: inventory.ModuleBooks})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, ids(books))

	history, err := repo.List(ctx, inventory.Filter{Module: inventory.ModuleBooks, Category: "Historia"})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(history))

	updated := entry("a", inventory.ModuleCourses, "General")
	updated.Operation = inventory.OperationUpdate
	updated.Payload.Resources.Links = []string{"https://new.example"}
	require.NoError(t, repo.Update(ctx, updated))
	got, _, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, inventory.ModuleCourses, got.Module)
	require.Equal(t, []string{"https://new.example"}, got.Payload.Resources.Links)

	all, err = repo.List(ctx, inventory.Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids(all))

	require.ErrorIs(t, repo.Update(ctx, entry("missing", inventory.ModuleBooks, "x")), inventory.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "b"))
	require.ErrorIs(t, repo.Delete(ctx, "b"), inventory.ErrNotFound)
	all, err = repo.List(ctx, inventory.Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, ids(all))
}

func ids(entries []inventory.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID())
	}
	return out
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entry("a", inventory.ModuleBooks, "Historia")))

	got, _, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.Payload.Resources.Links[0] = "mutated"

	again, _, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "https://a.example/a", again.Payload.Resources.Links[0])
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := OpenSQLiteRepository(filepath.Join(t.TempDir(), "nested", "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	exerciseRepository(t, repo)
}

func TestSQLiteRepositoryRejectsMalformedTimestamps(t *testing.T) {
	repo, err := OpenSQLiteRepository(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entry("e-1", inventory.ModuleBooks, "Historia")))
	_, err = repo.db.ExecContext(ctx, `UPDATE inventory_entries SET updated_at = 'ayer' WHERE id = ?`, "e-1")
	require.NoError(t, err)

	_, _, err = repo.Get(ctx, "e-1")
	require.ErrorContains(t, err, "decode updated_at for e-1")

	_, err = repo.List(ctx, inventory.Filter{})
	require.ErrorContains(t, err, "decode updated_at for e-1")
}
