package workshops

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func TestWorkshopAddListDelete(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&WorkshopAddCmd{Name: "Seconde B", Description: "Physique"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	workshops, err := ctx.Store.GetAllWorkshops()
	if err != nil {
		t.Fatal(err)
	}
	if len(workshops) != 1 || workshops[0].Name != "Seconde B" || workshops[0].Description != "Physique" {
		t.Fatalf("workshops = %+v", workshops)
	}

	if err := (&WorkshopListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	if err := (&WorkshopDeleteCmd{Workshop: "seconde b"}).Run(ctx); err != nil {
		t.Fatalf("delete by name failed: %v", err)
	}
	if _, err := ctx.Store.GetWorkshop(workshops[0].ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("workshop still present: err = %v", err)
	}
}

func TestWorkshopAdd_EmptyName(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&WorkshopAddCmd{Name: "  "}).Run(ctx); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestWorkshopDelete_Missing(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&WorkshopDeleteCmd{Workshop: "ghost"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
