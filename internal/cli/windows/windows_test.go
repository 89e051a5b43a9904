package windows

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

func TestWindowCommands(t *testing.T) {
	ctx := setupTestDB(t)

	for _, cmd := range []*WindowAddCmd{
		{Label: "P2", Start: "09:00", End: "09:55", Context: "lycee"},
		{Label: "P1", Start: "08:00", End: "08:55", Context: "lycee"},
		{Label: "Soir", Start: "18:00", End: "19:30", Context: "fac"},
	} {
		if err := cmd.Validate(); err != nil {
			t.Fatalf("Validate(%s) error = %v", cmd.Label, err)
		}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("add %s failed: %v", cmd.Label, err)
		}
	}

	lycee, err := ctx.Store.GetScheduleWindows("lycee")
	if err != nil {
		t.Fatal(err)
	}
	if len(lycee) != 2 || lycee[0].Label != "P1" || lycee[1].Label != "P2" {
		t.Fatalf("lycee windows = %+v, want P1 then P2", lycee)
	}

	if err := (&WindowListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if err := (&WindowListCmd{Context: "fac", ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list by context failed: %v", err)
	}

	if err := (&WindowDeleteCmd{ID: lycee[0].ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&WindowDeleteCmd{ID: lycee[0].ID}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestWindowAdd_Invalid(t *testing.T) {
	tests := []*WindowAddCmd{
		{Label: "P1", Start: "09:00", End: "08:00", Context: "lycee"},
		{Label: "P1", Start: "nine", End: "10:00", Context: "lycee"},
		{Label: "", Start: "09:00", End: "10:00", Context: "lycee"},
	}
	for _, cmd := range tests {
		if err := cmd.Validate(); err == nil {
			t.Errorf("Validate() accepted %+v", cmd)
		}
	}
}
