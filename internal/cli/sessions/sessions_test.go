package sessions

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, models.Workshop) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	w := models.Workshop{ID: cli.NewID(), Name: "Première", CreatedAt: time.Now()}
	if err := store.AddWorkshop(w); err != nil {
		t.Fatal(err)
	}
	return &cli.Context{Store: store}, w
}

func TestSessionCommands(t *testing.T) {
	ctx, w := setupTestDB(t)

	if err := (&SessionAddCmd{Workshop: "première", Name: "Optique"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	sessions, err := ctx.Store.GetSessionsForWorkshop(w.ID)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("sessions = %v, err = %v", sessions, err)
	}
	sess := sessions[0]

	seg := models.Segment{ID: cli.NewID(), SessionID: sess.ID, Title: "Intro", PlannedDurationSec: 300, Work: "Lecture"}
	if err := ctx.Store.AddSegment(seg); err != nil {
		t.Fatal(err)
	}

	for name, cmd := range map[string]interface{ Run(*cli.Context) error }{
		"list":             &SessionListCmd{},
		"list by workshop": &SessionListCmd{Workshop: w.ID, ShowIDs: true},
		"show":             &SessionShowCmd{Session: "Optique"},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("%s failed: %v", name, err)
		}
	}

	if err := (&SessionDeleteCmd{Session: sess.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetSegment(seg.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("segment survived its session: err = %v", err)
	}
}

func TestSessionAdd_UnknownWorkshop(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&SessionAddCmd{Workshop: "Terminale", Name: "Optique"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
