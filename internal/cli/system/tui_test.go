package system

import (
	"testing"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

func TestTuiCmd_Options(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	w := models.Workshop{ID: cli.NewID(), Name: "Terminale", CreatedAt: time.Now()}
	s := models.Session{ID: cli.NewID(), WorkshopID: w.ID, Name: "Ondes", CreatedAt: time.Now()}
	if err := ctx.Store.AddWorkshop(w); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.AddSession(s); err != nil {
		t.Fatal(err)
	}

	opts, wait, err := (&TuiCmd{Session: "ondes", Context: "none"}).options(ctx)
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	if opts.SessionID != s.ID || opts.Context != "none" || opts.Location == nil {
		t.Errorf("options = %+v", opts)
	}
	if ls := opts.Listeners(s.ID); len(ls) != 1 {
		t.Errorf("%d listeners, want the log listener only", len(ls))
	}
	wait()

	if _, _, err := (&TuiCmd{Session: "missing"}).options(ctx); err == nil {
		t.Error("options() should fail for an unknown session")
	}
}
