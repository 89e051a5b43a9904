package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://classtimer_user@localhost:5432/classtimer_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Cleanup(func() {
		store.db.Exec("DELETE FROM segments")
		store.db.Exec("DELETE FROM sessions")
		store.db.Exec("DELETE FROM workshops")
		store.db.Exec("DELETE FROM schedule_windows")
	})

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		settings.ResetPolicy = constants.ResetPolicyCurrent
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.ResetPolicy != constants.ResetPolicyCurrent {
			t.Errorf("ResetPolicy = %s, want current", updated.ResetPolicy)
		}
	})

	t.Run("Catalog", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		if err := store.AddWorkshop(models.Workshop{ID: "pg-w1", Name: "Chimie", CreatedAt: now}); err != nil {
			t.Fatalf("AddWorkshop failed: %v", err)
		}
		if err := store.AddSession(models.Session{ID: "pg-s1", WorkshopID: "pg-w1", Name: "Titrage", CreatedAt: now}); err != nil {
			t.Fatalf("AddSession failed: %v", err)
		}
		for _, title := range []string{"Intro", "Manip", "Bilan"} {
			seg := models.Segment{ID: "pg-" + title, SessionID: "pg-s1", Title: title, PlannedDurationSec: 600}
			if err := store.AddSegment(seg); err != nil {
				t.Fatalf("AddSegment(%s) failed: %v", title, err)
			}
		}

		segs, err := store.GetSegmentsForSession("pg-s1")
		if err != nil {
			t.Fatalf("GetSegmentsForSession failed: %v", err)
		}
		if len(segs) != 3 || segs[0].Title != "Intro" || segs[2].Position != 2 {
			t.Errorf("segments = %+v, want Intro..Bilan at positions 0..2", segs)
		}

		if err := store.DeleteWorkshop("pg-w1"); err != nil {
			t.Fatalf("DeleteWorkshop failed: %v", err)
		}
		if _, err := store.GetSegment("pg-Intro"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("segment survived cascade: %v", err)
		}
	})

	t.Run("Windows", func(t *testing.T) {
		for _, w := range []models.ScheduleWindow{
			{ID: "pg-p2", Context: "pg", Label: "P2", Start: "09:00", End: "09:55"},
			{ID: "pg-p1", Context: "pg", Label: "P1", Start: "08:00", End: "08:55"},
		} {
			if err := store.AddScheduleWindow(w); err != nil {
				t.Fatalf("AddScheduleWindow failed: %v", err)
			}
		}
		got, err := store.GetScheduleWindows("pg")
		if err != nil {
			t.Fatalf("GetScheduleWindows failed: %v", err)
		}
		if len(got) != 2 || got[0].Label != "P1" {
			t.Errorf("windows = %+v, want P1 first", got)
		}
	})
}
