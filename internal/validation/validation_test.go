package validation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage/sqlite"
)

func types(result ValidationResult) map[ConflictType]int {
	out := map[ConflictType]int{}
	for _, c := range result.Conflicts {
		out[c.Type]++
	}
	return out
}

func TestValidate_Sessions(t *testing.T) {
	c := Catalog{
		Workshops: []models.Workshop{{ID: "w1", Name: "Seconde"}},
		Sessions: []models.Session{
			{ID: "s1", WorkshopID: "w1", Name: "TP"},
			{ID: "s2", WorkshopID: "w1", Name: "tp"},
			{ID: "s3", WorkshopID: "gone", Name: "Orpheline"},
		},
		Segments: map[string][]models.Segment{
			"s1": {{ID: "g1", SessionID: "s1", Title: "Intro", PlannedDurationSec: 60}},
			"s2": {{ID: "g2", SessionID: "s2", Title: "Broken", PlannedDurationSec: 0}},
		},
	}

	result := New().Validate(c)
	got := types(result)
	want := map[ConflictType]int{
		ConflictDuplicateSessionName: 1,
		ConflictInvalidSegment:       1,
		ConflictMissingWorkshop:      1,
		ConflictEmptySession:         1,
	}
	for typ, n := range want {
		if got[typ] != n {
			t.Errorf("%s conflicts = %d, want %d (all: %v)", typ, got[typ], n, got)
		}
	}

	dup := result.Filter(func(c Conflict) bool { return c.Type == ConflictDuplicateSessionName })
	if len(dup) != 1 || len(dup[0].IDs) != 2 {
		t.Errorf("duplicate conflict = %+v", dup)
	}
}

func TestValidate_Windows(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.ScheduleWindow
		want    map[ConflictType]int
	}{
		{
			name: "back to back",
			windows: []models.ScheduleWindow{
				{Context: "lycee", Label: "P2", Start: "09:00", End: "10:00"},
				{Context: "lycee", Label: "P1", Start: "08:00", End: "09:00"},
			},
			want: map[ConflictType]int{},
		},
		{
			name: "overlap",
			windows: []models.ScheduleWindow{
				{Context: "lycee", Label: "P1", Start: "08:00", End: "09:10"},
				{Context: "lycee", Label: "P2", Start: "09:00", End: "10:00"},
			},
			want: map[ConflictType]int{ConflictOverlappingWindows: 1},
		},
		{
			name: "different contexts",
			windows: []models.ScheduleWindow{
				{Context: "fac", Label: "TD", Start: "08:00", End: "10:00"},
				{Context: "lycee", Label: "P1", Start: "09:00", End: "10:00"},
			},
			want: map[ConflictType]int{},
		},
		{
			name: "inverted window",
			windows: []models.ScheduleWindow{
				{Context: "lycee", Label: "Bad", Start: "11:00", End: "10:00"},
				{Context: "lycee", Label: "P1", Start: "09:00", End: "10:00"},
			},
			want: map[ConflictType]int{ConflictInvalidWindow: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(New().Validate(Catalog{Windows: tt.windows}))
			if len(got) != len(tt.want) {
				t.Fatalf("conflicts = %v, want %v", got, tt.want)
			}
			for typ, n := range tt.want {
				if got[typ] != n {
					t.Errorf("%s conflicts = %d, want %d", typ, got[typ], n)
				}
			}
		})
	}
}

func TestBlocking(t *testing.T) {
	blocking := map[ConflictType]bool{
		ConflictInvalidSegment:       true,
		ConflictInvalidWindow:        true,
		ConflictMissingWorkshop:      true,
		ConflictEmptySession:         false,
		ConflictDuplicateSessionName: false,
		ConflictOverlappingWindows:   false,
	}
	for typ, want := range blocking {
		if got := typ.Blocking(); got != want {
			t.Errorf("%s.Blocking() = %v, want %v", typ, got, want)
		}
	}
}

func TestFormatReport(t *testing.T) {
	if got := FormatReport(nil); got != "No conflicts detected." {
		t.Errorf("FormatReport(nil) = %q", got)
	}
	got := FormatReport([]Conflict{{Description: "one"}, {Description: "two"}})
	if got != "- one\n- two" {
		t.Errorf("FormatReport() = %q", got)
	}
}

type failingSource struct{ *sqlite.Store }

func (failingSource) GetAllScheduleWindows() ([]models.ScheduleWindow, error) {
	return nil, errors.New("boom")
}

func TestLoadCatalog(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	w := models.Workshop{ID: "w1", Name: "Seconde", CreatedAt: time.Now()}
	s := models.Session{ID: "s1", WorkshopID: w.ID, Name: "Ondes", CreatedAt: time.Now()}
	if err := store.AddWorkshop(w); err != nil {
		t.Fatal(err)
	}
	if err := store.AddSession(s); err != nil {
		t.Fatal(err)
	}
	if err := store.AddSegment(models.Segment{ID: "g1", SessionID: s.ID, Title: "Intro", PlannedDurationSec: 60}); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(store)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(c.Workshops) != 1 || len(c.Sessions) != 1 || len(c.Segments["s1"]) != 1 {
		t.Errorf("catalog = %+v", c)
	}
	if result := New().Validate(c); result.HasConflicts() {
		t.Errorf("clean catalog has conflicts:\n%s", FormatReport(result.Conflicts))
	}

	if _, err := LoadCatalog(failingSource{store}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("LoadCatalog() error = %v, want the window error", err)
	}
}
