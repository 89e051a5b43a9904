package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func migrationFS(files map[string]string) fs.FS {
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		want     []int
		wantErrs string
	}{
		{
			name:  "sorted by version",
			files: map[string]string{"002_windows.sql": "", "001_init.sql": "", "README.md": ""},
			want:  []int{1, 2},
		},
		{
			name:     "missing underscore",
			files:    map[string]string{"001.sql": ""},
			wantErrs: "invalid migration filename",
		},
		{
			name:     "non-numeric version",
			files:    map[string]string{"abc_init.sql": ""},
			wantErrs: "invalid version number",
		},
		{
			name:     "zero version",
			files:    map[string]string{"000_init.sql": ""},
			wantErrs: "at least 1",
		},
		{
			name:     "duplicate version",
			files:    map[string]string{"001_init.sql": "", "01_other.sql": ""},
			wantErrs: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, migrationFS(tt.files), DriverSQLite)
			got, err := runner.ReadMigrationFiles()
			if tt.wantErrs != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrs) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErrs)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d migrations, want %d", len(got), len(tt.want))
			}
			for i, v := range tt.want {
				if got[i].Version != v {
					t.Errorf("migration %d version = %d, want %d", i, got[i].Version, v)
				}
			}
		})
	}
}

func TestSQLiteApplyMigrations(t *testing.T) {
	db := openSQLite(t)
	files := map[string]string{
		"001_init.sql": `
			CREATE TABLE workshops (id TEXT PRIMARY KEY, name TEXT NOT NULL);
			CREATE TABLE sessions (id TEXT PRIMARY KEY, workshop_id TEXT NOT NULL);
		`,
	}
	runner := NewRunner(db, migrationFS(files), DriverSQLite)

	var logged []string
	count, err := runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("applied %d migrations, want 1", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	if _, err := db.Exec("INSERT INTO sessions (id, workshop_id) VALUES ('s1', 'w1')"); err != nil {
		t.Errorf("sessions table not usable: %v", err)
	}

	// A second migration is picked up incrementally.
	files["002_windows.sql"] = "CREATE TABLE schedule_windows (id TEXT PRIMARY KEY);"
	runner = NewRunner(db, migrationFS(files), DriverSQLite)
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("second run applied %d, want 1", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("third run = (%d, %v), want (0, nil)", count, err)
	}
}

func TestSQLiteMigrationRollbackOnError(t *testing.T) {
	db := openSQLite(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_bad.sql": `
			CREATE TABLE workshops (id TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d after failed migration, want 0", version)
	}
}

func TestValidateVersion_NewerDatabase(t *testing.T) {
	db := openSQLite(t)
	runner := NewRunner(db, migrationFS(map[string]string{"001_init.sql": "SELECT 1;"}), DriverSQLite)

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-schema error", err)
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}
