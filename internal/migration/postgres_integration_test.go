package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/classtimer/migrations"
)

// Runs only against a live server: POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func postgresDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(func() {
		for _, table := range []string{"schema_version", "segments", "sessions", "schedule_windows", "workshops", "settings", "ct_broken"} {
			db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
		}
		db.Close()
	})
	return db
}

func TestPostgres_EmbeddedSchema(t *testing.T) {
	db := postgresDB(t)
	schema, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(db, schema, DriverPostgres)

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatal(err)
	}
	if n, err := runner.ApplyMigrations(nil); err != nil || n != latest {
		t.Fatalf("ApplyMigrations() = %d, %v; want %d", n, err, latest)
	}
	// version rows are written with $1 placeholders
	if v, err := runner.GetCurrentVersion(); err != nil || v != latest {
		t.Errorf("GetCurrentVersion() = %d, %v; want %d", v, err, latest)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() = %v", err)
	}
	if n, err := runner.ApplyMigrations(nil); err != nil || n != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v; want 0", n, err)
	}
}

func TestPostgres_FailedMigrationRollsBack(t *testing.T) {
	db := postgresDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_bad.sql": "CREATE TABLE ct_broken (id SERIAL PRIMARY KEY); NOT SQL;",
	}), DriverPostgres)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations() should fail on invalid SQL")
	}
	if v, err := runner.GetCurrentVersion(); err != nil || v != 0 {
		t.Errorf("GetCurrentVersion() = %d, %v; want 0", v, err)
	}
	var exists bool
	if err := db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'ct_broken')").Scan(&exists); err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("table from the failed migration survived the rollback")
	}
}
