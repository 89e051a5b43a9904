package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/keyring"
	"github.com/julianstephens/classtimer/internal/notifier"
	"github.com/julianstephens/classtimer/internal/storage/sqlite"
	"github.com/julianstephens/classtimer/internal/utils"
	"github.com/julianstephens/classtimer/internal/validation"
)

var errChecksFailed = errors.New("one or more health checks failed")

// trayChecker is implemented by *notifier.Notifier.
type trayChecker interface {
	Available() error
}

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Catalog warnings", run: checkCatalogWarnings, needsDB: true, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
	{name: "Tray app", run: checkTrayApp, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errChecksFailed
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (current, latest int, err error) {
	store, ok := ctx.Store.(migratable)
	if !ok {
		return 0, 0, nil
	}
	runner, err := store.MigrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'classtimer migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return nil
}

func catalogConflicts(ctx *cli.Context) (validation.ValidationResult, error) {
	catalog, err := validation.LoadCatalog(ctx.Store)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return validation.New().Validate(catalog), nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := catalogConflicts(ctx)
	if err != nil {
		return err
	}
	if blocking := result.Filter(func(c validation.Conflict) bool { return c.Type.Blocking() }); len(blocking) > 0 {
		return fmt.Errorf("%d problem(s) will break playback:\n%s", len(blocking), validation.FormatReport(blocking))
	}
	return nil
}

func checkCatalogWarnings(ctx *cli.Context) error {
	result, err := catalogConflicts(ctx)
	if err != nil {
		return err
	}
	if warnings := result.Filter(func(c validation.Conflict) bool { return !c.Type.Blocking() }); len(warnings) > 0 {
		return fmt.Errorf("%d warning(s):\n%s", len(warnings), validation.FormatReport(warnings))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("timezone %q cannot be loaded: %w", settings.Timezone, err)
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; PostgreSQL credentials must come from --config, CLASSTIMER_DB or .pgpass")
	}
	return nil
}

func checkTrayApp(ctx *cli.Context) error {
	tc, ok := ctx.Notifier.(trayChecker)
	if !ok {
		return errors.New("notifications are disabled")
	}
	if err := tc.Available(); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			return fmt.Errorf("%w; desktop notifications will be skipped", err)
		}
		return err
	}
	return nil
}
