package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/storage"
	"github.com/julianstephens/classtimer/internal/storage/backend"
	"github.com/julianstephens/classtimer/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy workshops, sessions and windows from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*postgres.Store); ok {
			return fmt.Errorf("--force only resets SQLite databases; drop the classtimer schema to reset PostgreSQL")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized classtimer storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := backend.New(sourcePath)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	return copyStore(sourceStore, ctx.Store)
}

func copyStore(src, dst storage.Provider) error {
	fmt.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating workshops...")
	workshops, err := src.GetAllWorkshops()
	if err != nil {
		return fmt.Errorf("failed to get workshops from source: %w", err)
	}
	for _, w := range workshops {
		if err := dst.AddWorkshop(w); err != nil {
			return fmt.Errorf("failed to add workshop %s: %w", w.ID, err)
		}
	}
	fmt.Printf("    Migrated %d workshops\n", len(workshops))

	fmt.Println("  Migrating sessions...")
	sessions, err := src.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	segmentCount := 0
	for _, sess := range sessions {
		if err := dst.AddSession(sess); err != nil {
			return fmt.Errorf("failed to add session %s: %w", sess.ID, err)
		}
		segments, err := src.GetSegmentsForSession(sess.ID)
		if err != nil {
			return fmt.Errorf("failed to get segments of session %s: %w", sess.ID, err)
		}
		// AddSegment appends, so copying in display order keeps the order.
		for _, seg := range segments {
			if err := dst.AddSegment(seg); err != nil {
				return fmt.Errorf("failed to add segment %s: %w", seg.ID, err)
			}
		}
		segmentCount += len(segments)
	}
	fmt.Printf("    Migrated %d sessions with %d segments\n", len(sessions), segmentCount)

	fmt.Println("  Migrating schedule windows...")
	windows, err := src.GetAllScheduleWindows()
	if err != nil {
		return fmt.Errorf("failed to get schedule windows from source: %w", err)
	}
	for _, w := range windows {
		if err := dst.AddScheduleWindow(w); err != nil {
			return fmt.Errorf("failed to add schedule window %s: %w", w.ID, err)
		}
	}
	fmt.Printf("    Migrated %d schedule windows\n", len(windows))

	return nil
}
