package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/cli/playback"
	"github.com/julianstephens/classtimer/internal/cli/segments"
	"github.com/julianstephens/classtimer/internal/cli/sessions"
	"github.com/julianstephens/classtimer/internal/cli/settings"
	"github.com/julianstephens/classtimer/internal/cli/system"
	"github.com/julianstephens/classtimer/internal/cli/windows"
	"github.com/julianstephens/classtimer/internal/cli/workshops"
	"github.com/julianstephens/classtimer/internal/config"
	"github.com/julianstephens/classtimer/internal/constants"
	apperrors "github.com/julianstephens/classtimer/internal/errors"
	"github.com/julianstephens/classtimer/internal/keyring"
	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/notifier"
	"github.com/julianstephens/classtimer/internal/storage/backend"
	"github.com/julianstephens/classtimer/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. Falls back to CLASSTIMER_DB, then the OS keyring." type:"string" default:"${default_config}"`
	Verbose bool   `short:"v" help:"Log debug output to stderr (also CLASSTIMER_DEBUG)."`

	Init     system.InitCmd     `cmd:"" help:"Initialize classtimer storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive timer." default:"withargs"`
	Run      playback.RunCmd    `cmd:"" help:"Play a session in the terminal with progress bars."`
	Align    playback.AlignCmd  `cmd:"" help:"Preview a session aligned to its schedule window."`
	Workshop struct {
		Add    workshops.WorkshopAddCmd    `cmd:"" help:"Add a workshop."`
		List   workshops.WorkshopListCmd   `cmd:"" help:"List workshops." default:"1"`
		Delete workshops.WorkshopDeleteCmd `cmd:"" help:"Delete a workshop with its sessions."`
	} `cmd:"" help:"Manage workshops."`
	Session struct {
		Add    sessions.SessionAddCmd    `cmd:"" help:"Add a session to a workshop."`
		List   sessions.SessionListCmd   `cmd:"" help:"List sessions." default:"1"`
		Show   sessions.SessionShowCmd   `cmd:"" help:"Show a session and its segments."`
		Delete sessions.SessionDeleteCmd `cmd:"" help:"Delete a session with its segments."`
	} `cmd:"" help:"Manage sessions."`
	Segment struct {
		Add    segments.SegmentAddCmd    `cmd:"" help:"Append a segment to a session."`
		List   segments.SegmentListCmd   `cmd:"" help:"List a session's segments."`
		Delete segments.SegmentDeleteCmd `cmd:"" help:"Delete a segment."`
	} `cmd:"" help:"Manage session segments."`
	Window struct {
		Add    windows.WindowAddCmd    `cmd:"" help:"Add a schedule window."`
		List   windows.WindowListCmd   `cmd:"" help:"List schedule windows." default:"1"`
		Delete windows.WindowDeleteCmd `cmd:"" help:"Delete a schedule window."`
	} `cmd:"" help:"Manage schedule windows (class periods)."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used to test the tray app)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Countdown timer for timed teaching sessions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	env, err := config.ParseEnv()
	if err != nil {
		apperrors.Fatal(err)
	}
	target, source := config.ResolveTarget(CLI.Config, env, keyring.GetConnectionString)

	configDir, err := config.ConfigDir(target, env)
	if err != nil {
		apperrors.Fatal(err)
	}
	logCfg := logger.Config{Debug: CLI.Verbose || env.Debug, ConfigDir: configDir}
	if command := ctx.Command(); command == "tui" || command == "tui <session>" {
		logCfg.Console = io.Discard
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Resolved storage", "source", source, "config_dir", configDir)

	store, err := backend.NewForSource(target, source)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			fmt.Fprint(os.Stderr, backend.CredentialsHelp())
			os.Exit(1)
		}
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Env:   env,
	}
	if env.Notify {
		appCtx.Notifier = notifier.New()
	}

	// init handles its own loading
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(fmt.Errorf("failed to load database %s: %w (run '%s init' first?)", store.GetConfigPath(), err, constants.AppName))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
