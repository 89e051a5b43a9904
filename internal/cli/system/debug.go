package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/classtimer/internal/cli"
	"github.com/julianstephens/classtimer/internal/models"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpSession  *DebugDumpSessionCmd  `cmd:"" help:"Dump a session and its segments as JSON."`
	DumpWindows  *DebugDumpWindowsCmd  `cmd:"" help:"Dump schedule windows as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpSessionCmd struct {
	Session string `arg:"" help:"Session ID or name."`
}

func (cmd *DebugDumpSessionCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.FindSession(cmd.Session)
	if err != nil {
		return err
	}
	segments, err := ctx.Store.GetSegmentsForSession(sess.ID)
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}
	return printJSON(struct {
		models.Session
		Segments []models.Segment `json:"segments"`
	}{sess, segments})
}

type DebugDumpWindowsCmd struct {
	Context string `short:"c" help:"Only dump windows of this context."`
}

func (cmd *DebugDumpWindowsCmd) Run(ctx *cli.Context) error {
	var windows []models.ScheduleWindow
	var err error
	if cmd.Context != "" {
		windows, err = ctx.Store.GetScheduleWindows(cmd.Context)
	} else {
		windows, err = ctx.Store.GetAllScheduleWindows()
	}
	if err != nil {
		return fmt.Errorf("failed to get schedule windows: %w", err)
	}
	if windows == nil {
		windows = []models.ScheduleWindow{}
	}
	return printJSON(windows)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
