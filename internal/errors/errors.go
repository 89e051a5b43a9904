package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/planner"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests what to do next for errors a user can act on. It returns ""
// when there is nothing useful to add.
func Hint(err error) string {
	switch {
	case errors.Is(err, planner.ErrWindowAlreadyOver):
		return "the window closes too soon; start without --context or pick a later window"
	case errors.Is(err, planner.ErrNoMatchingWindow):
		return "no window is left today for this context; add one with 'classtimer window add'"
	case errors.Is(err, sequencer.ErrEmptySession):
		return "add segments with 'classtimer segment add <session>'"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
