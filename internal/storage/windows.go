package storage

import (
	"sort"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/utils"
)

// SortWindows orders windows by context, then by start time of day. Windows
// whose start cannot be parsed sort last within their context.
func SortWindows(windows []models.ScheduleWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		as, aErr := utils.ParseTimeOfDay(a.Start)
		bs, bErr := utils.ParseTimeOfDay(b.Start)
		switch {
		case aErr != nil:
			return false
		case bErr != nil:
			return true
		}
		return as < bs
	})
}
