package postgres

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
)

const windowColumns = "id, context, label, start_time, end_time"

func (s *Store) AddScheduleWindow(w models.ScheduleWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO schedule_windows (id, context, label, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)`,
		w.ID, w.Context, w.Label, w.Start, w.End)
	if err != nil {
		return fmt.Errorf("failed to add schedule window: %w", err)
	}
	return nil
}

func (s *Store) GetScheduleWindows(context string) ([]models.ScheduleWindow, error) {
	return s.queryWindows("SELECT "+windowColumns+" FROM schedule_windows WHERE context = $1", context)
}

func (s *Store) GetAllScheduleWindows() ([]models.ScheduleWindow, error) {
	return s.queryWindows("SELECT " + windowColumns + " FROM schedule_windows")
}

func (s *Store) DeleteScheduleWindow(id string) error {
	res, err := s.db.Exec("DELETE FROM schedule_windows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule window: %w", err)
	}
	return requireRow(res, "schedule window", id)
}

func (s *Store) queryWindows(query string, args ...any) ([]models.ScheduleWindow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []models.ScheduleWindow
	for rows.Next() {
		var w models.ScheduleWindow
		if err := rows.Scan(&w.ID, &w.Context, &w.Label, &w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortWindows(windows)
	return windows, nil
}
