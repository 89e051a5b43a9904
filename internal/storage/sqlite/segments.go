package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
)

const segmentColumns = "id, session_id, position, title, duration_sec, work"

func (s *Store) AddSegment(seg models.Segment) error {
	if err := seg.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", seg.SessionID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("session %s: %w", seg.SessionID, storage.ErrNotFound)
	}

	var position int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM segments WHERE session_id = ?", seg.SessionID,
	).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute segment position: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO segments (id, session_id, position, title, duration_sec, work)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seg.ID, seg.SessionID, position, seg.Title, seg.PlannedDurationSec, seg.Work); err != nil {
		return fmt.Errorf("failed to add segment: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetSegment(id string) (models.Segment, error) {
	row := s.db.QueryRow("SELECT "+segmentColumns+" FROM segments WHERE id = ?", id)
	var seg models.Segment
	err := row.Scan(&seg.ID, &seg.SessionID, &seg.Position, &seg.Title, &seg.PlannedDurationSec, &seg.Work)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Segment{}, fmt.Errorf("segment %s: %w", id, storage.ErrNotFound)
	}
	return seg, err
}

func (s *Store) GetSegmentsForSession(sessionID string) ([]models.Segment, error) {
	rows, err := s.db.Query(
		"SELECT "+segmentColumns+" FROM segments WHERE session_id = ? ORDER BY position", sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var seg models.Segment
		if err := rows.Scan(&seg.ID, &seg.SessionID, &seg.Position, &seg.Title, &seg.PlannedDurationSec, &seg.Work); err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

func (s *Store) DeleteSegment(id string) error {
	res, err := s.db.Exec("DELETE FROM segments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	return requireRow(res, "segment", id)
}
