package postgres

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

	// Lock the parent row so concurrent appends get distinct positions.
	var sessionID string
	err = tx.QueryRow("SELECT id FROM sessions WHERE id = $1 FOR UPDATE", seg.SessionID).Scan(&sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("session %s: %w", seg.SessionID, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}

	var position int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM segments WHERE session_id = $1", seg.SessionID,
	).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute segment position: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO segments (id, session_id, position, title, duration_sec, work)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		seg.ID, seg.SessionID, position, seg.Title, seg.PlannedDurationSec, seg.Work); err != nil {
		return fmt.Errorf("failed to add segment: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetSegment(id string) (models.Segment, error) {
	var seg models.Segment
	err := s.db.QueryRow("SELECT "+segmentColumns+" FROM segments WHERE id = $1", id).
		Scan(&seg.ID, &seg.SessionID, &seg.Position, &seg.Title, &seg.PlannedDurationSec, &seg.Work)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Segment{}, fmt.Errorf("segment %s: %w", id, storage.ErrNotFound)
	}
	return seg, err
}

func (s *Store) GetSegmentsForSession(sessionID string) ([]models.Segment, error) {
	rows, err := s.db.Query(
		"SELECT "+segmentColumns+" FROM segments WHERE session_id = $1 ORDER BY position", sessionID)
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
	res, err := s.db.Exec("DELETE FROM segments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	return requireRow(res, "segment", id)
}
