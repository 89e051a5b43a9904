package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
)

const sessionColumns = "id, workshop_id, name, description, created_at"

func (s *Store) AddSession(sess models.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if _, err := s.GetWorkshop(sess.WorkshopID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, workshop_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		sess.ID, sess.WorkshopID, sess.Name, sess.Description, sess.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(id string) (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = $1", id).
		Scan(&sess.ID, &sess.WorkshopID, &sess.Name, &sess.Description, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return sess, err
}

func (s *Store) GetAllSessions() ([]models.Session, error) {
	return s.querySessions("SELECT " + sessionColumns + " FROM sessions ORDER BY workshop_id, created_at")
}

func (s *Store) GetSessionsForWorkshop(workshopID string) ([]models.Session, error) {
	return s.querySessions("SELECT "+sessionColumns+" FROM sessions WHERE workshop_id = $1 ORDER BY created_at", workshopID)
}

func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM segments WHERE session_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete segments: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := requireRow(res, "session", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) querySessions(query string, args ...any) ([]models.Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var sess models.Session
		if err := rows.Scan(&sess.ID, &sess.WorkshopID, &sess.Name, &sess.Description, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
