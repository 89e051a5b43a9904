package sqlite

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
		VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.WorkshopID, sess.Name, sess.Description, formatTime(sess.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %s: %w", id, storage.ErrNotFound)
	}
	return sess, err
}

func (s *Store) GetAllSessions() ([]models.Session, error) {
	return s.querySessions("SELECT " + sessionColumns + " FROM sessions ORDER BY workshop_id, created_at")
}

func (s *Store) GetSessionsForWorkshop(workshopID string) ([]models.Session, error) {
	return s.querySessions("SELECT "+sessionColumns+" FROM sessions WHERE workshop_id = ? ORDER BY created_at", workshopID)
}

func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM segments WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete segments: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
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
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (models.Session, error) {
	var sess models.Session
	var createdAt string
	if err := row.Scan(&sess.ID, &sess.WorkshopID, &sess.Name, &sess.Description, &createdAt); err != nil {
		return models.Session{}, err
	}
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}
