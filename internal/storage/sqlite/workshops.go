package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/storage"
)

func (s *Store) AddWorkshop(w models.Workshop) error {
	if err := w.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO workshops (id, name, description, created_at)
		VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Description, formatTime(w.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add workshop: %w", err)
	}
	return nil
}

func (s *Store) GetWorkshop(id string) (models.Workshop, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, created_at
		FROM workshops WHERE id = ?`, id)

	var w models.Workshop
	var createdAt string
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Workshop{}, fmt.Errorf("workshop %s: %w", id, storage.ErrNotFound)
		}
		return models.Workshop{}, err
	}
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}

func (s *Store) GetAllWorkshops() ([]models.Workshop, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, created_at
		FROM workshops ORDER BY name, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workshops []models.Workshop
	for rows.Next() {
		var w models.Workshop
		var createdAt string
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &createdAt); err != nil {
			return nil, err
		}
		w.CreatedAt = parseTime(createdAt)
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

func (s *Store) DeleteWorkshop(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM segments WHERE session_id IN (
			SELECT id FROM sessions WHERE workshop_id = ?
		)`, id); err != nil {
		return fmt.Errorf("failed to delete segments: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE workshop_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM workshops WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	if err := requireRow(res, "workshop", id); err != nil {
		return err
	}

	return tx.Commit()
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
