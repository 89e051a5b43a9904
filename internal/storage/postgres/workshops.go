package postgres

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
		VALUES ($1, $2, $3, $4)`,
		w.ID, w.Name, w.Description, w.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to add workshop: %w", err)
	}
	return nil
}

func (s *Store) GetWorkshop(id string) (models.Workshop, error) {
	var w models.Workshop
	err := s.db.QueryRow(`
		SELECT id, name, description, created_at
		FROM workshops WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workshop{}, fmt.Errorf("workshop %s: %w", id, storage.ErrNotFound)
	}
	return w, err
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
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt); err != nil {
			return nil, err
		}
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
			SELECT id FROM sessions WHERE workshop_id = $1
		)`, id); err != nil {
		return fmt.Errorf("failed to delete segments: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE workshop_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM workshops WHERE id = $1", id)
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
