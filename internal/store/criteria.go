package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spigell/hire-scorer/internal/domain"
)

// GetCriteria returns the organization's criteria, or the defaults when none
// were saved.
func (s *Store) GetCriteria(ctx context.Context, organizationID string) (domain.EvaluationCriteria, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM criteria WHERE organization_id = ?`, organizationID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaults, nil
	}
	if err != nil {
		return domain.EvaluationCriteria{}, fmt.Errorf("get criteria %s: %w", organizationID, err)
	}

	c := s.defaults
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return domain.EvaluationCriteria{}, fmt.Errorf("decode criteria %s: %w", organizationID, err)
	}
	return c, nil
}

// SetDefaultCriteria replaces the criteria returned for organizations
// without saved settings.
func (s *Store) SetDefaultCriteria(c domain.EvaluationCriteria) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("default criteria: %w", err)
	}
	s.defaults = c
	return nil
}

// UpdateCriteria validates c before saving it.
func (s *Store) UpdateCriteria(ctx context.Context, organizationID string, c domain.EvaluationCriteria) error {
	if err := c.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO criteria (organization_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(organization_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		organizationID, string(payload), s.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("update criteria %s: %w", organizationID, err)
	}
	return nil
}
