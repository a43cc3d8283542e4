// Package store persists jobs, applications, evaluations and per-organization
// criteria in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/hire-scorer/internal/domain"
)

//go:embed schema.sql
var schema string

const memoryPath = ":memory:"

type Store struct {
	db       *sql.DB
	logger   *zap.Logger
	now      func() time.Time
	defaults domain.EvaluationCriteria
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return nil, errors.New("database path is required")
	}

	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// SQLite: single writer. Also serializes the shortlist counter updates.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	logger.Debug("database ready", zap.String("path", path))
	return &Store{db: db, logger: logger, now: time.Now, defaults: domain.DefaultCriteria()}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// SaveJob inserts or replaces job. An empty ID is assigned.
func (s *Store) SaveJob(ctx context.Context, job *domain.JobRequirement) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	now := s.timestamp()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, organization_id, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET organization_id = excluded.organization_id, payload = excluded.payload, updated_at = excluded.updated_at`,
		job.ID, job.OrganizationID, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*domain.JobRequirement, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM jobs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}

	var job domain.JobRequirement
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

// SaveApplication inserts or replaces app. An empty ID is assigned.
func (s *Store) SaveApplication(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	payload, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}

	now := s.timestamp()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET job_id = excluded.job_id, payload = excluded.payload, updated_at = excluded.updated_at`,
		app.ID, app.JobID, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("save application %s: %w", app.ID, err)
	}
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM applications WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("application %s: %w", id, domain.ErrApplicationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application %s: %w", id, err)
	}

	var app domain.Application
	if err := json.Unmarshal([]byte(payload), &app); err != nil {
		return nil, fmt.Errorf("decode application %s: %w", id, err)
	}
	return &app, nil
}

// ListApplications returns the applications of a job in submission order.
func (s *Store) ListApplications(ctx context.Context, jobID string) ([]*domain.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM applications WHERE job_id = ? ORDER BY created_at, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		var app domain.Application
		if err := json.Unmarshal([]byte(payload), &app); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
