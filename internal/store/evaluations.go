package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/domain"
)

// SaveEvaluation stores r, replacing any earlier evaluation of the same
// application. The job's shortlist counter follows the internal status in
// the same transaction: +1 when the application becomes shortlisted, -1 when
// a re-evaluation takes it off the shortlist.
func (s *Store) SaveEvaluation(ctx context.Context, r *domain.EvaluationResult) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var previous string
	err = tx.QueryRowContext(ctx,
		`SELECT internal_status FROM evaluations WHERE application_id = ?`, r.ApplicationID).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read previous evaluation: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO evaluations (application_id, id, job_id, internal_status, payload, visible_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(application_id) DO UPDATE SET
		   id = excluded.id, job_id = excluded.job_id, internal_status = excluded.internal_status,
		   payload = excluded.payload, visible_at = excluded.visible_at, created_at = excluded.created_at`,
		r.ApplicationID, r.ID, r.JobID, string(r.InternalStatus), string(payload),
		r.VisibleAt.UTC().Format(time.RFC3339Nano), s.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("save evaluation %s: %w", r.ApplicationID, err)
	}

	wasShortlisted := domain.ShortlistStatus(previous) == domain.StatusShortlisted
	isShortlisted := r.InternalStatus == domain.StatusShortlisted
	switch {
	case isShortlisted && !wasShortlisted:
		err = adjustShortlisted(ctx, tx, r.JobID, 1)
	case wasShortlisted && !isShortlisted:
		err = adjustShortlisted(ctx, tx, r.JobID, -1)
	}
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}

	s.logger.Debug("evaluation saved",
		zap.String("application_id", r.ApplicationID),
		zap.String("internal_status", string(r.InternalStatus)),
	)
	return nil
}

func (s *Store) GetEvaluation(ctx context.Context, applicationID string) (*domain.EvaluationResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM evaluations WHERE application_id = ?`, applicationID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation for %s: %w", applicationID, domain.ErrEvaluationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get evaluation %s: %w", applicationID, err)
	}

	var r domain.EvaluationResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode evaluation %s: %w", applicationID, err)
	}
	return &r, nil
}

func (s *Store) ShortlistedCount(ctx context.Context, jobID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT shortlisted_count FROM jobs WHERE id = ?`, jobID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("job %s: %w", jobID, domain.ErrJobNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("shortlisted count %s: %w", jobID, err)
	}
	return n, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func adjustShortlisted(ctx context.Context, db execer, jobID string, delta int) error {
	res, err := db.ExecContext(ctx,
		`UPDATE jobs SET shortlisted_count = MAX(shortlisted_count + ?, 0) WHERE id = ?`, delta, jobID)
	if err != nil {
		return fmt.Errorf("update shortlisted count %s: %w", jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("job %s: %w", jobID, domain.ErrJobNotFound)
	}
	return nil
}
