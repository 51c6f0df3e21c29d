package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/woodgenie/internal/db"
)

const planSequenceName = "plans"

// SQLitePlanSequenceRepo allocates plan sequence values atomically using
// the plan_sequence table.
type SQLitePlanSequenceRepo struct {
	db db.DBTX
}

// NewSQLitePlanSequenceRepo creates a new SQLitePlanSequenceRepo.
func NewSQLitePlanSequenceRepo(conn db.DBTX) *SQLitePlanSequenceRepo {
	return &SQLitePlanSequenceRepo{db: conn}
}

// NextPlanSeq returns the next plan number, starting at 1.
func (r *SQLitePlanSequenceRepo) NextPlanSeq(ctx context.Context) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO plan_sequence (name, next_seq) VALUES (?, 1)`
	if _, err := r.db.ExecContext(ctx, seedQuery, planSequenceName); err != nil {
		return 0, fmt.Errorf("seeding plan sequence: %w", err)
	}

	var next int
	allocQuery := `UPDATE plan_sequence
		SET next_seq = next_seq + 1
		WHERE name = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, planSequenceName).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next plan seq: %w", err)
	}
	return next, nil
}

// Reset restarts numbering at 1.
func (r *SQLitePlanSequenceRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_sequence WHERE name = ?`, planSequenceName); err != nil {
		return fmt.Errorf("resetting plan sequence: %w", err)
	}
	return nil
}
