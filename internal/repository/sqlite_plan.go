package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/woodgenie/internal/db"
	"github.com/alexanderramin/woodgenie/internal/domain"
)

const planColumns = `id, short_id, units, difficulty, wood_type, source, failure_code,
	failure_reason, model, mime_type, image_sha256, plan_json, created_at`

// SQLitePlanRepo implements PlanRepo using a SQLite database. The plan
// itself is stored as a JSON document.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, rec *domain.PlanRecord) error {
	planJSON, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	query := `INSERT INTO plans (id, short_id, title, units, difficulty, wood_type, source,
		failure_code, failure_reason, model, mime_type, image_sha256, plan_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ShortID,
		rec.Plan.Title,
		string(rec.Options.Units),
		string(rec.Options.Difficulty),
		string(rec.Options.WoodType),
		string(rec.Source),
		rec.FailureCode,
		rec.FailureReason,
		rec.Model,
		rec.MimeType,
		rec.ImageSHA256,
		string(planJSON),
		formatStoredTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetByShortID(ctx context.Context, shortID string) (*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE short_id = ? COLLATE NOCASE`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, shortID))
}

// List returns the newest plans first. A limit of zero or less returns all.
func (r *SQLitePlanRepo) List(ctx context.Context, limit int) ([]*domain.PlanRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at DESC, short_id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) Latest(ctx context.Context) (*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at DESC, short_id DESC LIMIT 1`
	return r.scanPlan(r.db.QueryRowContext(ctx, query))
}

func (r *SQLitePlanRepo) FindByImage(ctx context.Context, sha256 string) ([]*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE image_sha256 = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, sha256)
	if err != nil {
		return nil, fmt.Errorf("finding plans by image: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans`)
	if err != nil {
		return 0, fmt.Errorf("deleting all plans: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.PlanRecord, error) {
	rec, err := scanPlanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLitePlanRepo) scanPlans(rows *sql.Rows) ([]*domain.PlanRecord, error) {
	var out []*domain.PlanRecord
	for rows.Next() {
		rec, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}

func scanPlanRow(s rowScanner) (*domain.PlanRecord, error) {
	var rec domain.PlanRecord
	var units, difficulty, wood, source, planJSON, createdAt string

	err := s.Scan(
		&rec.ID, &rec.ShortID, &units, &difficulty, &wood, &source, &rec.FailureCode,
		&rec.FailureReason, &rec.Model, &rec.MimeType, &rec.ImageSHA256, &planJSON, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	rec.Options = domain.PlanOptions{
		Units:      domain.UnitSystem(units),
		Difficulty: domain.Difficulty(difficulty),
		WoodType:   domain.WoodType(wood),
	}
	rec.Source = domain.PlanSource(source)

	if err := json.Unmarshal([]byte(planJSON), &rec.Plan); err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", rec.ID, err)
	}
	t, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at for plan %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return &rec, nil
}
