package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/woodgenie/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// PlanRepo stores generated plans. Records are written once and never
// updated in place.
type PlanRepo interface {
	Create(ctx context.Context, r *domain.PlanRecord) error
	GetByID(ctx context.Context, id string) (*domain.PlanRecord, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.PlanRecord, error)
	List(ctx context.Context, limit int) ([]*domain.PlanRecord, error)
	Latest(ctx context.Context) (*domain.PlanRecord, error)
	FindByImage(ctx context.Context, sha256 string) ([]*domain.PlanRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
