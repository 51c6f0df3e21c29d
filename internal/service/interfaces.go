package service

import (
	"context"

	"github.com/alexanderramin/woodgenie/internal/domain"
)

// GenerateInput names the photo to plan from. Exactly one of ImagePath and
// ImageDataURI is set.
type GenerateInput struct {
	ImagePath    string
	ImageDataURI string
	Options      domain.PlanOptions
}

type PlanService interface {
	Generate(ctx context.Context, in GenerateInput) (*domain.PlanRecord, error)
	Get(ctx context.Context, idOrShortID string) (*domain.PlanRecord, error)
	List(ctx context.Context, limit int) ([]*domain.PlanRecord, error)
	// ListByImage returns the plans made from the same photo file, matched
	// by content hash.
	ListByImage(ctx context.Context, imagePath string, limit int) ([]*domain.PlanRecord, error)
	Latest(ctx context.Context) (*domain.PlanRecord, error)
	Delete(ctx context.Context, idOrShortID string) error
	// Reset drops the whole history and restarts short ID numbering.
	Reset(ctx context.Context) (int64, error)
}
