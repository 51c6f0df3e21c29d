package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/woodgenie/internal/db"
	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/intelligence"
	"github.com/alexanderramin/woodgenie/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	acquirer      intelligence.PlanService
	plans         repository.PlanRepo
	uow           db.UnitOfWork
	maxImageBytes int64
	observer      UseCaseObserver
}

// NewPlanService wires plan generation to history storage. A maxImageBytes
// of zero or less uses DefaultMaxImageBytes.
func NewPlanService(
	acquirer intelligence.PlanService,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	maxImageBytes int64,
	observers ...UseCaseObserver,
) PlanService {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &planService{
		acquirer:      acquirer,
		plans:         plans,
		uow:           uow,
		maxImageBytes: maxImageBytes,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Generate(ctx context.Context, in GenerateInput) (rec *domain.PlanRecord, err error) {
	startedAt := time.Now().UTC()
	opts := in.Options.Normalize()
	fields := map[string]any{
		"units":      string(opts.Units),
		"difficulty": string(opts.Difficulty),
		"wood_type":  string(opts.WoodType),
	}
	defer func() {
		if rec != nil {
			fields["plan_id"] = rec.ShortID
			fields["source"] = string(rec.Source)
			if rec.FailureCode != "" {
				fields["failure_code"] = rec.FailureCode
			}
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var img *loadedImage
	switch {
	case in.ImagePath != "":
		img, err = readImageFile(in.ImagePath, s.maxImageBytes)
		if err != nil {
			return nil, err
		}
	case in.ImageDataURI != "":
		img = imageFromDataURI(in.ImageDataURI)
	default:
		return nil, ErrNoImage
	}

	result := s.acquirer.GeneratePlan(ctx, img.DataURI, opts)

	rec = &domain.PlanRecord{
		ID:            uuid.New().String(),
		Options:       opts,
		Source:        result.Source,
		FailureCode:   result.FailureCode,
		FailureReason: result.FailureReason,
		Model:         result.Model,
		MimeType:      img.MimeType,
		ImageSHA256:   img.SHA256,
		Plan:          result.Plan,
		CreatedAt:     time.Now().UTC(),
	}
	if rec.MimeType == "" {
		rec.MimeType = result.MimeType
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seq, err := repository.NewSQLitePlanSequenceRepo(tx).NextPlanSeq(ctx)
		if err != nil {
			return err
		}
		rec.ShortID = formatShortID(seq)
		return repository.NewSQLitePlanRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	return rec, nil
}

// Get resolves a UUID, a WG short ID, or the word "latest".
func (s *planService) Get(ctx context.Context, idOrShortID string) (*domain.PlanRecord, error) {
	ref := strings.TrimSpace(idOrShortID)
	switch {
	case strings.EqualFold(ref, "latest"):
		return s.plans.Latest(ctx)
	case looksLikeShortID(ref):
		return s.plans.GetByShortID(ctx, ref)
	default:
		return s.plans.GetByID(ctx, ref)
	}
}

func (s *planService) List(ctx context.Context, limit int) ([]*domain.PlanRecord, error) {
	return s.plans.List(ctx, limit)
}

func (s *planService) ListByImage(ctx context.Context, imagePath string, limit int) ([]*domain.PlanRecord, error) {
	img, err := readImageFile(imagePath, s.maxImageBytes)
	if err != nil {
		return nil, err
	}
	records, err := s.plans.FindByImage(ctx, img.SHA256)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *planService) Latest(ctx context.Context) (*domain.PlanRecord, error) {
	return s.plans.Latest(ctx)
}

func (s *planService) Delete(ctx context.Context, idOrShortID string) error {
	rec, err := s.Get(ctx, idOrShortID)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, rec.ID)
}

func (s *planService) Reset(ctx context.Context) (removed int64, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset-history",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"removed": removed},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLitePlanRepo(tx).DeleteAll(ctx)
		if err != nil {
			return err
		}
		removed = n
		return repository.NewSQLitePlanSequenceRepo(tx).Reset(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("resetting history: %w", err)
	}
	return removed, nil
}
