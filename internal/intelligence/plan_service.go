package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/llm"
)

// PlanResult is the outcome of one plan request. Plan is always a valid
// plan; Source says whether it came from the AI service or the fallback.
type PlanResult struct {
	Plan          domain.WoodworkingPlan
	Source        domain.PlanSource
	FailureCode   string // empty when Source is ai
	FailureReason string
	Model         string
	MimeType      string
	LatencyMs     int64
}

// IsFallback reports whether the plan was produced locally.
func (r *PlanResult) IsFallback() bool {
	return r.Source == domain.SourceFallback
}

// PlanService turns a furniture photo into a woodworking plan.
type PlanService interface {
	// GeneratePlan makes one AI request for image and returns the parsed
	// plan, or the fallback plan for opts if anything goes wrong. It never
	// returns nil.
	GeneratePlan(ctx context.Context, image string, opts domain.PlanOptions) *PlanResult
}

type planService struct {
	client   llm.VisionClient
	observer llm.Observer
}

// NewPlanService creates a PlanService backed by a vision client.
func NewPlanService(client llm.VisionClient, observer llm.Observer) PlanService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &planService{client: client, observer: observer}
}

func (s *planService) GeneratePlan(ctx context.Context, image string, opts domain.PlanOptions) *PlanResult {
	opts = opts.Normalize()

	img, err := llm.ParseImage(image)
	if err != nil {
		s.reportParseFailure(err)
		return s.fallback(opts, "", err)
	}

	resp, err := s.client.Generate(ctx, llm.VisionRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   BuildPlanPrompt(opts),
		Image:        img,
		Schema:       planSchema,
	})
	if err != nil {
		return s.fallback(opts, img.MimeType, err)
	}

	plan, err := llm.ExtractJSON[domain.WoodworkingPlan](resp.Text, validatePlan)
	if err != nil {
		s.reportParseFailure(err)
		return s.fallback(opts, img.MimeType, err)
	}

	return &PlanResult{
		Plan:      plan,
		Source:    domain.SourceAI,
		Model:     resp.Model,
		MimeType:  img.MimeType,
		LatencyMs: resp.LatencyMs,
	}
}

func (s *planService) fallback(opts domain.PlanOptions, mimeType string, cause error) *PlanResult {
	code := llm.ErrorCode(cause)
	return &PlanResult{
		Plan:          FallbackPlan(opts),
		Source:        domain.SourceFallback,
		FailureCode:   code,
		FailureReason: fmt.Sprintf("%v", cause),
		MimeType:      mimeType,
	}
}

// reportParseFailure covers failures the client never saw. Transport and
// envelope errors are reported by the client itself.
func (s *planService) reportParseFailure(err error) {
	s.observer.OnParseFailure(llm.ParseEvent{
		Task:      llm.TaskPlan,
		Provider:  s.client.Provider(),
		ErrorCode: llm.ErrorCode(err),
	})
}

func validatePlan(p domain.WoodworkingPlan) error {
	return p.Validate()
}

// OfflinePlanService always returns the fallback plan. It is used when no
// AI credential is configured and the user asked for offline mode.
type OfflinePlanService struct{}

func (OfflinePlanService) GeneratePlan(_ context.Context, image string, opts domain.PlanOptions) *PlanResult {
	opts = opts.Normalize()
	res := &PlanResult{
		Plan:          FallbackPlan(opts),
		Source:        domain.SourceFallback,
		FailureCode:   "OFFLINE",
		FailureReason: "offline mode",
	}
	if img, err := llm.ParseImage(image); err == nil {
		res.MimeType = img.MimeType
	}
	return res
}
