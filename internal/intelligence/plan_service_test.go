package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockVisionClient returns a fixed response or error and records calls.
type mockVisionClient struct {
	text  string
	err   error
	calls []llm.VisionRequest
}

func (m *mockVisionClient) Generate(_ context.Context, req llm.VisionRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.text, Model: "mock-model", LatencyMs: 7}, nil
}

func (m *mockVisionClient) Provider() string { return "mock" }

type recordingObserver struct {
	events []llm.LLMCallEvent
	parses []llm.ParseEvent
}

func (o *recordingObserver) OnCallComplete(e llm.LLMCallEvent) { o.events = append(o.events, e) }
func (o *recordingObserver) OnParseFailure(e llm.ParseEvent) { o.parses = append(o.parses, e) }

const testImage = "data:image/png;base64,iVBORw0KGgo="

func aiPlan() domain.WoodworkingPlan {
	return domain.WoodworkingPlan{
		Title:                "Mid-Century Nightstand",
		Description:          "Two-drawer nightstand with tapered legs.",
		EstimatedCost:        "$120-160",
		EstimatedRetailPrice: "$900",
		EstimatedTime:        "10-12 hours",
		OverallDimensions:    domain.Dimensions{Height: `26"`, Width: `20"`, Depth: `16"`},
		ShoppingList:         []string{"Oak 3/4 plywood - 1 sheet", "Drawer slides - 2 pair"},
		CutList: []domain.CutItem{
			{PartName: "Side", Quantity: 2, Thickness: `3/4"`, Width: `15-1/4"`, Length: `18"`, Material: "Oak plywood"},
		},
		AssemblySteps: []domain.AssemblyStep{
			{StepNumber: 1, Instruction: "Cut the case sides."},
			{StepNumber: 2, Instruction: "Cut dadoes for the drawer dividers."},
		},
	}
}

func aiPlanJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(aiPlan())
	require.NoError(t, err)
	return string(data)
}

func TestPlanService_BareJSON(t *testing.T) {
	client := &mockVisionClient{text: aiPlanJSON(t)}
	svc := NewPlanService(client, nil)

	res := svc.GeneratePlan(context.Background(), testImage, domain.DefaultPlanOptions())

	require.NotNil(t, res)
	assert.Equal(t, domain.SourceAI, res.Source)
	assert.False(t, res.IsFallback())
	assert.Equal(t, aiPlan(), res.Plan)
	assert.Equal(t, "mock-model", res.Model)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Empty(t, res.FailureCode)
}

func TestPlanService_FencedJSONReturnedUnchanged(t *testing.T) {
	client := &mockVisionClient{text: "```json\n" + aiPlanJSON(t) + "\n```"}
	svc := NewPlanService(client, nil)

	opts := domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyAdvanced, WoodType: domain.WoodOak}
	res := svc.GeneratePlan(context.Background(), testImage, opts)

	assert.Equal(t, domain.SourceAI, res.Source)
	assert.Equal(t, aiPlan(), res.Plan)
	assert.NotEqual(t, FallbackPlan(opts), res.Plan)
}

func TestPlanService_NonJSONFallsBack(t *testing.T) {
	obs := &recordingObserver{}
	client := &mockVisionClient{text: "I'm sorry, I can't tell what furniture this is."}
	svc := NewPlanService(client, obs)

	opts := domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyIntermediate, WoodType: domain.WoodPlywood}
	res := svc.GeneratePlan(context.Background(), testImage, opts)

	assert.Equal(t, domain.SourceFallback, res.Source)
	assert.Equal(t, FallbackPlan(opts), res.Plan)
	assert.Equal(t, "INVALID_OUTPUT", res.FailureCode)
	assert.NotEmpty(t, res.FailureReason)
	assert.Empty(t, obs.events, "the client reports the call itself")
	require.Len(t, obs.parses, 1)
	assert.Equal(t, "INVALID_OUTPUT", obs.parses[0].ErrorCode)
}

func TestPlanService_MissingFieldsFallBack(t *testing.T) {
	partial := aiPlan()
	partial.EstimatedRetailPrice = ""
	partial.AssemblySteps[1].StepNumber = 5
	data, err := json.Marshal(partial)
	require.NoError(t, err)

	svc := NewPlanService(&mockVisionClient{text: string(data)}, nil)
	res := svc.GeneratePlan(context.Background(), testImage, domain.DefaultPlanOptions())

	assert.True(t, res.IsFallback())
	assert.Equal(t, FallbackPlan(domain.DefaultPlanOptions()), res.Plan)
	assert.Contains(t, res.FailureReason, "estimatedRetailPrice is required")
}

func TestPlanService_TransportErrorsFallBack(t *testing.T) {
	cases := map[string]error{
		"TIMEOUT":     llm.ErrTimeout,
		"UNAVAILABLE": fmt.Errorf("%w: dial tcp", llm.ErrUnavailable),
		"AUTH":        fmt.Errorf("%w: status 401", llm.ErrAuth),
		"STATUS":      fmt.Errorf("%w: status 529", llm.ErrUpstreamStatus),
		"UNKNOWN":     errors.New("boom"),
	}
	for code, cause := range cases {
		t.Run(code, func(t *testing.T) {
			obs := &recordingObserver{}
			client := &mockVisionClient{err: cause}
			svc := NewPlanService(client, obs)

			res := svc.GeneratePlan(context.Background(), testImage, domain.DefaultPlanOptions())

			assert.True(t, res.IsFallback())
			assert.Equal(t, code, res.FailureCode)
			assert.Len(t, client.calls, 1, "exactly one attempt")
			assert.Empty(t, obs.events, "transport failures are reported by the client")
			assert.Empty(t, obs.parses)
		})
	}
}

func TestPlanService_InvalidImageSkipsRequest(t *testing.T) {
	obs := &recordingObserver{}
	client := &mockVisionClient{text: "unused"}
	svc := NewPlanService(client, obs)

	res := svc.GeneratePlan(context.Background(), "data:image/png;base64,***", domain.DefaultPlanOptions())

	assert.True(t, res.IsFallback())
	assert.Equal(t, "INVALID_IMAGE", res.FailureCode)
	assert.Empty(t, client.calls)
	require.Len(t, obs.parses, 1)
	assert.Equal(t, "INVALID_IMAGE", obs.parses[0].ErrorCode)
}

func TestPlanService_UnsupportedImageTypeSkipsRequest(t *testing.T) {
	client := &mockVisionClient{text: aiPlanJSON(t)}
	svc := NewPlanService(client, nil)

	res := svc.GeneratePlan(context.Background(), "data:image/bmp;base64,Qk0eAAAAAAAAAA==", domain.DefaultPlanOptions())

	assert.True(t, res.IsFallback())
	assert.Equal(t, "INVALID_IMAGE", res.FailureCode)
	assert.Contains(t, res.FailureReason, "image/bmp")
	assert.Empty(t, client.calls)
}

func TestPlanService_DataURIParametersAccepted(t *testing.T) {
	client := &mockVisionClient{text: aiPlanJSON(t)}
	svc := NewPlanService(client, nil)

	res := svc.GeneratePlan(context.Background(), "data:image/png;name=shelf.png;base64,iVBORw0KGgo=", domain.DefaultPlanOptions())

	assert.Equal(t, domain.SourceAI, res.Source)
	assert.Equal(t, "image/png", res.MimeType)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "image/png", client.calls[0].Image.MimeType)
}

func TestPlanService_RequestCarriesConfiguration(t *testing.T) {
	client := &mockVisionClient{text: aiPlanJSON(t)}
	svc := NewPlanService(client, nil)

	opts := domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyAdvanced, WoodType: domain.WoodReclaimed}
	svc.GeneratePlan(context.Background(), "iVBORw0KGgo=", opts)

	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, llm.TaskPlan, req.Task)
	assert.Equal(t, "image/jpeg", req.Image.MimeType, "bare base64 defaults to jpeg")
	assert.Contains(t, req.UserPrompt, "METRIC units")
	assert.Contains(t, req.UserPrompt, "Difficulty Level: Advanced")
	assert.Contains(t, req.UserPrompt, "dadoes, rabbets")
	assert.Contains(t, req.UserPrompt, "Reclaimed Wood")
	assert.NotEmpty(t, req.SystemPrompt)
	require.NotNil(t, req.Schema)
	assert.Contains(t, req.Schema.Required, "cutList")
}

func TestPlanService_TotalOverAllOptionsAndInputs(t *testing.T) {
	inputs := []string{testImage, "", "%%%not-base64%%%", "data:;base64,", "iVBORw0KGgo="}
	responses := []*mockVisionClient{
		{text: ""},
		{text: "{}"},
		{text: "```json\n{\"title\": 1}\n```"},
		{err: llm.ErrTimeout},
	}
	for _, opts := range allOptions() {
		for _, in := range inputs {
			for _, client := range responses {
				res := NewPlanService(client, nil).GeneratePlan(context.Background(), in, opts)
				require.NotNil(t, res)
				assert.NoError(t, res.Plan.Validate())
				for i, step := range res.Plan.AssemblySteps {
					assert.Equal(t, i+1, step.StepNumber)
				}
			}
		}
	}
}

func TestOfflinePlanService(t *testing.T) {
	opts := domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyBeginner, WoodType: domain.WoodOak}
	res := OfflinePlanService{}.GeneratePlan(context.Background(), testImage, opts)

	assert.True(t, res.IsFallback())
	assert.Equal(t, "OFFLINE", res.FailureCode)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, FallbackPlan(opts), res.Plan)
}

func TestBuildPlanPrompt_DifficultyDirectives(t *testing.T) {
	beginner := BuildPlanPrompt(domain.PlanOptions{Units: domain.UnitsImperial, Difficulty: domain.DifficultyBeginner, WoodType: domain.WoodPine})
	assert.Contains(t, beginner, "IMPERIAL units")
	assert.Contains(t, beginner, "basic cuts (90 degree)")
	assert.Contains(t, beginner, "Primary Material Preference: Pine/Construction Lumber")

	intermediate := BuildPlanPrompt(domain.PlanOptions{Units: domain.UnitsImperial, Difficulty: domain.DifficultyIntermediate, WoodType: domain.WoodPine})
	assert.Contains(t, intermediate, "Pocket holes are acceptable")
}
