package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// PlanRecordOption customizes a record built by NewTestPlanRecord.
type PlanRecordOption func(*domain.PlanRecord)

func WithOptions(o domain.PlanOptions) PlanRecordOption {
	return func(r *domain.PlanRecord) {
		r.Options = o
	}
}

func WithSource(s domain.PlanSource, code string) PlanRecordOption {
	return func(r *domain.PlanRecord) {
		r.Source = s
		r.FailureCode = code
	}
}

func WithCreatedAt(t time.Time) PlanRecordOption {
	return func(r *domain.PlanRecord) {
		r.CreatedAt = t
	}
}

func WithImageSHA(sum string) PlanRecordOption {
	return func(r *domain.PlanRecord) {
		r.ImageSHA256 = sum
	}
}

// NewTestPlan returns a small valid plan with the given title.
func NewTestPlan(title string) domain.WoodworkingPlan {
	return domain.WoodworkingPlan{
		Title:                title,
		Description:          "Test plan for " + title,
		EstimatedCost:        "$40-55",
		EstimatedRetailPrice: "$250",
		EstimatedTime:        "2-3 hours",
		OverallDimensions:    domain.Dimensions{Height: `18"`, Width: `14"`, Depth: `10"`},
		ShoppingList:         []string{"Pine 1x10 - 6ft", "Wood glue"},
		CutList: []domain.CutItem{
			{PartName: "Side", Quantity: 2, Thickness: `3/4"`, Width: `9-1/4"`, Length: `18"`, Material: "Pine"},
			{PartName: "Shelf", Quantity: 2, Thickness: `3/4"`, Width: `9-1/4"`, Length: `12-1/2"`, Material: "Pine", Notes: "Check for square"},
		},
		AssemblySteps: []domain.AssemblyStep{
			{StepNumber: 1, Instruction: "Cut parts to length."},
			{StepNumber: 2, Instruction: "Glue and screw shelves between sides."},
		},
	}
}

// NewTestPlanRecord returns an AI-sourced record with a unique ID and short ID.
func NewTestPlanRecord(title string, opts ...PlanRecordOption) *domain.PlanRecord {
	n := testShortIDCounter.Add(1)
	r := &domain.PlanRecord{
		ID:          uuid.New().String(),
		ShortID:     fmt.Sprintf("WG%04d", n),
		Options:     domain.DefaultPlanOptions(),
		Source:      domain.SourceAI,
		Model:       "test-model",
		MimeType:    "image/jpeg",
		ImageSHA256: fmt.Sprintf("%064x", n),
		Plan:        NewTestPlan(title),
		CreatedAt:   time.Now().UTC(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}
