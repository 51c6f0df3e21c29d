package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlan indicates a plan that breaks one of the structural rules
// checked by Validate.
var ErrInvalidPlan = errors.New("invalid woodworking plan")

// WoodworkingPlan is a complete build plan for one furniture piece.
// Dimension strings carry their own unit and are not normalized.
type WoodworkingPlan struct {
	Title                string         `json:"title" yaml:"title"`
	Description          string         `json:"description" yaml:"description"`
	EstimatedCost        string         `json:"estimatedCost" yaml:"estimatedCost"`
	EstimatedRetailPrice string         `json:"estimatedRetailPrice" yaml:"estimatedRetailPrice"`
	EstimatedTime        string         `json:"estimatedTime" yaml:"estimatedTime"`
	OverallDimensions    Dimensions     `json:"overallDimensions" yaml:"overallDimensions"`
	ShoppingList         []string       `json:"shoppingList" yaml:"shoppingList"`
	CutList              []CutItem      `json:"cutList" yaml:"cutList"`
	AssemblySteps        []AssemblyStep `json:"assemblySteps" yaml:"assemblySteps"`
}

type Dimensions struct {
	Height string `json:"height" yaml:"height"`
	Width  string `json:"width" yaml:"width"`
	Depth  string `json:"depth" yaml:"depth"`
}

// CutItem is one row of the cut list.
type CutItem struct {
	PartName  string `json:"partName" yaml:"partName"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
	Thickness string `json:"thickness" yaml:"thickness"`
	Width     string `json:"width" yaml:"width"`
	Length    string `json:"length" yaml:"length"`
	Material  string `json:"material" yaml:"material"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type AssemblyStep struct {
	StepNumber  int    `json:"stepNumber" yaml:"stepNumber"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

// Validate checks the structural invariants of a plan: required strings
// are non-empty, quantities are positive, and steps are numbered 1..n in
// order. All violations are reported together.
func (p *WoodworkingPlan) Validate() error {
	var errs []error
	required := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}

	required("title", p.Title)
	required("description", p.Description)
	required("estimatedCost", p.EstimatedCost)
	required("estimatedRetailPrice", p.EstimatedRetailPrice)
	required("estimatedTime", p.EstimatedTime)
	required("overallDimensions.height", p.OverallDimensions.Height)
	required("overallDimensions.width", p.OverallDimensions.Width)
	required("overallDimensions.depth", p.OverallDimensions.Depth)

	if len(p.ShoppingList) == 0 {
		errs = append(errs, errors.New("shoppingList is empty"))
	}
	for i, item := range p.ShoppingList {
		required(fmt.Sprintf("shoppingList[%d]", i), item)
	}

	if len(p.CutList) == 0 {
		errs = append(errs, errors.New("cutList is empty"))
	}
	for i, c := range p.CutList {
		prefix := fmt.Sprintf("cutList[%d]", i)
		required(prefix+".partName", c.PartName)
		required(prefix+".thickness", c.Thickness)
		required(prefix+".width", c.Width)
		required(prefix+".length", c.Length)
		required(prefix+".material", c.Material)
		if c.Quantity < 1 {
			errs = append(errs, fmt.Errorf("%s.quantity must be >= 1, got %d", prefix, c.Quantity))
		}
	}

	if len(p.AssemblySteps) == 0 {
		errs = append(errs, errors.New("assemblySteps is empty"))
	}
	for i, s := range p.AssemblySteps {
		if s.StepNumber != i+1 {
			errs = append(errs, fmt.Errorf("assemblySteps[%d].stepNumber must be %d, got %d", i, i+1, s.StepNumber))
		}
		required(fmt.Sprintf("assemblySteps[%d].instruction", i), s.Instruction)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
}

// TotalPieces sums the quantities across the cut list.
func (p *WoodworkingPlan) TotalPieces() int {
	n := 0
	for _, c := range p.CutList {
		n += c.Quantity
	}
	return n
}
