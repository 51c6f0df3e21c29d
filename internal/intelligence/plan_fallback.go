package intelligence

import (
	"fmt"

	"github.com/alexanderramin/woodgenie/internal/domain"
)

type fallbackDimensions struct {
	height, width, depth string
	thick, backThick     string
	shelfWidth           string
}

var fallbackDims = map[domain.UnitSystem]fallbackDimensions{
	domain.UnitsImperial: {height: `36"`, width: `24"`, depth: `12"`, thick: `3/4"`, backThick: `1/2"`, shelfWidth: `8"`},
	domain.UnitsMetric:   {height: "900mm", width: "600mm", depth: "300mm", thick: "19mm", backThick: "12mm", shelfWidth: "200mm"},
}

type fallbackEstimate struct {
	cost, retail, time string
}

var fallbackEstimates = map[domain.Difficulty]fallbackEstimate{
	domain.DifficultyBeginner:     {cost: "$45-60", retail: "$300", time: "3-4 hours"},
	domain.DifficultyIntermediate: {cost: "$80-120", retail: "$800", time: "6-8 hours"},
	domain.DifficultyAdvanced:     {cost: "$150-250", retail: "$1500", time: "12-16 hours"},
}

// FallbackPlan builds a generic shelf-unit plan from the options alone.
// It has no external dependency and returns identical output for
// identical options. Invalid options are normalized to the defaults.
func FallbackPlan(opts domain.PlanOptions) domain.WoodworkingPlan {
	opts = opts.Normalize()
	dims := fallbackDims[opts.Units]
	est := fallbackEstimates[opts.Difficulty]
	wood := string(opts.WoodType)

	finish := "stain or paint"
	if opts.WoodType == domain.WoodReclaimed {
		finish = "clear seal"
	}

	return domain.WoodworkingPlan{
		Title:                "Modern Wooden Shelf Unit",
		Description:          fmt.Sprintf("A versatile %s shelf perfect for storing books, plants, and decorative items. Designed for %s skill level.", wood, opts.Difficulty),
		EstimatedCost:        est.cost,
		EstimatedRetailPrice: est.retail,
		EstimatedTime:        est.time,
		OverallDimensions: domain.Dimensions{
			Height: dims.height,
			Width:  dims.width,
			Depth:  dims.depth,
		},
		ShoppingList: []string{
			wood + " lumber - 8ft - qty 4 - $8-12 each",
			"Wood screws 2.5 inch - 1 box - $5",
			"Wood glue - 1 bottle - $4",
			"Sandpaper assortment - 1 pack - $6",
			"Wood stain or paint - 1 quart - $8-15",
			"Mounting hardware - 1 set - $10",
		},
		CutList: []domain.CutItem{
			{
				PartName:  "Vertical Supports",
				Quantity:  2,
				Thickness: dims.thick,
				Width:     dims.shelfWidth,
				Length:    dims.height,
				Material:  wood,
				Notes:     "Sand smooth after cutting",
			},
			{
				PartName:  "Horizontal Shelves",
				Quantity:  3,
				Thickness: dims.thick,
				Width:     dims.shelfWidth,
				Length:    dims.width,
				Material:  wood,
				Notes:     "Ensure all edges are flush",
			},
			{
				PartName:  "Back Panel",
				Quantity:  1,
				Thickness: dims.backThick,
				Width:     dims.width,
				Length:    dims.height,
				Material:  "Plywood",
				Notes:     "Optional for additional support",
			},
		},
		AssemblySteps: []domain.AssemblyStep{
			{StepNumber: 1, Instruction: "Cut all pieces according to the cut list. Sand all surfaces smooth with 120-grit sandpaper."},
			{StepNumber: 2, Instruction: "Drill pilot holes to prevent wood splitting."},
			{StepNumber: 3, Instruction: "Apply wood glue to all joining surfaces."},
			{StepNumber: 4, Instruction: "Assemble shelves to vertical supports using screws or dowels."},
			{StepNumber: 5, Instruction: "Attach back panel if desired for extra stability."},
			{StepNumber: 6, Instruction: fmt.Sprintf("Apply %s and let dry completely.", finish)},
			{StepNumber: 7, Instruction: "Mount to wall using appropriate hardware for your wall type."},
		},
	}
}
