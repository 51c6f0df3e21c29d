package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/woodgenie/internal/domain"
)

const planSystemPrompt = `You are an expert master carpenter. Analyze furniture images and create detailed, practical woodworking plans in valid JSON format.

When given an image and configuration, you must:
1. Analyze the furniture piece in detail
2. Create a comprehensive cut list with exact dimensions
3. Estimate realistic material costs and retail price
4. Provide step-by-step assembly instructions
5. Return ONLY valid JSON matching the exact schema provided

Always return valid JSON. Do not include markdown, code fences, or explanations.`

const planResponseShape = `{
  "title": "Furniture name",
  "description": "Detailed description",
  "estimatedCost": "$50-75",
  "estimatedRetailPrice": "$800",
  "estimatedTime": "4-6 hours",
  "overallDimensions": {"height": "36\"", "width": "24\"", "depth": "12\""},
  "shoppingList": ["2x4 lumber...", "Screws...", "Wood glue..."],
  "cutList": [
    {"partName": "Leg", "quantity": 4, "thickness": "3/4\"", "width": "2\"", "length": "36\"", "material": "Oak", "notes": "Cut at 90 degrees"}
  ],
  "assemblySteps": [
    {"stepNumber": 1, "instruction": "Cut all pieces according to the cut list..."}
  ]
}`

func unitInstructions(u domain.UnitSystem) string {
	if u == domain.UnitsMetric {
		return "Use METRIC units (Millimeters). Assume standard European structural timber sizes (e.g., 45x95mm)."
	}
	return "Use IMPERIAL units (Inches, Feet). Assume standard US lumber sizes (e.g., 2x4 is 1.5x3.5 inch)."
}

func difficultyInstructions(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyBeginner:
		return "Keep it very simple. Use only basic cuts (90 degree) and screws/glue. Avoid complex joinery like mortise & tenon."
	case domain.DifficultyAdvanced:
		return "Use professional joinery techniques (dadoes, rabbets, or pocket holes) appropriate for high-quality furniture."
	default:
		return "Balance durability with ease of build. Pocket holes are acceptable."
	}
}

func materialInstructions(w domain.WoodType) string {
	return fmt.Sprintf("Primary Material Preference: %s. Base cost estimates on this material price.", w)
}

// BuildPlanPrompt renders the user instruction for one plan request.
func BuildPlanPrompt(opts domain.PlanOptions) string {
	var b strings.Builder
	b.WriteString("Analyze this furniture image and create a detailed woodworking plan.\n\n")
	b.WriteString("CONFIGURATION:\n")
	fmt.Fprintf(&b, "1. %s\n", unitInstructions(opts.Units))
	fmt.Fprintf(&b, "2. Difficulty Level: %s. %s\n", opts.Difficulty, difficultyInstructions(opts.Difficulty))
	fmt.Fprintf(&b, "3. %s\n\n", materialInstructions(opts.WoodType))
	b.WriteString("Estimate the cost of materials (Lumber + Screws + Hardware) vs the cost of buying this item new (Retail Price).\n")
	b.WriteString("Make the Retail Price realistic for a high-end furniture store to highlight savings.\n")
	b.WriteString("Number assembly steps from 1 with no gaps. Every cut list quantity must be at least 1.\n\n")
	b.WriteString("Return ONLY this JSON structure (no markdown, no extra text):\n")
	b.WriteString(planResponseShape)
	return b.String()
}
