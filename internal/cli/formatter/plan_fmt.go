package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"gopkg.in/yaml.v3"
)

var cutListHeaders = []string{"Part", "Qty", "Thickness", "Width", "Length", "Material", "Notes"}

// FormatPlan renders a stored plan for the terminal.
func FormatPlan(rec *domain.PlanRecord) string {
	p := &rec.Plan
	var b strings.Builder

	b.WriteString(Bold(p.Title))
	b.WriteString("  " + SourceBadge(rec.Source))
	if rec.ShortID != "" {
		b.WriteString("  " + Dim(rec.ShortID))
	}
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(StyleFg.Render(p.Description) + "\n")
	}
	if rec.IsFallback() {
		b.WriteString("\n" + StyleYellow.Render("⚠ "+fallbackNotice(rec)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(RenderBox("Build vs. buy", costPanel(p)))
	b.WriteString("\n\n")

	b.WriteString(Header("Overview") + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("Dimensions"), dimensionLine(p.OverallDimensions)))
	b.WriteString(fmt.Sprintf("  %s        %d items, %d pieces\n", Dim("Parts"), len(p.CutList), p.TotalPieces()))
	b.WriteString(fmt.Sprintf("  %s        %d steps\n", Dim("Steps"), len(p.AssemblySteps)))
	b.WriteString(fmt.Sprintf("  %s      %s · %s · %s\n", Dim("Options"),
		rec.Options.Units,
		DifficultyStyle(rec.Options.Difficulty).Render(string(rec.Options.Difficulty)),
		rec.Options.WoodType))
	b.WriteString("\n")

	b.WriteString(Header("Shopping list") + "\n")
	for _, item := range p.ShoppingList {
		b.WriteString("  • " + item + "\n")
	}
	b.WriteString("\n")

	b.WriteString(Header("Cut list") + "\n")
	rows := make([][]string, 0, len(p.CutList))
	for _, c := range p.CutList {
		rows = append(rows, []string{c.PartName, strconv.Itoa(c.Quantity), c.Thickness, c.Width, c.Length, c.Material, Dim(c.Notes)})
	}
	b.WriteString(RenderTable(cutListHeaders, rows))
	b.WriteString("\n")

	b.WriteString(Header("Assembly") + "\n")
	for _, s := range p.AssemblySteps {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleHeader.Render(fmt.Sprintf("%2d.", s.StepNumber)), s.Instruction))
	}
	return b.String()
}

func costPanel(p *domain.WoodworkingPlan) string {
	lines := []string{
		fmt.Sprintf("Build it for %s", StyleGreen.Render(p.EstimatedCost)),
		fmt.Sprintf("instead of paying %s at the store.", StyleRed.Render(p.EstimatedRetailPrice)),
		fmt.Sprintf("%s %s", Dim("Time:"), p.EstimatedTime),
	}
	if amount, ok := p.Savings(); ok && amount > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("You save:"), StyleGreen.Bold(true).Render(FormatMoney(amount))))
	}
	return strings.Join(lines, "\n")
}

func dimensionLine(d domain.Dimensions) string {
	return fmt.Sprintf("%s H x %s W x %s D", d.Height, d.Width, d.Depth)
}

func fallbackNotice(rec *domain.PlanRecord) string {
	if rec.FailureCode == "OFFLINE" {
		return "Offline mode: this is a sample plan for your options, not an analysis of your photo."
	}
	code := rec.FailureCode
	if code == "" {
		code = "UNKNOWN"
	}
	return fmt.Sprintf("AI analysis unavailable (%s): this is a sample plan for your options.", code)
}

// FormatPlanMarkdown renders a plan as a standalone Markdown document.
func FormatPlanMarkdown(rec *domain.PlanRecord) string {
	p := &rec.Plan
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if rec.IsFallback() {
		fmt.Fprintf(&b, "> **Note:** %s\n\n", fallbackNotice(rec))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	b.WriteString("| Estimate | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Material cost | %s |\n", mdCell(p.EstimatedCost))
	fmt.Fprintf(&b, "| Retail price | %s |\n", mdCell(p.EstimatedRetailPrice))
	fmt.Fprintf(&b, "| Build time | %s |\n", mdCell(p.EstimatedTime))
	if amount, ok := p.Savings(); ok && amount > 0 {
		fmt.Fprintf(&b, "| You save | %s |\n", FormatMoney(amount))
	}
	b.WriteString("\n")

	b.WriteString("## Overall Dimensions\n\n")
	fmt.Fprintf(&b, "- Height: %s\n- Width: %s\n- Depth: %s\n\n",
		p.OverallDimensions.Height, p.OverallDimensions.Width, p.OverallDimensions.Depth)

	b.WriteString("## Shopping List\n\n")
	for _, item := range p.ShoppingList {
		fmt.Fprintf(&b, "- [ ] %s\n", item)
	}
	b.WriteString("\n")

	b.WriteString("## Cut List\n\n")
	b.WriteString("| " + strings.Join(cutListHeaders, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(cutListHeaders)) + "\n")
	for _, c := range p.CutList {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			mdCell(c.PartName), c.Quantity, mdCell(c.Thickness), mdCell(c.Width),
			mdCell(c.Length), mdCell(c.Material), mdCell(c.Notes))
	}
	b.WriteString("\n")

	b.WriteString("## Assembly Steps\n\n")
	for _, s := range p.AssemblySteps {
		fmt.Fprintf(&b, "%d. %s\n", s.StepNumber, s.Instruction)
	}

	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "Options: %s · %s · %s", rec.Options.Units, rec.Options.Difficulty, rec.Options.WoodType)
	if rec.ShortID != "" {
		fmt.Fprintf(&b, " · Plan %s", rec.ShortID)
	}
	b.WriteString("\n")
	return b.String()
}

func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// PlanJSON encodes the plan alone, in the same shape the AI service returns.
func PlanJSON(rec *domain.PlanRecord) ([]byte, error) {
	data, err := json.MarshalIndent(rec.Plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return append(data, '\n'), nil
}

// PlanYAML encodes the plan alone as YAML, keeping the JSON field names.
func PlanYAML(rec *domain.PlanRecord) ([]byte, error) {
	data, err := yaml.Marshal(rec.Plan)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return data, nil
}
