package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/woodgenie/internal/domain"
)

// FormatHistory renders the plan history table, newest first.
func FormatHistory(records []*domain.PlanRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No plans yet. Run `woodgenie plan PHOTO` to create one.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			StyleBlue.Render(r.DisplayID()),
			Truncate(r.Plan.Title, 36),
			DifficultyStyle(r.Options.Difficulty).Render(string(r.Options.Difficulty)),
			string(r.Options.WoodType),
			SourceBadge(r.Source),
			Dim(RelativeAge(r.CreatedAt, now)),
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Plans (%d)", len(records))) + "\n")
	b.WriteString(RenderTable([]string{"ID", "Title", "Difficulty", "Wood", "Source", "Created"}, rows))
	return b.String()
}

// FormatOptions lists the accepted values for each plan option.
func FormatOptions(defaults domain.PlanOptions) string {
	var b strings.Builder
	section := func(title, flag string, values []string, def string) {
		b.WriteString(Header(title) + "  " + Dim(flag) + "\n")
		for _, v := range values {
			marker := "  "
			if v == def {
				marker = StyleGreen.Render("* ")
			}
			b.WriteString("  " + marker + v + "\n")
		}
		b.WriteString("\n")
	}

	units := make([]string, len(domain.UnitSystems))
	for i, u := range domain.UnitSystems {
		units[i] = string(u)
	}
	diffs := make([]string, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		diffs[i] = string(d)
	}
	woods := make([]string, len(domain.WoodTypes))
	for i, w := range domain.WoodTypes {
		woods[i] = string(w)
	}

	section("Units", "--units", units, string(defaults.Units))
	section("Difficulty", "--difficulty", diffs, string(defaults.Difficulty))
	section("Wood type", "--wood", woods, string(defaults.WoodType))
	b.WriteString(Dim("* default. Wood types also accept short names: pine, oak, plywood, mdf, reclaimed.") + "\n")
	return b.String()
}
