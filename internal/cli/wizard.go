package cli

import (
	"github.com/alexanderramin/woodgenie/internal/cli/formatter"
	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// woodgenieHuhTheme returns a huh theme using the formatter palette.
func woodgenieHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planOptionsForm asks for the three plan options, starting from opts.
func planOptionsForm(opts *domain.PlanOptions) *huh.Form {
	units := make([]huh.Option[domain.UnitSystem], 0, len(domain.UnitSystems))
	for _, u := range domain.UnitSystems {
		label := "Imperial (inches)"
		if u == domain.UnitsMetric {
			label = "Metric (mm)"
		}
		units = append(units, huh.NewOption(label, u))
	}

	diffs := make([]huh.Option[domain.Difficulty], 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		diffs = append(diffs, huh.NewOption(string(d), d))
	}

	woods := make([]huh.Option[domain.WoodType], 0, len(domain.WoodTypes))
	for _, w := range domain.WoodTypes {
		woods = append(woods, huh.NewOption(string(w), w))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.UnitSystem]().
				Title("Units").
				Options(units...).
				Value(&opts.Units),
			huh.NewSelect[domain.Difficulty]().
				Title("Difficulty").
				Description("Changes joinery, tools and time estimates.").
				Options(diffs...).
				Value(&opts.Difficulty),
			huh.NewSelect[domain.WoodType]().
				Title("Wood").
				Options(woods...).
				Value(&opts.WoodType),
		),
	).WithTheme(woodgenieHuhTheme()).WithShowHelp(false)
}

func confirmReset() (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all saved plans?").
				Description("This starts a new project and cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(woodgenieHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}
