package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*unitsFlag)(nil)
	_ pflag.Value = (*difficultyFlag)(nil)
	_ pflag.Value = (*woodFlag)(nil)
	_ pflag.Value = (*formatFlag)(nil)
)

type unitsFlag struct{ v *domain.UnitSystem }

func (f *unitsFlag) String() string { return string(*f.v) }
func (f *unitsFlag) Type() string   { return "units" }
func (f *unitsFlag) Set(s string) error {
	u, err := domain.ParseUnitSystem(s)
	if err != nil {
		return err
	}
	*f.v = u
	return nil
}

type difficultyFlag struct{ v *domain.Difficulty }

func (f *difficultyFlag) String() string { return string(*f.v) }
func (f *difficultyFlag) Type() string   { return "difficulty" }
func (f *difficultyFlag) Set(s string) error {
	d, err := domain.ParseDifficulty(s)
	if err != nil {
		return err
	}
	*f.v = d
	return nil
}

type woodFlag struct{ v *domain.WoodType }

func (f *woodFlag) String() string { return string(*f.v) }
func (f *woodFlag) Type() string   { return "wood" }
func (f *woodFlag) Set(s string) error {
	w, err := domain.ParseWoodType(s)
	if err != nil {
		return err
	}
	*f.v = w
	return nil
}

// formatFlag restricts --format to a fixed set of names.
type formatFlag struct {
	v       *string
	allowed []string
}

func newFormatFlag(v *string, def string, allowed ...string) *formatFlag {
	*v = def
	return &formatFlag{v: v, allowed: allowed}
}

func (f *formatFlag) String() string { return *f.v }
func (f *formatFlag) Type() string   { return "format" }
func (f *formatFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range f.allowed {
		if s == a {
			*f.v = s
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (want %s)", s, strings.Join(f.allowed, ", "))
}

// addPlanOptionFlags registers --units, --difficulty and --wood bound to opts.
func addPlanOptionFlags(flags *pflag.FlagSet, opts *domain.PlanOptions) {
	flags.Var(&unitsFlag{v: &opts.Units}, "units", "Measurement system: imperial or metric")
	flags.Var(&difficultyFlag{v: &opts.Difficulty}, "difficulty", "Skill tier: Beginner, Intermediate or Advanced")
	flags.Var(&woodFlag{v: &opts.WoodType}, "wood", "Wood type, e.g. pine, oak, plywood, reclaimed")
}

func planOptionFlagsChanged(flags *pflag.FlagSet) bool {
	return flags.Changed("units") || flags.Changed("difficulty") || flags.Changed("wood")
}
