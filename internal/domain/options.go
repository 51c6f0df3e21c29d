package domain

import (
	"errors"
	"fmt"
)

// PlanOptions holds the three configuration axes chosen by the user.
type PlanOptions struct {
	Units      UnitSystem `json:"unitSystem"`
	Difficulty Difficulty `json:"difficulty"`
	WoodType   WoodType   `json:"woodType"`
}

// DefaultPlanOptions returns imperial units, Beginner difficulty and pine.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		Units:      UnitsImperial,
		Difficulty: DifficultyBeginner,
		WoodType:   WoodPine,
	}
}

// Validate reports every option that is not an accepted value.
func (o PlanOptions) Validate() error {
	var errs []error
	if !o.Units.Valid() {
		errs = append(errs, fmt.Errorf("%w: unit system %q", ErrInvalidOption, o.Units))
	}
	if !o.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("%w: difficulty %q", ErrInvalidOption, o.Difficulty))
	}
	if !o.WoodType.Valid() {
		errs = append(errs, fmt.Errorf("%w: wood type %q", ErrInvalidOption, o.WoodType))
	}
	return errors.Join(errs...)
}

// Normalize replaces invalid values with the defaults.
func (o PlanOptions) Normalize() PlanOptions {
	def := DefaultPlanOptions()
	if !o.Units.Valid() {
		o.Units = def.Units
	}
	if !o.Difficulty.Valid() {
		o.Difficulty = def.Difficulty
	}
	if !o.WoodType.Valid() {
		o.WoodType = def.WoodType
	}
	return o
}
