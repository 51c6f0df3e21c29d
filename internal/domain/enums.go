package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOption is returned when a unit system, difficulty or wood type
// value is not one of the accepted labels.
var ErrInvalidOption = errors.New("invalid plan option")

type UnitSystem string

const (
	UnitsImperial UnitSystem = "imperial"
	UnitsMetric   UnitSystem = "metric"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

type WoodType string

const (
	WoodPine      WoodType = "Pine/Construction Lumber"
	WoodOak       WoodType = "Oak/Hardwood"
	WoodPlywood   WoodType = "Plywood/MDF"
	WoodReclaimed WoodType = "Reclaimed Wood"
)

// UnitSystems, Difficulties and WoodTypes list the accepted values in
// display order.
var (
	UnitSystems  = []UnitSystem{UnitsImperial, UnitsMetric}
	Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
	WoodTypes    = []WoodType{WoodPine, WoodOak, WoodPlywood, WoodReclaimed}
)

func (u UnitSystem) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (w WoodType) Valid() bool {
	switch w {
	case WoodPine, WoodOak, WoodPlywood, WoodReclaimed:
		return true
	}
	return false
}

var woodAliases = map[string]WoodType{
	"pine":         WoodPine,
	"construction": WoodPine,
	"lumber":       WoodPine,
	"oak":          WoodOak,
	"hardwood":     WoodOak,
	"plywood":      WoodPlywood,
	"mdf":          WoodPlywood,
	"reclaimed":    WoodReclaimed,
}

// ParseUnitSystem accepts "imperial" or "metric" in any case.
func ParseUnitSystem(s string) (UnitSystem, error) {
	u := UnitSystem(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: unit system %q (want imperial or metric)", ErrInvalidOption, s)
	}
	return u, nil
}

// ParseDifficulty accepts the three tier names in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	trimmed := strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), trimmed) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: difficulty %q (want Beginner, Intermediate or Advanced)", ErrInvalidOption, s)
}

// ParseWoodType accepts a full wood label in any case, or a short alias
// such as "oak" or "reclaimed".
func ParseWoodType(s string) (WoodType, error) {
	trimmed := strings.TrimSpace(s)
	for _, w := range WoodTypes {
		if strings.EqualFold(string(w), trimmed) {
			return w, nil
		}
	}
	if w, ok := woodAliases[strings.ToLower(trimmed)]; ok {
		return w, nil
	}
	return "", fmt.Errorf("%w: wood type %q", ErrInvalidOption, s)
}

// PlanSource records whether a plan came from the AI service or the
// local fallback generator.
type PlanSource string

const (
	SourceAI       PlanSource = "ai"
	SourceFallback PlanSource = "fallback"
)
