package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var estimateNumber = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseEstimateRange reads the numbers out of a free-form estimate such as
// "$80-120", "$1,500" or "6-8 hours". A single number yields lo == hi.
// ok is false when the string holds no number.
func ParseEstimateRange(s string) (lo, hi float64, ok bool) {
	matches := estimateNumber.FindAllString(s, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}
	vals := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return 0, 0, false
		}
		vals = append(vals, v)
	}
	lo, hi = vals[0], vals[len(vals)-1]
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// Savings returns the retail price minus the upper bound of the material
// cost. ok is false when either value has no number.
func (p *WoodworkingPlan) Savings() (amount float64, ok bool) {
	_, costHi, ok1 := ParseEstimateRange(p.EstimatedCost)
	_, retailHi, ok2 := ParseEstimateRange(p.EstimatedRetailPrice)
	if !ok1 || !ok2 {
		return 0, false
	}
	return retailHi - costHi, true
}
