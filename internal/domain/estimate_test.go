package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEstimateRange(t *testing.T) {
	cases := []struct {
		in     string
		lo, hi float64
		ok     bool
	}{
		{"$45-60", 45, 60, true},
		{"$1,500", 1500, 1500, true},
		{"6-8 hours", 6, 8, true},
		{"$12.50 - $20", 12.5, 20, true},
		{"about a weekend", 0, 0, false},
	}
	for _, tc := range cases {
		lo, hi, ok := ParseEstimateRange(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.lo, lo, tc.in)
		assert.Equal(t, tc.hi, hi, tc.in)
	}
}

func TestWoodworkingPlan_Savings(t *testing.T) {
	p := &WoodworkingPlan{EstimatedCost: "$80-120", EstimatedRetailPrice: "$800"}
	amount, ok := p.Savings()
	assert.True(t, ok)
	assert.Equal(t, 680.0, amount)

	p.EstimatedRetailPrice = "priceless"
	_, ok = p.Savings()
	assert.False(t, ok)
}
