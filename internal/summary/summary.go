package summary

import (
	"math"
	"slices"
	"strings"

	"github.com/roach88/morsezoo/internal/ir"
)

// Aggregate groups records by PermutationID. Each group reports its count
// and the min, max and sum of Percentage, scaled by 100 and rounded to two
// decimal places. Groups are returned in binary order of PermutationID.
//
// Aggregate is a pure function. An empty input yields an empty slice.
func Aggregate(records []ir.GraphRecord) []ir.PermutationSummary {
	type acc struct {
		count         int
		min, max, sum float64
	}
	groups := make(map[string]*acc)

	for _, rec := range records {
		g, ok := groups[rec.PermutationID]
		if !ok {
			groups[rec.PermutationID] = &acc{
				count: 1,
				min:   rec.Percentage,
				max:   rec.Percentage,
				sum:   rec.Percentage,
			}
			continue
		}
		g.count++
		g.min = min(g.min, rec.Percentage)
		g.max = max(g.max, rec.Percentage)
		g.sum += rec.Percentage
	}

	out := make([]ir.PermutationSummary, 0, len(groups))
	for perm, g := range groups {
		out = append(out, ir.PermutationSummary{
			PermutationID: perm,
			Count:         g.count,
			MinPercentage: Percent(g.min),
			MaxPercentage: Percent(g.max),
			SumPercentage: Percent(g.sum),
		})
	}
	slices.SortFunc(out, func(a, b ir.PermutationSummary) int {
		return strings.Compare(a.PermutationID, b.PermutationID)
	})
	return out
}

// Percent returns round(100 * x, 2).
func Percent(x float64) float64 {
	return math.Round(x*100*100) / 100
}

// Total sums the counts of a summary list.
func Total(sums []ir.PermutationSummary) int {
	n := 0
	for _, s := range sums {
		n += s.Count
	}
	return n
}
