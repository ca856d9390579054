package pipeline

import (
	"slices"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
)

var priorityRank = map[analyzer.Priority]int{
	analyzer.PriorityEssential:   0,
	analyzer.PriorityRecommended: 1,
	analyzer.PriorityOptional:    2,
}

// allocate decides how many copies of each piece fit in budget. When the
// pieces ask for more than budget, every piece first gets one copy in
// priority order, then the rest of the budget is split in proportion to the
// unmet quantity using the largest remainder. Ties go to the higher priority
// and then to the earlier piece.
func allocate(pieces []analyzer.Piece, budget int) []int {
	counts := make([]int, len(pieces))
	total := 0
	for _, p := range pieces {
		total += max(p.Quantity, 0)
	}
	if total <= budget {
		for i, p := range pieces {
			counts[i] = max(p.Quantity, 0)
		}
		return counts
	}

	order := make([]int, len(pieces))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return priorityRank[pieces[a].Priority] - priorityRank[pieces[b].Priority]
	})

	left := budget
	for _, i := range order {
		if left == 0 {
			return counts
		}
		if pieces[i].Quantity > 0 {
			counts[i] = 1
			left--
		}
	}

	unmet := 0
	for i, p := range pieces {
		unmet += max(p.Quantity, 0) - counts[i]
	}
	if left == 0 || unmet == 0 {
		return counts
	}

	// left < unmet here, so no share reaches its piece's unmet quantity.
	remainders := make([]int, len(pieces))
	assigned := 0
	for i, p := range pieces {
		want := max(p.Quantity, 0) - counts[i]
		share := left * want / unmet
		remainders[i] = left * want % unmet
		counts[i] += share
		assigned += share
	}
	byRemainder := slices.Clone(order)
	slices.SortStableFunc(byRemainder, func(a, b int) int {
		return remainders[b] - remainders[a]
	})
	for _, i := range byRemainder[:left-assigned] {
		counts[i]++
	}
	return counts
}
