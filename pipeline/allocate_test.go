package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

func piece(t parametric.FurnitureType, p analyzer.Priority, qty int) analyzer.Piece {
	return analyzer.Piece{Type: t, Priority: p, Quantity: qty}
}

func TestAllocate(t *testing.T) {
	wedding := []analyzer.Piece{
		piece(parametric.TypeDiningTable, analyzer.PriorityEssential, 12),
		piece(parametric.TypeChair, analyzer.PriorityEssential, 120),
		piece(parametric.TypeLighting, analyzer.PriorityEssential, 7),
		piece(parametric.TypeSofa, analyzer.PriorityOptional, 1),
		piece(parametric.TypeSecuritySystem, analyzer.PriorityOptional, 1),
	}

	reversed := []analyzer.Piece{
		piece(parametric.TypeSofa, analyzer.PriorityOptional, 4),
		piece(parametric.TypeLighting, analyzer.PriorityRecommended, 4),
		piece(parametric.TypeChair, analyzer.PriorityEssential, 4),
	}

	tests := []struct {
		name   string
		pieces []analyzer.Piece
		budget int
		want   []int
	}{
		{
			name:   "within budget keeps every quantity",
			pieces: []analyzer.Piece{piece(parametric.TypeChair, analyzer.PriorityEssential, 6), piece(parametric.TypeLighting, analyzer.PriorityOptional, 2)},
			budget: 8,
			want:   []int{6, 2},
		},
		{
			name:   "small budget keeps one of each essential",
			pieces: wedding,
			budget: 5,
			want:   []int{1, 3, 1, 0, 0},
		},
		{
			name:   "default budget is split by demand",
			pieces: wedding,
			budget: 50,
			want:   []int{5, 40, 3, 1, 1},
		},
		{
			name:   "essentials win over earlier optional pieces",
			pieces: reversed,
			budget: 2,
			want:   []int{0, 1, 1},
		},
		{
			name:   "empty analysis",
			pieces: nil,
			budget: 10,
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocate(tt.pieces, tt.budget)
			assert.Equal(t, tt.want, got)

			sum := 0
			for i, n := range got {
				assert.LessOrEqual(t, n, tt.pieces[i].Quantity)
				sum += n
			}
			assert.LessOrEqual(t, sum, tt.budget)
		})
	}
}
