package searcher

import (
	"mancala/utils"
	"math"
	"slices"
)

// BranchStats counts the terminal lines found under each root pit.
type BranchStats struct {
	Winning []int `json:"winning"`
	Drawn   []int `json:"drawn"`
	Total   []int `json:"total"`
}

func newBranchStats(numPits int) *BranchStats {
	return &BranchStats{
		Winning: make([]int, numPits),
		Drawn:   make([]int, numPits),
		Total:   make([]int, numPits),
	}
}

// Ratio is the share of winning lines under the root pit. It is NaN when no lines were recorded.
func (b *BranchStats) Ratio(pit int) float64 {
	if b.Total[pit] == 0 {
		return math.NaN()
	}
	return float64(b.Winning[pit]) / float64(b.Total[pit])
}

// Best returns the lowest pit with the strictly highest positive ratio, or 0 if none is positive.
func (b *BranchStats) Best() int {
	bestPit := 0
	bestRatio := 0.0
	for pit := range b.Total {
		// NaN compares false
		if ratio := b.Ratio(pit); ratio > bestRatio {
			bestRatio = ratio
			bestPit = pit
		}
	}
	return bestPit
}

// Branches sums the recorded lines over all root pits.
func (b *BranchStats) Branches() int {
	return utils.Sum(b.Total)
}

func (b *BranchStats) clone() BranchStats {
	return BranchStats{
		Winning: slices.Clone(b.Winning),
		Drawn:   slices.Clone(b.Drawn),
		Total:   slices.Clone(b.Total),
	}
}
