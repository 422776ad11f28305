package diagnosis

import (
	"errors"
	"sort"
)

// ErrEmptyDistribution is returned when a distribution carries no categories
// at all; there is no defined primary diagnosis for it.
var ErrEmptyDistribution = errors.New("distribution has no categories")

// Tier is the rank-derived risk level of a category.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Tier cardinality: rank 0 is HIGH, ranks 1-3 are MEDIUM, the rest LOW,
// regardless of how close the probabilities are.
const mediumCutoff = 3

// RankedCategory is one row of the descending probability ranking.
type RankedCategory struct {
	Rank        int      `json:"rank"`
	Category    Category `json:"category"`
	Probability float64  `json:"probability"`
	Tier        Tier     `json:"tier"`
}

// Assessment is the classified view of a distribution.
type Assessment struct {
	Distribution Distribution
	Ranking      []RankedCategory
	Tiers        map[Category]Tier
	Primary      Category
	Confidence   float64
	OverallRisk  Tier
}

// Classify completes a distribution to the full category set, ranks it by
// probability and derives the risk tiers and primary diagnosis. The input
// map is not modified.
func Classify(dist Distribution) (*Assessment, error) {
	if len(dist) == 0 {
		return nil, ErrEmptyDistribution
	}

	completed := make(Distribution, len(Categories))
	for _, c := range Categories {
		completed[c] = dist[c] // absent labels become 0.0
	}

	ranking := make([]RankedCategory, 0, len(Categories))
	for _, c := range Categories {
		ranking = append(ranking, RankedCategory{Category: c, Probability: completed[c]})
	}
	// Stable sort keeps the canonical category order for ties.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Probability > ranking[j].Probability
	})

	tiers := make(map[Category]Tier, len(ranking))
	for i := range ranking {
		ranking[i].Rank = i
		switch {
		case i == 0:
			ranking[i].Tier = TierHigh
		case i <= mediumCutoff:
			ranking[i].Tier = TierMedium
		default:
			ranking[i].Tier = TierLow
		}
		tiers[ranking[i].Category] = ranking[i].Tier
	}

	top := ranking[0]
	return &Assessment{
		Distribution: completed,
		Ranking:      ranking,
		Tiers:        tiers,
		Primary:      top.Category,
		Confidence:   top.Probability,
		OverallRisk:  top.Tier,
	}, nil
}
