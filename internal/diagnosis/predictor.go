package diagnosis

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// SiteHeadNeckFace is the anatomical site that boosts the BCC weight.
const SiteHeadNeckFace = "Head/Neck/Face"

const (
	defaultAge      = 45
	defaultSkinTone = 3

	// concentration parameterizes the Dirichlet base draw uniformly across
	// all categories.
	concentration = 0.8

	// baseSeed is fixed so the base draw is identical on every call. The
	// demo trades real randomness for reproducibility; only the attribute
	// adjustments vary the output.
	baseSeed = 42
)

// PatientAttributes is the per-request input record. Age and SkinTone are
// pointers because zero is a valid skin tone; nil means "not provided" and
// falls back to the defaults.
type PatientAttributes struct {
	Age      *int   `json:"age,omitempty"`
	Sex      string `json:"sex,omitempty"`
	SkinTone *int   `json:"skinTone,omitempty"`
	Site     string `json:"site,omitempty"`
}

func (a PatientAttributes) age() int {
	if a.Age == nil {
		return defaultAge
	}
	return *a.Age
}

func (a PatientAttributes) skinTone() int {
	if a.SkinTone == nil {
		return defaultSkinTone
	}
	return *a.SkinTone
}

// Distribution maps each category to its predicted probability.
type Distribution map[Category]float64

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, p := range d {
		sum += p
	}
	return sum
}

// baseWeights draws the Dirichlet base vector. The source is re-seeded on
// every call, so the vector is a process-wide constant.
func baseWeights() []float64 {
	alpha := make([]float64, len(Categories))
	for i := range alpha {
		alpha[i] = concentration
	}
	dir := distmv.NewDirichlet(alpha, rand.NewSource(baseSeed))
	return dir.Rand(nil)
}

// adjust applies the attribute multipliers to a copy of the weight vector.
// The adjustments are independent and may stack. Attribute values that match
// no branch simply leave the weights untouched.
func adjust(weights []float64, attrs PatientAttributes) []float64 {
	out := make([]float64, len(weights))
	copy(out, weights)

	if attrs.age() > 60 {
		out[0] *= 1.6 // AKIEC
	}
	if attrs.skinTone() <= 2 {
		out[7] *= 1.3 // MEL
	}
	if attrs.Site == SiteHeadNeckFace {
		out[1] *= 1.4 // BCC
	}
	return out
}

// Predict maps patient attributes to a probability distribution over all
// categories. It is a pure function: identical attributes always produce an
// identical distribution.
func Predict(attrs PatientAttributes) Distribution {
	weights := adjust(baseWeights(), attrs)

	var sum float64
	for _, w := range weights {
		sum += w
	}

	dist := make(Distribution, len(Categories))
	for i, c := range Categories {
		dist[c] = weights[i] / sum
	}
	return dist
}
