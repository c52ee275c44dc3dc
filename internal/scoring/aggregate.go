package scoring

import (
	"math"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// AxisWeights are fixed. They sum to 1.
type AxisWeights struct {
	Accurate float64
	Funny    float64
	Popular  float64
}

// Weights is the only weighting the system uses
var Weights = AxisWeights{Accurate: 0.4, Funny: 0.3, Popular: 0.3}

// Sum returns the total weight
func (w AxisWeights) Sum() float64 {
	return w.Accurate + w.Funny + w.Popular
}

// Round1 rounds to one decimal place, halves away from zero
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp bounds an axis score to [0,5]. NaN clamps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Overall is round1(0.4*accurate + 0.3*funny + 0.3*popular)
func Overall(axes model.AxisScores) float64 {
	return Round1(Weights.Accurate*axes.Accurate + Weights.Funny*axes.Funny + Weights.Popular*axes.Popular)
}

// Aggregate attaches the overall score to already clamped and rounded axes
func Aggregate(axes model.AxisScores) model.ScoreResult {
	return model.ScoreResult{
		Funny:    axes.Funny,
		Accurate: axes.Accurate,
		Popular:  axes.Popular,
		Overall:  Overall(axes),
	}
}

// Normalize clamps and rounds untrusted axis values, then aggregates
func Normalize(axes model.AxisScores) model.ScoreResult {
	return Aggregate(model.AxisScores{
		Funny:    Round1(Clamp(axes.Funny)),
		Accurate: Round1(Clamp(axes.Accurate)),
		Popular:  Round1(Clamp(axes.Popular)),
	})
}

// Valid reports whether r could have been produced by Aggregate
func Valid(r model.ScoreResult) bool {
	for _, v := range []float64{r.Funny, r.Accurate, r.Popular, r.Overall} {
		if math.IsNaN(v) || v < MinScore || v > MaxScore || Round1(v) != v {
			return false
		}
	}
	return Overall(r.Axes()) == r.Overall
}
