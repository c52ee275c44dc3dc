package colorspace

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// DefaultMinDistance is the minimum RGB distance between the two colors of a gradient
	DefaultMinDistance = 100.0

	differentColorAttempts = 10
	dualColorAttempts      = 20
)

// Distance is the Euclidean distance in 0-255 RGB space, in [0, ~441].
// Returns 0 if either color is unparseable.
func Distance(hexA, hexB string) float64 {
	a, okA := parse(hexA)
	b, okB := parse(hexB)
	if !okA || !okB {
		return 0
	}
	return a.DistanceRgb(b) * 255
}

// Generator draws random colors. The zero value uses the global source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator over rng. A nil rng uses the global source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) intN(n int) int {
	if g == nil || g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}

// RandomColor samples the 24-bit RGB space uniformly
func (g *Generator) RandomColor() string {
	return fmt.Sprintf("#%06x", g.intN(1<<24))
}

// DifferentColor resamples until the color differs from previous, ignoring hex case.
// After 10 attempts the last sample is returned even if it matches.
func (g *Generator) DifferentColor(previous string) string {
	c := g.RandomColor()
	for attempts := 0; strings.EqualFold(c, previous) && attempts < differentColorAttempts; attempts++ {
		c = g.RandomColor()
	}
	return c
}

// DualColorPair resamples colorB until it is at least minDistance away from colorA.
// This is best effort: after 20 attempts the last pair is returned as is.
func (g *Generator) DualColorPair(minDistance float64) (colorA, colorB string) {
	colorA = g.RandomColor()
	colorB = g.RandomColor()
	for attempts := 0; Distance(colorA, colorB) < minDistance && attempts < dualColorAttempts; attempts++ {
		colorB = g.RandomColor()
	}
	return colorA, colorB
}

var defaultGenerator = &Generator{}

// RandomColor samples a color from the global source
func RandomColor() string { return defaultGenerator.RandomColor() }

// DifferentColor draws a color different from previous using the global source
func DifferentColor(previous string) string { return defaultGenerator.DifferentColor(previous) }

// DualColorPair draws a gradient pair using the global source
func DualColorPair(minDistance float64) (string, string) {
	return defaultGenerator.DualColorPair(minDistance)
}
