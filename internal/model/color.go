package model

import "strings"

// TargetKind tells a single swatch apart from a two-color gradient
type TargetKind string

const (
	TargetSingle TargetKind = "single"
	TargetDual   TargetKind = "dual"
)

// ColorTarget is the color (or ordered pair of colors) a player describes.
// For TargetSingle only Hex is set; for TargetDual only ColorA and ColorB are set.
type ColorTarget struct {
	Kind   TargetKind `json:"kind" bson:"kind"`
	Hex    string     `json:"hex,omitempty" bson:"hex,omitempty"`
	ColorA string     `json:"colorA,omitempty" bson:"colorA,omitempty"`
	ColorB string     `json:"colorB,omitempty" bson:"colorB,omitempty"`
}

// Single builds a single-color target
func Single(hex string) ColorTarget {
	return ColorTarget{Kind: TargetSingle, Hex: hex}
}

// Dual builds a gradient target from colorA to colorB
func Dual(colorA, colorB string) ColorTarget {
	return ColorTarget{Kind: TargetDual, ColorA: colorA, ColorB: colorB}
}

// IsDual reports whether the target is a gradient
func (t ColorTarget) IsDual() bool {
	return t.Kind == TargetDual
}

// Hexes returns the target's colors in order
func (t ColorTarget) Hexes() []string {
	if t.IsDual() {
		return []string{t.ColorA, t.ColorB}
	}
	return []string{t.Hex}
}

// Lower returns a copy with every hex lower-cased
func (t ColorTarget) Lower() ColorTarget {
	return ColorTarget{
		Kind:   t.Kind,
		Hex:    strings.ToLower(t.Hex),
		ColorA: strings.ToLower(t.ColorA),
		ColorB: strings.ToLower(t.ColorB),
	}
}

// String renders the target the way cache keys and logs expect: "#aabbcc" or "#aabbcc_#ddeeff"
func (t ColorTarget) String() string {
	l := t.Lower()
	if l.IsDual() {
		return l.ColorA + "_" + l.ColorB
	}
	return l.Hex
}

// RGB is an 8-bit per channel color
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL uses degrees for hue and percentages for saturation and lightness
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ColorInfo is the classification summary for one hex color
type ColorInfo struct {
	Hex          string `json:"hex"`
	Valid        bool   `json:"valid"`
	RGB          *RGB   `json:"rgb,omitempty"`
	HSL          *HSL   `json:"hsl,omitempty"`
	Family       string `json:"family"`
	ContrastText string `json:"contrastText"`
}
