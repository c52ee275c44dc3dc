package colorspace

import "github.com/SirPenguin555/Whats-That-Color/internal/model"

// Family is a coarse color-name bucket
type Family string

const (
	Red    Family = "red"
	Orange Family = "orange"
	Yellow Family = "yellow"
	Green  Family = "green"
	Blue   Family = "blue"
	Purple Family = "purple"
	Pink   Family = "pink" // lexicon only, never a dominant family
	Brown  Family = "brown"
	Gray   Family = "gray"
	Black  Family = "black"
	White  Family = "white"
)

// Families lists every family in a stable order
var Families = []Family{Red, Orange, Yellow, Green, Blue, Purple, Pink, Brown, Gray, Black, White}

// Tuned thresholds. These are empirical, not derived from a color model.
const (
	blackMaxLightness  = 15.0
	whiteMinLightness  = 85.0
	whiteMaxSaturation = 20.0
	grayMaxSaturation  = 15.0
	brownHueMin        = 20.0
	brownHueMax        = 45.0
	brownMaxSaturation = 50.0
	brownMaxLightness  = 60.0
)

type hueBand struct {
	from, to float64 // [from, to)
	family   Family
}

var hueBands = []hueBand{
	{0, 15, Red},
	{15, 45, Orange},
	{45, 75, Yellow},
	{75, 165, Green},
	{165, 255, Blue},
	{255, 345, Purple},
	{345, 360, Red},
}

var closeFamilies = buildCloseFamilies(map[Family][]Family{
	Red:    {Pink, Orange, Purple},
	Orange: {Red, Yellow, Brown},
	Yellow: {Orange, Green},
	Green:  {Yellow, Blue},
	Blue:   {Green, Purple},
	Purple: {Blue, Red, Pink},
	Pink:   {Red, Purple},
	Brown:  {Orange, Red},
})

// buildCloseFamilies makes the adjacency symmetric
func buildCloseFamilies(adj map[Family][]Family) map[Family]map[Family]bool {
	out := make(map[Family]map[Family]bool)
	link := func(a, b Family) {
		if out[a] == nil {
			out[a] = make(map[Family]bool)
		}
		out[a][b] = true
	}
	for a, neighbours := range adj {
		for _, b := range neighbours {
			link(a, b)
			link(b, a)
		}
	}
	return out
}

// IsClose reports whether two different families are perceptual neighbours
func IsClose(a, b Family) bool {
	return closeFamilies[a][b]
}

// Classify buckets an HSL color into its dominant family
func Classify(hsl model.HSL) Family {
	switch {
	case hsl.L < blackMaxLightness:
		return Black
	case hsl.L > whiteMinLightness && hsl.S < whiteMaxSaturation:
		return White
	case hsl.S < grayMaxSaturation:
		return Gray
	case hsl.H >= brownHueMin && hsl.H < brownHueMax &&
		hsl.S < brownMaxSaturation && hsl.L < brownMaxLightness:
		return Brown
	}

	h := hsl.H
	if h < 0 || h >= 360 {
		h = 0
	}
	for _, band := range hueBands {
		if h >= band.from && h < band.to {
			return band.family
		}
	}
	return Red
}

// ClassifyHex classifies a hex color, degrading to Gray when it cannot be parsed
func ClassifyHex(hex string) Family {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return Gray
	}
	return Classify(RGBToHSL(rgb))
}
