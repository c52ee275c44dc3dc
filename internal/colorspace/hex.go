// Package colorspace converts and classifies the hex colors shown to players.
package colorspace

import (
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsValidHex reports whether s is a strict "#rrggbb" color
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// HexToRGB parses a strict 6-digit hex color. ok is false for anything else,
// including the 3-digit shorthand colorful would otherwise accept.
func HexToRGB(hex string) (rgb model.RGB, ok bool) {
	c, ok := parse(hex)
	if !ok {
		return model.RGB{}, false
	}
	r, g, b := c.RGB255()
	return model.RGB{R: r, G: g, B: b}, true
}

func parse(hex string) (colorful.Color, bool) {
	if !IsValidHex(hex) {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func fromRGB(rgb model.RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
}

// RGBToHSL converts to hue in [0,360) and saturation/lightness in [0,100].
// Achromatic colors report hue 0.
func RGBToHSL(rgb model.RGB) model.HSL {
	h, s, l := fromRGB(rgb).Hsl()
	if h >= 360 {
		h = 0
	}
	return model.HSL{H: h, S: s * 100, L: l * 100}
}

// Brightness is the plain mean of the three channels
func Brightness(rgb model.RGB) float64 {
	return (float64(rgb.R) + float64(rgb.G) + float64(rgb.B)) / 3
}

// Luminance is the WCAG relative luminance in [0,1]
func Luminance(rgb model.RGB) float64 {
	channel := func(v uint8) float64 {
		c := float64(v) / 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(rgb.R) + 0.7152*channel(rgb.G) + 0.0722*channel(rgb.B)
}

// IsLight reports whether dark text reads better on hex. Unparseable input counts as light.
func IsLight(hex string) bool {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return true
	}
	return Luminance(rgb) > 0.5
}

// ContrastText picks "black" or "white" text for a hex background
func ContrastText(hex string) string {
	if IsLight(hex) {
		return "black"
	}
	return "white"
}

// Describe builds the full classification summary for hex
func Describe(hex string) model.ColorInfo {
	info := model.ColorInfo{
		Hex:          hex,
		Family:       string(ClassifyHex(hex)),
		ContrastText: ContrastText(hex),
	}
	rgb, ok := HexToRGB(hex)
	if !ok {
		return info
	}
	hsl := RGBToHSL(rgb)
	info.Valid = true
	info.RGB = &rgb
	info.HSL = &hsl
	return info
}
