package display

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// lightRatio is how far Light blends a color toward white.
const lightRatio = 0.80

var white = colorful.Color{R: 1, G: 1, B: 1}

// Light returns the desaturated variant of hex used for cell backgrounds.
// Invalid input is returned unchanged.
func Light(hex string) string {
	return blend(hex, white, lightRatio)
}

// Darken blends hex toward black by ratio, for dark theme backgrounds.
func Darken(hex string, ratio float64) string {
	return blend(hex, colorful.Color{}, ratio)
}

func blend(hex string, target colorful.Color, ratio float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return c.BlendLab(target, ratio).Clamped().Hex()
}

// TextOn picks whichever of lightText and darkText contrasts more with bg.
func TextOn(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// IsLight reports whether hex is a light background.
func IsLight(hex string) bool {
	return relativeLuminance(hex) > 0.55
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
