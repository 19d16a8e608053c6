package filter

import "strings"

var categoryLabels = map[string]string{
	"abaya": "Women Abayas",
	"dress": "Women Dresses",
	"top":   "Women Tops, Blouses & Tee",
	"pants": "Women Bottoms",
	"set":   "Women Sets",
	"hijab": "Hijabs",
	"inner": "Inner Layers",
}

var sleeveLengthLabels = map[string]string{
	"sleeveless":   "Sleeveless",
	"short":        "Short",
	"threeQuarter": "3/4",
	"long":         "Long",
}

var slitCoverageLabels = map[string]string{
	"noSlit":        "No slit",
	"smallSideSlit": "Small side slit",
	"highSlit":      "High slit",
}

var colorSwatches = map[string]string{
	"black":    "#000000",
	"white":    "#FFFFFF",
	"navy":     "#000080",
	"burgundy": "#800020",
	"beige":    "#F5F5DC",
	"olive":    "#808000",
	"cream":    "#FFFDD0",
	"brown":    "#8B4513",
	"gray":     "#808080",
	"grey":     "#808080",
	"red":      "#FF0000",
	"blue":     "#0000FF",
	"green":    "#008000",
	"pink":     "#FFC0CB",
	"purple":   "#800080",
	"maroon":   "#800000",
	"tan":      "#D2B48C",
	"khaki":    "#C3B091",
}

// DefaultSwatch is used for colors without a known swatch.
const DefaultSwatch = "#CCCCCC"

// Label returns the display label of a facet value, or the value itself.
func Label(g Group, value string) string {
	var labels map[string]string
	switch g {
	case Categories:
		labels = categoryLabels
	case SleeveLengths:
		labels = sleeveLengthLabels
	case SlitCoverage:
		labels = slitCoverageLabels
	}
	if l, ok := labels[value]; ok {
		return l
	}
	return value
}

// ColorSwatch returns the hex swatch for a color name (case-insensitive).
func ColorSwatch(name string) string {
	if hex, ok := colorSwatches[strings.ToLower(name)]; ok {
		return hex
	}
	return DefaultSwatch
}
