// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package visualization

// StyleConfig holds the design tokens applied to every figure.
type StyleConfig struct {
	ColorPrimary    string
	ColorBackground string
	ColorText       string
	ColorTextMuted  string
	ColorGrid       string

	FontFamily    string
	FontSizeTitle int
	FontSizeLabel int
}

// DefaultStyleConfig returns the dashboard defaults: white page, Inter,
// Teradata Orange as the brand color.
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		ColorPrimary:    "#f37021",
		ColorBackground: "#ffffff",
		ColorText:       "#1a1a1a",
		ColorTextMuted:  "#666666",
		ColorGrid:       "#d9d9d9",
		FontFamily:      "Inter, sans-serif",
		FontSizeTitle:   16,
		FontSizeLabel:   12,
	}
}

// Palette families. Sequential is viridis, diverging is red-blue.
var (
	categoricalPalette = []string{
		"#f37021", "#60a5fa", "#8b5cf6", "#10b981",
		"#f59e0b", "#ec4899", "#14b8a6",
	}
	sequentialPalette = []string{
		"#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725",
	}
	divergingPalette = []string{
		"#b2182b", "#ef8a62", "#fddbc7", "#f7f7f7",
		"#d1e5f0", "#67a9cf", "#2166ac",
	}
)

// palette resolves a scheme name to its colors. Unknown names fall back to
// the single brand color without complaint.
func (s *StyleConfig) palette(scheme ColorScheme) []string {
	switch scheme {
	case SchemeCategorical:
		return categoricalPalette
	case SchemeSequential:
		return sequentialPalette
	case SchemeDiverging:
		return divergingPalette
	default:
		return []string{s.ColorPrimary}
	}
}

// applyCommonStyle decorates a figure with the uniform chrome: white
// backgrounds, centered title, legend, and the shared font.
func (s *StyleConfig) applyCommonStyle(fig Figure, title string) {
	fig["backgroundColor"] = s.ColorBackground
	fig["textStyle"] = map[string]interface{}{
		"fontFamily": s.FontFamily,
		"color":      s.ColorText,
	}
	fig["title"] = map[string]interface{}{
		"text": title,
		"left": "center",
		"textStyle": map[string]interface{}{
			"fontFamily": s.FontFamily,
			"fontSize":   s.FontSizeTitle,
			"color":      s.ColorText,
		},
	}
	fig["legend"] = map[string]interface{}{
		"show":   true,
		"bottom": 0,
		"textStyle": map[string]interface{}{
			"fontFamily": s.FontFamily,
			"color":      s.ColorTextMuted,
		},
	}
	fig["tooltip"] = map[string]interface{}{
		"trigger": "item",
		"textStyle": map[string]interface{}{
			"fontFamily": s.FontFamily,
		},
	}
}

func (s *StyleConfig) axisLabelStyle() map[string]interface{} {
	return map[string]interface{}{
		"color":      s.ColorTextMuted,
		"fontFamily": s.FontFamily,
		"fontSize":   s.FontSizeLabel,
	}
}

// splitLineStyle renders the light-gray dashed gridlines shared by both
// axes of every cartesian chart.
func (s *StyleConfig) splitLineStyle() map[string]interface{} {
	return map[string]interface{}{
		"show": true,
		"lineStyle": map[string]interface{}{
			"color": s.ColorGrid,
			"type":  "dashed",
		},
	}
}

func (s *StyleConfig) categoryAxis(labels []string) map[string]interface{} {
	return map[string]interface{}{
		"type":      "category",
		"data":      labels,
		"axisLabel": s.axisLabelStyle(),
		"splitLine": s.splitLineStyle(),
	}
}

func (s *StyleConfig) valueAxis(name string) map[string]interface{} {
	axis := map[string]interface{}{
		"type":      "value",
		"axisLabel": s.axisLabelStyle(),
		"splitLine": s.splitLineStyle(),
	}
	if name != "" {
		axis["name"] = name
	}
	return axis
}
