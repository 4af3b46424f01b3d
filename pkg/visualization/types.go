// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package visualization

import "encoding/json"

// ChartType identifies one of the supported chart constructions.
type ChartType string

const (
	ChartTypeBar       ChartType = "bar"
	ChartTypeLine      ChartType = "line"
	ChartTypeScatter   ChartType = "scatter"
	ChartTypeHistogram ChartType = "histogram"
	ChartTypeBox       ChartType = "box"
	ChartTypeViolin    ChartType = "violin"
	ChartTypePie       ChartType = "pie"
	ChartTypeHeatmap   ChartType = "heatmap"
)

// ChartTypes lists every supported chart type in presentation order.
var ChartTypes = []ChartType{
	ChartTypeBar,
	ChartTypeLine,
	ChartTypeScatter,
	ChartTypeHistogram,
	ChartTypeBox,
	ChartTypeViolin,
	ChartTypePie,
	ChartTypeHeatmap,
}

// ColorScheme names a palette family for series coloring.
type ColorScheme string

const (
	SchemeDefault     ColorScheme = "default"
	SchemeCategorical ColorScheme = "categorical"
	SchemeSequential  ColorScheme = "sequential"
	SchemeDiverging   ColorScheme = "diverging"
)

// ChartSpec describes one requested visualization. Constructed per render
// request; stateless.
type ChartSpec struct {
	Type        ChartType   `json:"type"`
	XColumn     string      `json:"x_column,omitempty"`
	YColumn     string      `json:"y_column,omitempty"`
	ColorColumn string      `json:"color_column,omitempty"`
	Title       string      `json:"title,omitempty"`
	ColorScheme ColorScheme `json:"color_scheme,omitempty"`
}

// Figure is a renderable ECharts option document. The browser layer feeds
// it to echarts.init(...).setOption(...) unchanged.
type Figure map[string]interface{}

// JSON renders the figure as an ECharts option string.
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
