// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package visualization builds ECharts option documents from a dataset and
// a chart spec. Construction is best effort: anything that cannot be
// rendered, an unsupported chart type, an empty dataset, a missing or
// non-numeric column, collapses to a nil figure. Absence of a figure is
// the only failure signal the package emits.
package visualization

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/teradata-labs/glance/pkg/dataset"
)

// Builder turns chart specs into figures.
type Builder struct {
	style  *StyleConfig
	logger *zap.Logger
}

// NewBuilder creates a builder. A nil style gets the dashboard defaults.
func NewBuilder(style *StyleConfig, logger *zap.Logger) *Builder {
	if style == nil {
		style = DefaultStyleConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{style: style, logger: logger}
}

// Create builds a figure for the requested chart, or nil when it cannot.
// Errors never propagate past this method.
func (b *Builder) Create(ds *dataset.Dataset, spec ChartSpec) (fig Figure) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Debug("chart construction failed",
				zap.String("type", string(spec.Type)),
				zap.Any("panic", r))
			fig = nil
		}
	}()

	if ds.Empty() {
		return nil
	}

	switch spec.Type {
	case ChartTypeBar:
		fig = b.barFigure(ds, spec)
	case ChartTypeLine:
		fig = b.lineFigure(ds, spec)
	case ChartTypeScatter:
		fig = b.scatterFigure(ds, spec)
	case ChartTypeHistogram:
		fig = b.histogramFigure(ds, spec)
	case ChartTypeBox:
		fig = b.boxFigure(ds, spec)
	case ChartTypeViolin:
		fig = b.violinFigure(ds, spec)
	case ChartTypePie:
		fig = b.pieFigure(ds, spec)
	case ChartTypeHeatmap:
		fig = b.heatmapFigure(ds, spec)
	default:
		b.logger.Debug("unsupported chart type", zap.String("type", string(spec.Type)))
		return nil
	}

	if fig == nil {
		b.logger.Debug("no figure produced",
			zap.String("type", string(spec.Type)),
			zap.String("x", spec.XColumn),
			zap.String("y", spec.YColumn))
		return nil
	}

	fig["color"] = b.style.palette(spec.ColorScheme)
	b.style.applyCommonStyle(fig, spec.Title)
	return fig
}

func hasColumn(ds *dataset.Dataset, col string) bool {
	if col == "" {
		return false
	}
	_, ok := ds.Types[col]
	return ok
}

// labelValuePairs aligns x labels with numeric y values row by row. Rows
// with a missing or non-numeric y cell are dropped.
func labelValuePairs(ds *dataset.Dataset, x, y string) ([]string, []float64) {
	xs := ds.Labels(x)
	labels := make([]string, 0, len(ds.Rows))
	values := make([]float64, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		v, ok := row[y].(float64)
		if !ok {
			continue
		}
		labels = append(labels, xs[i])
		values = append(values, v)
	}
	return labels, values
}

func (b *Builder) barFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil
	}
	labels, values := labelValuePairs(ds, spec.XColumn, spec.YColumn)
	if len(values) == 0 {
		return nil
	}
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(labels),
		"yAxis": b.style.valueAxis(spec.YColumn),
		"series": []interface{}{
			map[string]interface{}{
				"name": spec.YColumn,
				"type": "bar",
				"data": values,
			},
		},
	}
}

func (b *Builder) lineFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil
	}
	labels, values := labelValuePairs(ds, spec.XColumn, spec.YColumn)
	if len(values) == 0 {
		return nil
	}
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(labels),
		"yAxis": b.style.valueAxis(spec.YColumn),
		"series": []interface{}{
			map[string]interface{}{
				"name":   spec.YColumn,
				"type":   "line",
				"data":   values,
				"smooth": true,
			},
		},
	}
}

// scatterFigure encodes x and y numerically. A color column splits the
// points into one series per category so the legend doubles as a key.
func (b *Builder) scatterFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil
	}

	type point struct{ x, y float64 }
	groups := map[string][]point{}
	var order []string
	colorLabels := []string(nil)
	if hasColumn(ds, spec.ColorColumn) {
		colorLabels = ds.Labels(spec.ColorColumn)
	}

	for i, row := range ds.Rows {
		x, okX := row[spec.XColumn].(float64)
		y, okY := row[spec.YColumn].(float64)
		if !okX || !okY {
			continue
		}
		key := ""
		if colorLabels != nil {
			key = colorLabels[i]
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], point{x, y})
	}
	if len(order) == 0 {
		return nil
	}

	series := make([]interface{}, 0, len(order))
	for _, key := range order {
		data := make([]interface{}, 0, len(groups[key]))
		for _, p := range groups[key] {
			data = append(data, []float64{p.x, p.y})
		}
		name := key
		if name == "" {
			name = spec.YColumn
		}
		series = append(series, map[string]interface{}{
			"name": name,
			"type": "scatter",
			"data": data,
		})
	}

	return Figure{
		"grid":   b.gridConfig(),
		"xAxis":  b.style.valueAxis(spec.XColumn),
		"yAxis":  b.style.valueAxis(spec.YColumn),
		"series": series,
	}
}

// histogramFigure bins a single numeric column and renders the counts as
// bars, one category per bin.
func (b *Builder) histogramFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) {
		return nil
	}
	vals := ds.NumericValues(spec.XColumn)
	if len(vals) == 0 {
		return nil
	}

	labels, counts := binValues(vals)
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(labels),
		"yAxis": b.style.valueAxis("count"),
		"series": []interface{}{
			map[string]interface{}{
				"name":     spec.XColumn,
				"type":     "bar",
				"data":     counts,
				"barWidth": "90%",
			},
		},
	}
}

func (b *Builder) boxFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	groups, stats := b.groupedStats(ds, spec)
	if groups == nil {
		return nil
	}
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(groups),
		"yAxis": b.style.valueAxis(spec.YColumn),
		"series": []interface{}{
			map[string]interface{}{
				"name": spec.YColumn,
				"type": "boxplot",
				"data": stats,
			},
		},
	}
}

// violinFigure approximates a violin as box statistics with the raw points
// scattered over each group. ECharts has no native violin mark.
func (b *Builder) violinFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	fig := b.boxFigure(ds, spec)
	if fig == nil {
		return nil
	}

	groupIndex := map[string]int{}
	for i, g := range fig["xAxis"].(map[string]interface{})["data"].([]string) {
		groupIndex[g] = i
	}

	xs := ds.Labels(spec.XColumn)
	var points []interface{}
	for i, row := range ds.Rows {
		v, ok := row[spec.YColumn].(float64)
		if !ok {
			continue
		}
		idx, ok := groupIndex[xs[i]]
		if !ok {
			continue
		}
		// Spread points around the group tick so the density is visible.
		jitter := float64(i%9-4) / 20.0
		points = append(points, []float64{float64(idx) + jitter, v})
	}

	fig["series"] = append(fig["series"].([]interface{}), map[string]interface{}{
		"name":       spec.YColumn + " points",
		"type":       "scatter",
		"data":       points,
		"symbolSize": 5,
		"itemStyle":  map[string]interface{}{"opacity": 0.4},
	})
	return fig
}

// groupedStats computes five-number summaries of y per distinct x value,
// in first-seen group order.
func (b *Builder) groupedStats(ds *dataset.Dataset, spec ChartSpec) ([]string, []interface{}) {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil, nil
	}

	xs := ds.Labels(spec.XColumn)
	byGroup := map[string][]float64{}
	var order []string
	for i, row := range ds.Rows {
		v, ok := row[spec.YColumn].(float64)
		if !ok {
			continue
		}
		g := xs[i]
		if _, seen := byGroup[g]; !seen {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], v)
	}
	if len(order) == 0 {
		return nil, nil
	}

	stats := make([]interface{}, 0, len(order))
	for _, g := range order {
		stats = append(stats, fiveNumber(byGroup[g]))
	}
	return order, stats
}

func (b *Builder) pieFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil
	}
	labels, values := labelValuePairs(ds, spec.XColumn, spec.YColumn)
	if len(values) == 0 {
		return nil
	}

	data := make([]interface{}, len(values))
	for i := range values {
		data[i] = map[string]interface{}{
			"name":  labels[i],
			"value": values[i],
		}
	}
	return Figure{
		"series": []interface{}{
			map[string]interface{}{
				"name":   spec.YColumn,
				"type":   "pie",
				"radius": "60%",
				"data":   data,
			},
		},
	}
}

// heatmapFigure renders the full numeric correlation matrix when either
// axis column is omitted, and otherwise a one-row pivot of mean(y) by x.
func (b *Builder) heatmapFigure(ds *dataset.Dataset, spec ChartSpec) Figure {
	if spec.XColumn == "" || spec.YColumn == "" {
		return b.correlationHeatmap(ds)
	}
	return b.pivotHeatmap(ds, spec)
}

func (b *Builder) correlationHeatmap(ds *dataset.Dataset) Figure {
	cols, matrix := ds.CorrelationMatrix()
	if len(cols) == 0 {
		return nil
	}

	var data []interface{}
	for i := range matrix {
		for j := range matrix[i] {
			data = append(data, []interface{}{j, i, matrix[i][j]})
		}
	}
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(cols),
		"yAxis": b.style.categoryAxis(cols),
		"visualMap": map[string]interface{}{
			"min":        -1.0,
			"max":        1.0,
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"inRange":    map[string]interface{}{"color": divergingPalette},
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":  "correlation",
				"type":  "heatmap",
				"data":  data,
				"label": map[string]interface{}{"show": true},
			},
		},
	}
}

func (b *Builder) pivotHeatmap(ds *dataset.Dataset, spec ChartSpec) Figure {
	if !hasColumn(ds, spec.XColumn) || !hasColumn(ds, spec.YColumn) {
		return nil
	}
	groups, means := ds.GroupMean(spec.XColumn, spec.YColumn)
	if len(groups) == 0 {
		return nil
	}

	lo, hi := means[0], means[0]
	data := make([]interface{}, len(groups))
	for j, m := range means {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
		data[j] = []interface{}{j, 0, m}
	}
	return Figure{
		"grid":  b.gridConfig(),
		"xAxis": b.style.categoryAxis(groups),
		"yAxis": b.style.categoryAxis([]string{fmt.Sprintf("mean(%s)", spec.YColumn)}),
		"visualMap": map[string]interface{}{
			"min":        lo,
			"max":        hi,
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"inRange":    map[string]interface{}{"color": sequentialPalette},
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":  spec.YColumn,
				"type":  "heatmap",
				"data":  data,
				"label": map[string]interface{}{"show": true},
			},
		},
	}
}

func (b *Builder) gridConfig() map[string]interface{} {
	return map[string]interface{}{
		"left":         "8%",
		"right":        "5%",
		"top":          60,
		"bottom":       50,
		"containLabel": true,
	}
}
