package server

import (
	"fmt"

	"github.com/chronicdata/brfss-dash/internal/dataset"
	"github.com/chronicdata/brfss-dash/internal/model"
)

// Chart specs follow the Vega-Lite v5 schema; the frontend hands them to
// vega-embed unchanged.
const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

func trendSpec(points []dataset.TrendPoint) map[string]any {
	return map[string]any{
		"$schema": vegaLiteSchema,
		"data":    map[string]any{"values": points},
		"mark":    map[string]any{"type": "line", "point": true},
		"width":   "container",
		"height":  400,
		"encoding": map[string]any{
			"x": map[string]any{"field": "year", "type": "ordinal", "title": "Year"},
			"y": map[string]any{
				"field": "data_value", "type": "quantitative",
				"title": "Percentage (%)", "scale": map[string]any{"zero": false},
			},
			"color":      map[string]any{"field": "question", "type": "nominal", "title": "Question"},
			"strokeDash": map[string]any{"field": "location", "type": "nominal", "title": "State"},
			"tooltip": []map[string]any{
				{"field": "year", "type": "ordinal"},
				{"field": "location", "type": "nominal"},
				{"field": "question", "type": "nominal"},
				{"field": "data_value", "type": "quantitative", "format": ".1f"},
			},
		},
	}
}

func geoSpec(ranked []dataset.LocationValue, year int) map[string]any {
	return map[string]any{
		"$schema": vegaLiteSchema,
		"title":   fmt.Sprintf("State ranking (%d)", year),
		"data":    map[string]any{"values": ranked},
		"mark":    "bar",
		"width":   "container",
		"height":  20 * len(ranked),
		"encoding": map[string]any{
			"x": map[string]any{"field": "data_value", "type": "quantitative", "title": "Percentage (%)"},
			"y": map[string]any{"field": "location_name", "type": "nominal", "sort": "-x", "title": "State"},
			"color": map[string]any{
				"field": "data_value", "type": "quantitative",
				"scale": map[string]any{"scheme": "viridis"}, "legend": nil,
			},
			"tooltip": []map[string]any{
				{"field": "location_name", "type": "nominal"},
				{"field": "data_value", "type": "quantitative", "format": ".1f"},
				{"field": "latitude", "type": "quantitative"},
				{"field": "longitude", "type": "quantitative"},
			},
		},
	}
}

func demographicsSpec(points []dataset.StratValuePoint, category model.StratCategory) map[string]any {
	// Keep the enumerated order (income brackets, age bands) instead of
	// alphabetical.
	order := model.StratValues(category)

	return map[string]any{
		"$schema": vegaLiteSchema,
		"data":    map[string]any{"values": points},
		"mark":    "bar",
		"width":   "container",
		"height":  400,
		"encoding": map[string]any{
			"x": map[string]any{
				"field": "stratification_value", "type": "nominal",
				"sort": order, "title": string(category),
			},
			"y": map[string]any{"field": "data_value", "type": "quantitative", "title": "Percentage (%)"},
			"color": map[string]any{
				"field": "stratification_value", "type": "nominal",
				"sort": order, "legend": nil,
			},
			"tooltip": []map[string]any{
				{"field": "stratification_value", "type": "nominal"},
				{"field": "data_value", "type": "quantitative", "format": ".1f"},
				{"field": "count", "type": "quantitative"},
			},
		},
	}
}

func correlationSpec(pairs []dataset.CorrPoint, year int) map[string]any {
	return map[string]any{
		"$schema": vegaLiteSchema,
		"title":   fmt.Sprintf("Obesity vs. physical inactivity by state (%d)", year),
		"data":    map[string]any{"values": pairs},
		"width":   "container",
		"height":  400,
		"layer": []map[string]any{
			{
				"mark": map[string]any{"type": "circle", "size": 60},
				"encoding": map[string]any{
					"x": map[string]any{
						"field": "y", "type": "quantitative",
						"title": "Physical inactivity (%)", "scale": map[string]any{"zero": false},
					},
					"y": map[string]any{
						"field": "x", "type": "quantitative",
						"title": "Obesity rate (%)", "scale": map[string]any{"zero": false},
					},
					"tooltip": []map[string]any{
						{"field": "location_name", "type": "nominal"},
						{"field": "x", "type": "quantitative", "title": "Obesity", "format": ".1f"},
						{"field": "y", "type": "quantitative", "title": "Inactivity", "format": ".1f"},
					},
				},
			},
			{
				"mark":      map[string]any{"type": "line", "color": "red"},
				"transform": []map[string]any{{"regression": "x", "on": "y"}},
				"encoding": map[string]any{
					"x": map[string]any{"field": "y", "type": "quantitative"},
					"y": map[string]any{"field": "x", "type": "quantitative"},
				},
			},
		},
	}
}
