package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleavviz/cleavviz/pkg/core"
	"github.com/cleavviz/cleavviz/pkg/scale"
)

// plotView is the printed form of a scaled plot. Missing values become null.
type plotView struct {
	Name      string       `json:"name" yaml:"name"`
	Kind      string       `json:"kind" yaml:"kind"`
	Empty     bool         `json:"empty" yaml:"empty"`
	Legend    []string     `json:"legend,omitempty" yaml:"legend,omitempty,flow"`
	Positions []int        `json:"positions" yaml:"positions,flow"`
	Entities  []entityView `json:"entities" yaml:"entities"`
	Axes      []axisView   `json:"axes" yaml:"axes"`
	Extents   *extentsView `json:"extents,omitempty" yaml:"extents,omitempty"`
}

type entityView struct {
	Label    string      `json:"label" yaml:"label"`
	LabelPos string      `json:"label_pos,omitempty" yaml:"label_pos,omitempty"`
	LabelNeg string      `json:"label_neg,omitempty" yaml:"label_neg,omitempty"`
	Positive seriesView  `json:"positive" yaml:"positive"`
	Negative *seriesView `json:"negative,omitempty" yaml:"negative,omitempty"`
}

type seriesView struct {
	Display   []*float64 `json:"display" yaml:"display,flow"`
	Hover     []*float64 `json:"hover" yaml:"hover,flow"`
	HoverText []string   `json:"hover_text" yaml:"hover_text,flow"`
}

type axisView struct {
	Scale      string     `json:"scale" yaml:"scale"`
	Range      []float64  `json:"range" yaml:"range,flow"`
	TickValues []*float64 `json:"tick_values" yaml:"tick_values,flow"`
	TickLabels []string   `json:"tick_labels" yaml:"tick_labels,flow"`
}

type extentsView struct {
	MaxYPos             float64 `json:"max_y_pos" yaml:"max_y_pos"`
	MaxYNeg             float64 `json:"max_y_neg" yaml:"max_y_neg"`
	MaxScaledYPos       float64 `json:"max_scaled_y_pos" yaml:"max_scaled_y_pos"`
	MaxScaledYNeg       float64 `json:"max_scaled_y_neg" yaml:"max_scaled_y_neg"`
	NegativeScaleFactor float64 `json:"negative_scale_factor" yaml:"negative_scale_factor"`
	Degenerate          bool    `json:"degenerate" yaml:"degenerate"`
}

func newPlotView(name string, p *scale.Plot) plotView {
	v := plotView{
		Name:      name,
		Kind:      string(p.Kind),
		Empty:     p.Empty,
		Positions: p.Positions,
		Entities:  make([]entityView, len(p.Entities)),
		Axes:      make([]axisView, len(p.Axes)),
	}
	if v.Positions == nil {
		v.Positions = []int{}
	}
	if p.Kind == scale.KindDualAxis {
		v.Legend = []string{p.Legend[0], p.Legend[1]}
	}

	for i, e := range p.Entities {
		ev := entityView{
			Label:    e.Label,
			LabelPos: e.LabelPos,
			LabelNeg: e.LabelNeg,
			Positive: newSeriesView(e.Positive),
		}
		if e.Negative != nil {
			neg := newSeriesView(*e.Negative)
			ev.Negative = &neg
		}
		v.Entities[i] = ev
	}

	for i, a := range p.Axes {
		v.Axes[i] = axisView{
			Scale:      string(a.Scale),
			Range:      []float64{a.Range[0], a.Range[1]},
			TickValues: nullable(a.TickValues),
			TickLabels: a.TickLabels,
		}
	}

	if p.Extents != nil {
		v.Extents = &extentsView{
			MaxYPos:             p.Extents.MaxYPos,
			MaxYNeg:             p.Extents.MaxYNeg,
			MaxScaledYPos:       p.Extents.MaxScaledYPos,
			MaxScaledYNeg:       p.Extents.MaxScaledYNeg,
			NegativeScaleFactor: p.Extents.NegativeScaleFactor,
			Degenerate:          p.Extents.Degenerate,
		}
	}

	return v
}

func newSeriesView(s scale.ScaledSeries) seriesView {
	return seriesView{
		Display:   nullable(s.Display),
		Hover:     nullable(s.Hover),
		HoverText: s.HoverText,
	}
}

// nullable maps missing values to nil so encoders print null instead of NaN
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !core.IsMissing(values[i]) {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}

// plotEncoder writes plots as a stream: one JSON value or one YAML document
// per plot.
type plotEncoder struct {
	encode func(v interface{}) error
	close  func() error
}

func newPlotEncoder(w io.Writer, format string) (*plotEncoder, error) {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &plotEncoder{encode: enc.Encode, close: func() error { return nil }}, nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &plotEncoder{encode: enc.Encode, close: enc.Close}, nil
	default:
		return nil, fmt.Errorf("invalid output format '%s', must be json or yaml", format)
	}
}

// Encode writes one plot
func (e *plotEncoder) Encode(name string, p *scale.Plot) error {
	return e.encode(newPlotView(name, p))
}

// Close flushes the stream
func (e *plotEncoder) Close() error {
	return e.close()
}
