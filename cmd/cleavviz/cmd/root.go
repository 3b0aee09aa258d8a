// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleavviz/cleavviz/pkg/filter"
	"github.com/cleavviz/cleavviz/pkg/scale"
	"github.com/cleavviz/cleavviz/pkg/ticks"
)

var (
	// Shared flags
	inputFile    string
	outputFormat string
	dbFile       string
	labelFilter  string
	topN         int
	dropEmpty    bool

	// Flags for heatmap command
	logarithmize bool
	logScale     bool
	tickCount    int

	// Flags for barplot command
	logScalePos     bool
	logScaleNeg     bool
	logarithmizePos bool
	logarithmizeNeg bool
	referenceMode   bool
	legendPos       string
	legendNeg       string
)

var rootCmd = &cobra.Command{
	Use:   "cleavviz",
	Short: "CleavViz - Cleavage plot scaling tool",
	Long: `CleavViz turns per-protein cleavage measurements into renderer-ready plot
data: padded series, log transforms, axis ranges and tick labels.

Supported plots:
- Heatmaps with optional log transform and logarithmic color scale
- Dual-polarity bar plots (intensity up, count down) with independent
  or reference-aligned axes`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(barplotCmd)
	rootCmd.AddCommand(ticksCmd)

	for _, c := range []*cobra.Command{heatmapCmd, barplotCmd} {
		c.Flags().StringVarP(&inputFile, "in", "i", "", "Input entity document, YAML or JSON (required)")
		c.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
		c.Flags().StringVar(&dbFile, "db", "", "Store scaled plots in this SQLite database instead of printing them")
		c.Flags().StringVar(&labelFilter, "labels", "", "Comma-separated label search terms (e.g., 'P02769,Control')")
		c.Flags().IntVar(&topN, "top-n", 0, "Keep only the N entities with the highest positive peak (0 = no limit)")
		c.Flags().BoolVar(&dropEmpty, "drop-empty", false, "Skip entities without any measured value")
		c.MarkFlagRequired("in")
	}

	// Heatmap command flags
	heatmapCmd.Flags().BoolVar(&logarithmize, "logarithmize", false, "Replace values by log10(v) before plotting")
	heatmapCmd.Flags().BoolVar(&logScale, "log-scale", false, "Use a logarithmic color scale")
	heatmapCmd.Flags().IntVar(&tickCount, "tick-count", ticks.DefaultTickCount, "Number of color-bar ticks")

	// Barplot command flags
	barplotCmd.Flags().BoolVar(&logScalePos, "log-scale-pos", false, "Display the positive axis on a log scale")
	barplotCmd.Flags().BoolVar(&logScaleNeg, "log-scale-neg", false, "Display the negative axis on a log scale")
	barplotCmd.Flags().BoolVar(&logarithmizePos, "logarithmize-pos", false, "Replace positive values by log10(v)")
	barplotCmd.Flags().BoolVar(&logarithmizeNeg, "logarithmize-neg", false, "Replace negative values by log10(v)")
	barplotCmd.Flags().BoolVar(&referenceMode, "reference", false, "Draw both polarities on one shared scale")
	barplotCmd.Flags().StringVar(&legendPos, "legend-pos", "Intensity", "Legend of the positive series")
	barplotCmd.Flags().StringVar(&legendNeg, "legend-neg", "Count", "Legend of the negative series")
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Scale entities into a heatmap matrix",
	Long: `Scale every document of the input into a heatmap: one row per entity,
padded to a common length, with color-bar ticks.

Examples:
  # Linear heatmap as JSON
  cleavviz heatmap --in proteins.yaml

  # Logarithmic color scale, stored in a database
  cleavviz heatmap --in proteins.yaml --log-scale --db plots.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scaler := scale.HeatmapScaler{
			LogarithmizeData: logarithmize,
			UseLogScale:      logScale,
			TickCount:        tickCount,
		}
		return runScale(cmd, scaler)
	},
}

var barplotCmd = &cobra.Command{
	Use:   "barplot",
	Short: "Scale paired series into dual-polarity bar plots",
	Long: `Scale every document of the input into a dual-polarity bar plot: the
positive series is drawn upward, the negative series mirrored downward and
rescaled to the same extent.

Examples:
  # Intensity on a log axis, count on a linear axis
  cleavviz barplot --in proteins.yaml --log-scale-pos

  # Compare against a reference group on one shared scale
  cleavviz barplot --in groups.yaml --reference --log-scale-pos --log-scale-neg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scaler := scale.DualAxisScaler{
			UseLogScaleYPos:     logScalePos,
			UseLogScaleYNeg:     logScaleNeg,
			LogarithmizeDataPos: logarithmizePos,
			LogarithmizeDataNeg: logarithmizeNeg,
			ReferenceMode:       referenceMode,
			LegendPos:           legendPos,
			LegendNeg:           legendNeg,
		}
		return runScale(cmd, scaler)
	},
}

var ticksCmd = &cobra.Command{
	Use:   "ticks [linear|log] MAX [COUNT]",
	Short: "Print axis ticks for a range",
	Long: `Print the tick positions and labels generated for a range.

  linear MAX COUNT   COUNT interior ticks in (0, MAX)
  log MAX [COUNT]    color-bar ticks for values up to MAX (COUNT defaults to 4)`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		max, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid max '%s': %w", args[1], err)
		}
		if math.IsInf(max, 0) || math.IsNaN(max) {
			return fmt.Errorf("invalid max '%s': must be finite", args[1])
		}

		count := 0
		if len(args) == 3 {
			count, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid count '%s': %w", args[2], err)
			}
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(args[0]) {
		case "linear":
			vals, err := ticks.LinearTicks(max, count)
			if err != nil {
				return err
			}
			for _, v := range vals {
				fmt.Fprintf(out, "%g\n", v)
			}
		case "log":
			set := ticks.LogTicks([][]float64{{max}}, count)
			for i, v := range set.Values {
				fmt.Fprintf(out, "%g\t%s\n", v, set.Labels[i])
			}
		default:
			return fmt.Errorf("invalid tick kind '%s', must be linear or log", args[0])
		}
		return nil
	},
}

// selection builds the entity filter from the shared flags
func selection() *filter.Config {
	c := &filter.Config{
		TopN:      topN,
		DropEmpty: dropEmpty,
	}
	if labelFilter != "" {
		c.Labels = strings.Split(labelFilter, ",")
		for i := range c.Labels {
			c.Labels[i] = strings.TrimSpace(c.Labels[i])
		}
	}
	return c
}
