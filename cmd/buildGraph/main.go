package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BenchmarkResult mirrors the subset of cmd/bench output this tool reads.
type BenchmarkResult struct {
	Mode       string                 `json:"mode"`
	Actions    int64                  `json:"actions"`
	PerAction  map[string]actionStats `json:"per_action"`
	Throughput float64                `json:"throughput_ops_sec"`
}

type actionStats struct {
	Applied  int64 `json:"applied"`
	Rejected int64 `json:"rejected"`
}

// FullReport represents a complete bench session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// actionOrder fixes the bar order so graphs from different runs line up.
var actionOrder = []string{"play", "insert", "reserve", "use_reserved", "swap_one", "swap_batch"}

// successRates returns, per mode, the applied share of each action in
// percent over all sessions. Actions a mode never attempted are absent.
func successRates(sessions []FullReport) map[string]map[string]float64 {
	totals := make(map[string]map[string]actionStats)
	for _, session := range sessions {
		for _, b := range session.Benchmarks {
			if _, ok := totals[b.Mode]; !ok {
				totals[b.Mode] = make(map[string]actionStats)
			}
			for action, st := range b.PerAction {
				cur := totals[b.Mode][action]
				cur.Applied += st.Applied
				cur.Rejected += st.Rejected
				totals[b.Mode][action] = cur
			}
		}
	}

	rates := make(map[string]map[string]float64)
	for mode, actions := range totals {
		rates[mode] = make(map[string]float64)
		for action, st := range actions {
			if n := st.Applied + st.Rejected; n > 0 {
				rates[mode][action] = float64(st.Applied) / float64(n) * 100
			}
		}
	}
	return rates
}

// buildPlot draws one group of bars per action, one bar per mode.
func buildPlot(rates map[string]map[string]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Action success rate by mode"
	p.Y.Label.Text = "Applied (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.TextStyle.Color = white

	p.Add(plotter.NewGrid())

	var modes []string
	for mode := range rates {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	colors := plotutil.SoftColors
	width := vg.Points(18)
	for i, mode := range modes {
		values := make(plotter.Values, len(actionOrder))
		for j, action := range actionOrder {
			values[j] = rates[mode][action]
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, fmt.Errorf("bars for %s: %w", mode, err)
		}
		bars.Color = colors[i%len(colors)]
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(float64(i)-float64(len(modes)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(mode, bars)
	}
	p.NominalX(actionOrder...)
	return p, nil
}

func newRootCmd() *cobra.Command {
	var jsonFile, output string
	cmd := &cobra.Command{
		Use:          "buildGraph",
		Short:        "Plot per-action success rates from bench results",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(jsonFile)
			if err != nil {
				return fmt.Errorf("reading JSON file: %w", err)
			}
			var sessions []FullReport
			if err := json.Unmarshal(data, &sessions); err != nil {
				return fmt.Errorf("unmarshalling JSON: %w", err)
			}
			p, err := buildPlot(successRates(sessions))
			if err != nil {
				return fmt.Errorf("building plot: %w", err)
			}
			if err := p.Save(12*vg.Inch, 7*vg.Inch, output); err != nil {
				return fmt.Errorf("saving plot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Graph saved to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&jsonFile, "jsonfile", "test-results.json", "Path to JSON file containing bench sessions")
	cmd.Flags().StringVar(&output, "out", "action_success.png", "Output graph image filename")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
