package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/internal/testbench"
	benchconfig "github.com/i5heu/TetrisStack/pkg/config"
)

// BenchmarkResult holds results for one simulation run.
type BenchmarkResult struct {
	Mode              string                 `json:"mode"`
	Sessions          int                    `json:"sessions"`
	ActionsPerSession int                    `json:"actions_per_session"`
	Workers           int                    `json:"workers"`
	Actions           int64                  `json:"actions"`
	PerAction         map[string]actionStats `json:"per_action"`
	ActualElapsed     string                 `json:"actual_elapsed"`     // measured time
	Throughput        float64                `json:"throughput_ops_sec"` // actions per second
	Timestamp         int64                  `json:"timestamp"`
	GoVersion         string                 `json:"go_version"`
}

type actionStats struct {
	Applied  int64 `json:"applied"`
	Rejected int64 `json:"rejected"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete bench session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// modeInfo describes a game mode for the summary table.
type modeInfo struct {
	name        string
	description string
	features    []string
}

func getModes() []modeInfo {
	return []modeInfo{
		{
			name:        config.ModeQueue,
			description: "Future piece queue only; pieces are played and inserted by hand.",
			features:    []string{"FIFO"},
		},
		{
			name:        config.ModeReserve,
			description: "Queue with automatic refill plus a reserve stack.",
			features:    []string{"FIFO", "LIFO", "Refill"},
		},
		{
			name:        config.ModeStrategic,
			description: "Reserve mode plus single and batch swaps between queue and stack.",
			features:    []string{"FIFO", "LIFO", "Refill", "Swap"},
		},
	}
}

type benchOptions struct {
	configPath    string
	iterations    int
	sessions      int
	actions       int
	workers       int
	modes         []string
	seed          uint64
	jsonExport    bool
	jsonFile      string
	markdownTable bool
	progress      bool
}

func newRootCmd() *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Soak-test the queue and reserve stack with random sessions",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.markdownTable {
				return outputMarkdownTable(cmd.OutOrStdout(), opts.jsonFile)
			}
			return runBench(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Game config supplying capacities, batch size and alphabet")
	flags.IntVar(&opts.iterations, "iter", 5, "Number of iterations per mode")
	flags.IntVar(&opts.sessions, "sessions", 200, "Random sessions per iteration")
	flags.IntVar(&opts.actions, "actions", 10000, "Actions per session")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Sessions played at once")
	flags.StringSliceVar(&opts.modes, "modes", []string{config.ModeQueue, config.ModeReserve, config.ModeStrategic}, "Modes to exercise")
	flags.Uint64Var(&opts.seed, "seed", 1, "Base seed; session i uses seed+i+1")
	flags.BoolVar(&opts.jsonExport, "json", false, "Append results to the JSON file")
	flags.StringVar(&opts.jsonFile, "jsonfile", "test-results.json", "Path to JSON results file")
	flags.BoolVar(&opts.markdownTable, "markdown-table", false, "Output markdown table from the JSON file and exit")
	flags.BoolVar(&opts.progress, "progress", false, "Display a progress bar with ETA")
	return cmd
}

func runBench(ctx context.Context, stdout, stderr io.Writer, opts *benchOptions) error {
	gameCfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := gameCfg.Validate(); err != nil {
		return err
	}
	known := make(map[string]bool)
	for _, m := range getModes() {
		known[m.name] = true
	}
	for _, mode := range opts.modes {
		if !known[mode] {
			return fmt.Errorf("unknown mode %q", mode)
		}
	}

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = progressbar.NewOptions(len(opts.modes)*opts.iterations*opts.sessions,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("sessions"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	var results []BenchmarkResult
	for _, mode := range opts.modes {
		fmt.Fprintf(stdout, "  [Mode: %s]\n", mode)
		for iteration := 1; iteration <= opts.iterations; iteration++ {
			cfg := benchconfig.Config{
				Mode:              mode,
				QueueCapacity:     gameCfg.QueueCapacity,
				StackCapacity:     gameCfg.StackCapacity,
				BatchSize:         gameCfg.BatchSize,
				Alphabet:          gameCfg.Alphabet,
				Sessions:          opts.sessions,
				ActionsPerSession: opts.actions,
				Workers:           opts.workers,
				Seed:              opts.seed + uint64((iteration-1)*opts.sessions),
			}
			var progress func()
			if bar != nil {
				progress = func() { _ = bar.Add(1) }
			}

			st, err := testbench.RunMany(ctx, cfg, progress)
			if err != nil {
				return fmt.Errorf("mode %s iteration %d: %w", mode, iteration, err)
			}
			result := newResult(cfg, st)
			if bar != nil {
				fmt.Fprint(stdout, "\r")
			}
			fmt.Fprintf(stdout, "    iteration %d/%d => actions=%d, throughput=%.0f ops/s, took=%s\n",
				iteration, opts.iterations, result.Actions, result.Throughput, result.ActualElapsed)
			results = append(results, result)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(stderr)
	}

	if !opts.jsonExport {
		return nil
	}
	report := FullReport{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  gatherSystemInfo(),
		Benchmarks:  results,
	}
	if err := appendReport(opts.jsonFile, report); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nWrote results to %s\n", opts.jsonFile)
	return nil
}

func newResult(cfg benchconfig.Config, st benchconfig.Stats) BenchmarkResult {
	per := make(map[string]actionStats, len(st.PerAction))
	for k, v := range st.PerAction {
		per[k] = actionStats{Applied: v.Applied, Rejected: v.Rejected}
	}
	var throughput float64
	if secs := st.Elapsed.Seconds(); secs > 0 {
		throughput = float64(st.Actions) / secs
	}
	return BenchmarkResult{
		Mode:              cfg.Mode,
		Sessions:          st.Sessions,
		ActionsPerSession: cfg.ActionsPerSession,
		Workers:           cfg.Workers,
		Actions:           st.Actions,
		PerAction:         per,
		ActualElapsed:     st.Elapsed.String(),
		Throughput:        throughput,
		Timestamp:         time.Now().Unix(),
		GoVersion:         runtime.Version(),
	}
}

// appendReport adds report to the sessions already stored in filename.
func appendReport(filename string, report FullReport) error {
	var previous []FullReport
	if data, err := os.ReadFile(filename); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &previous); err != nil {
			return fmt.Errorf("existing %s is not a report list: %w", filename, err)
		}
	}
	updated := append(previous, report)
	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// outputMarkdownTable loads the JSON file and writes a Markdown table of
// the last session.
func outputMarkdownTable(w io.Writer, jsonFile string) error {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		return fmt.Errorf("reading JSON file %q: %w", jsonFile, err)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return fmt.Errorf("unmarshalling JSON: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %s", jsonFile)
	}
	last := sessions[len(sessions)-1]

	meta := make(map[string]modeInfo)
	for _, m := range getModes() {
		meta[m.name] = m
	}

	// Fold iterations of the same mode into one row.
	type tableRow struct {
		mode       string
		features   string
		actions    int64
		rejected   int64
		throughput float64
		runs       int
	}
	rowsByMode := make(map[string]*tableRow)
	for _, b := range last.Benchmarks {
		r, ok := rowsByMode[b.Mode]
		if !ok {
			r = &tableRow{mode: b.Mode, features: strings.Join(meta[b.Mode].features, ", ")}
			rowsByMode[b.Mode] = r
		}
		r.actions += b.Actions
		for _, v := range b.PerAction {
			r.rejected += v.Rejected
		}
		r.throughput += b.Throughput
		r.runs++
	}
	var rows []*tableRow
	for _, r := range rowsByMode {
		r.throughput /= float64(r.runs)
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].throughput > rows[j].throughput
	})

	fmt.Fprintln(w, "## Last Session Simulation Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Mode       | Features                    | Actions      | Rejected % | Throughput (ops/sec) |")
	fmt.Fprintln(w, "|------------|-----------------------------|--------------|------------|----------------------|")
	for _, r := range rows {
		var rejectedPct float64
		if r.actions > 0 {
			rejectedPct = float64(r.rejected) / float64(r.actions) * 100
		}
		fmt.Fprintf(w, "| %-10s | %-27s | %12d | %9.1f%% | %20.0f |\n",
			r.mode, r.features, r.actions, rejectedPct, r.throughput)
	}
	return nil
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
