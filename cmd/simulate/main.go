// Command simulate compares the greedy allocation recommendation against
// random repositioning over many simulated shift windows and renders the
// revenue distributions to an HTML chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/driverdash/backend/internal/domain"
	"github.com/driverdash/backend/internal/repository/jsonfile"
	"github.com/driverdash/backend/internal/repository/postgres"
	"github.com/driverdash/backend/internal/sim"
)

func main() {
	var (
		dataDir   = flag.String("data", "", "JSON fixture directory (built-in seed data when empty)")
		condition = flag.String("condition", "clear", "weather condition scenario")
		city      = flag.Int("city", 1, "city to simulate")
		start     = flag.Float64("start", 0, "starting time offset in hours (0.5 grid)")
		horizon   = flag.Float64("horizon", 6, "shift window length in hours")
		drivers   = flag.Int("drivers", 30, "number of simulated drivers")
		runs      = flag.Int("runs", 500, "number of simulation runs")
		model     = flag.String("model", "saturation", "congestion model: saturation or split")
		alpha     = flag.Float64("alpha", sim.DefaultAlpha, "saturation curvature")
		seed      = flag.Int64("seed", 12345, "RNG seed")
		out       = flag.String("out", "allocation_experiment.html", "output HTML chart path")
	)
	flag.Parse()

	var repo domain.ReferenceRepository = postgres.NewMockRepository()
	if *dataDir != "" {
		repo = jsonfile.NewJSONRepository(*dataDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	table, err := repo.LoadDemandTable(ctx)
	if err != nil {
		log.Fatalf("Failed to load demand table: %v", err)
	}

	scenario := sim.Scenario{
		Condition:    *condition,
		City:         *city,
		StartHours:   *start,
		HorizonHours: *horizon,
		Drivers:      *drivers,
		Model:        sim.Model(*model),
		Alpha:        *alpha,
	}

	result := sim.RunExperiment(table, scenario, *runs, *seed)
	summary := result.Summarize()

	fmt.Printf("Runs: %d  city=%d condition=%q horizon=%.1fh drivers=%d model=%s\n",
		summary.Runs, *city, *condition, *horizon, *drivers, *model)
	fmt.Printf("%-16s %12s %12s\n", "Strategy", "Mean total", "Std total")
	fmt.Printf("%-16s %12.2f %12.2f\n", "Recommendation", summary.MeanRec, summary.StdRec)
	fmt.Printf("%-16s %12.2f %12.2f\n", "Random", summary.MeanRand, summary.StdRand)
	fmt.Printf("Win rate (rec > random): %.2f%%\n", summary.WinRate*100)
	fmt.Printf("Average uplift: %.2f%%\n", summary.UpliftPct)

	if err := renderHistogram(result, *out); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	fmt.Printf("Chart written to %s\n", *out)
}

// renderHistogram writes a two-series revenue histogram HTML file.
func renderHistogram(result sim.ExperimentResult, path string) error {
	const bins = 30

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vals := range [][]float64{result.RecTotals, result.RandTotals} {
		for _, v := range vals {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !(hi > lo) {
		hi = lo + 1
	}
	width := (hi - lo) / bins

	labels := make([]string, bins)
	recCounts := make([]opts.BarData, bins)
	randCounts := make([]opts.BarData, bins)
	rec := histogram(result.RecTotals, lo, width, bins)
	rnd := histogram(result.RandTotals, lo, width, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.0f", lo+(float64(i)+0.5)*width)
		recCounts[i] = opts.BarData{Value: rec[i]}
		randCounts[i] = opts.BarData{Value: rnd[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Allocation experiment",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Total revenue per run",
			Subtitle: "Recommendation vs Random",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Recommendation", recCounts).
		AddSeries("Random", randCounts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simulate: failed to create %s: %w", path, err)
	}
	defer f.Close()

	return bar.Render(f)
}

// histogram counts values into fixed-width bins starting at lo.
func histogram(values []float64, lo, width float64, bins int) []int {
	counts := make([]int, bins)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return counts
}
