package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	dt          float64
	duration    float64
	speed       float64
	gravity     float64
	softening   float64
	trailLimit  int
	sampleEvery int
	bodyIdx     int
	axis        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "2d gravitational n-body simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand: open the live view on the default system
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the trajectory",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 100.0, "simulated duration")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 10, "record every nth step")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", 0, "wall-clock speed multiplier (0 = from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's coordinate over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index")
	plotCmd.Flags().StringVar(&axis, "axis", "x", "series to plot (x, y, vx, vy)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in body configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in configuration name")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "minimum pair distance")
	cmd.Flags().IntVar(&trailLimit, "trail", config.DefaultTrailLimit, "trail points kept per body (0 = unbounded)")
}

// loadConfig resolves the effective configuration: defaults, then preset,
// then config file, with explicitly set flags overriding all of them.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gravity
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("trail") {
		cfg.TrailLimit = trailLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := engine.New(cfg.EngineBodies(), cfg.Params())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	steps := int(duration / cfg.Dt)
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	drift := metrics.NewDrift()
	momentum := metrics.NewMomentum()
	drift.Observe(sim.Energy())
	momentum.Observe(sim.Momentum())

	run := &storage.Run{
		Dt:        cfg.Dt,
		G:         cfg.G,
		Softening: cfg.Softening,
		NumBodies: sim.Len(),
	}

	fmt.Printf("running %d bodies for %d steps...\n", sim.Len(), steps)
	start := time.Now()

	for i := 0; i < steps; i++ {
		sim.Step()
		drift.Observe(sim.Energy())
		momentum.Observe(sim.Momentum())

		if i%sampleEvery == 0 {
			row := make([]float64, 0, sim.Len()*4)
			for _, b := range sim.Bodies() {
				row = append(row, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
			}
			run.Times = append(run.Times, sim.Time())
			run.States = append(run.States, row)
		}
	}

	elapsed := time.Since(start)

	run.Metrics = map[string]float64{
		"energy_drift": drift.Value(),
		"momentum_dev": momentum.Value(),
		"final_energy": sim.Energy(),
	}

	runID, err := st.Save(run)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(run.States))
	fmt.Println("\nmetrics:")
	for name, val := range run.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := engine.New(cfg.EngineBodies(), cfg.Params())
	if err != nil {
		return err
	}

	effectiveSpeed := cfg.Speed
	if cmd.Flags().Changed("speed") && speed > 0 {
		effectiveSpeed = speed
	}

	m := viz.NewModel(sim, effectiveSpeed, viz.NewPalette(cfg.Colors()))
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tSTEPS\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumBodies,
			run.Steps,
			run.Dt,
			run.Metrics["energy_drift"],
		)
	}

	return w.Flush()
}

var axisOffsets = map[string]int{"x": 0, "y": 1, "vx": 2, "vy": 3}

func seriesColumn(meta *storage.RunMetadata, body int, axis string) (int, error) {
	offset, ok := axisOffsets[axis]
	if !ok {
		return 0, fmt.Errorf("unknown axis %q (want x, y, vx or vy)", axis)
	}
	if body < 0 || body >= meta.NumBodies {
		return 0, fmt.Errorf("body index %d out of range (run has %d bodies)", body, meta.NumBodies)
	}
	return body*4 + offset, nil
}

func extractSeries(states [][]float64, col int) ([]float64, error) {
	data := make([]float64, len(states))
	for i, row := range states {
		if col >= len(row) {
			return nil, fmt.Errorf("sample %d has %d columns, need at least %d", i, len(row), col+1)
		}
		data[i] = row[col]
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	col, err := seriesColumn(meta, bodyIdx, axis)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data, err := extractSeries(states, col)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d %s vs time", bodyIdx, axis)),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	col, err := seriesColumn(meta, bodyIdx, "x")
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough data")
	}

	data, err := extractSeries(states, col)
	if err != nil {
		return err
	}

	sampleDt := times[1] - times[0]

	fmt.Printf("frequency analysis: %s (body %d)\n\n", meta.ID, bodyIdx)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	period := analysis.DominantPeriod(data, sampleDt)
	if period == 0 {
		fmt.Println("no dominant period found")
		return nil
	}

	fmt.Printf("dominant period: %.3f time units\n", period)
	fmt.Printf("dominant frequency: %.5f per time unit\n", 1.0/period)
	return nil
}
