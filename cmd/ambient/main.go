package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ambient/internal/automation"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/engine"
	"github.com/san-kum/ambient/internal/export"
	"github.com/san-kum/ambient/internal/logging"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/viz"
	"github.com/san-kum/ambient/internal/window"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	theme      string
	seed       int64
	maxFPS     float64
	logLevel   string
	logFile    string
	width      int
	height     int
	scriptFile string

	renderFrames int
	renderOut    string
	every        int
	reportPath   string
	snapFrames   int
	snapOut      string
	benchFrames  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ambient",
		Short: "theme-aware particle and wave background",
		RunE:  runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset applied over the config file")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "light", "theme mode (light|dark)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().Float64Var(&maxFPS, "fps", config.DefaultMaxFPS, "frame-rate ceiling (0 disables)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a desktop window",
		RunE:  runWindow,
	}
	sizeFlags(windowCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly to PNG files or an animated GIF",
		RunE:  runRender,
	}
	sizeFlags(renderCmd)
	renderCmd.Flags().IntVar(&renderFrames, "frames", 120, "frames to render")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "ambient.gif", "output .gif file or directory for PNG frames")
	renderCmd.Flags().StringVar(&scriptFile, "script", "", "automation script (yaml)")
	renderCmd.Flags().IntVar(&every, "every", 1, "keep every n-th frame")
	renderCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON run report (- for stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as SVG",
		RunE:  runSnapshot,
	}
	sizeFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 60, "frames to simulate before the snapshot")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "ambient.svg", "output file")
	snapshotCmd.Flags().StringVar(&scriptFile, "script", "", "automation script (yaml)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick cost with the pointer stirring the field",
		RunE:  runBench,
	}
	sizeFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, windowCmd, renderCmd, snapshotCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "surface width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "surface height in pixels")
}

// loadConfig layers defaults, config file, preset, then explicitly set
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !config.Apply(cfg, preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.Scheduler.MaxFPS = maxFPS
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to --log-file when set, else to w.
func newLogger(cfg *config.Config, w io.Writer) (*log.Logger, func(), error) {
	if logFile == "" {
		l, err := logging.New(w, cfg.LogLevel)
		return l, func() {}, err
	}
	l, f, err := logging.OpenFile(logFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI, so logs only go to --log-file
	logger := logging.Discard()
	if logFile != "" {
		l, f, err := logging.OpenFile(logFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = l
	}
	return viz.Run(cfg, logger)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	return window.Run(cfg, logger)
}

func loadScript() (*automation.Script, error) {
	if scriptFile == "" {
		return nil, nil
	}
	s, err := automation.Load(scriptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	return s, nil
}

// newPlayer builds a started player on s. When a script is given and
// --frames was not set, *frames becomes the script length.
func newPlayer(cmd *cobra.Command, s render.Surface, frames *int) (*automation.Player, *config.Config, *log.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	script, err := loadScript()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	s.Resize(cfg.Width, cfg.Height)
	p, err := automation.NewPlayer(cfg, s, script, engine.WithLogger(logger))
	if err != nil {
		closeLog()
		return nil, nil, nil, nil, err
	}
	if script != nil && !cmd.Flags().Changed("frames") && script.Length() > 0 {
		*frames = script.Length()
	}
	return p, cfg, logger, closeLog, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if every < 1 {
		return fmt.Errorf("--every must be at least 1, got %d", every)
	}
	raster := render.NewRaster(1, 1)
	p, cfg, logger, closeLog, err := newPlayer(cmd, raster, &renderFrames)
	if err != nil {
		return err
	}
	defer closeLog()
	defer p.Stop()

	pop := metrics.NewPopulation()
	p.Engine.AddMetric(pop)
	var population []float64
	p.Engine.AddObserver(engine.ObserverFunc(func(s metrics.FrameStats) {
		population = append(population, float64(s.Particles))
	}))
	report := &export.Report{
		Theme:  cfg.Theme,
		Seed:   cfg.Seed,
		Width:  cfg.Width,
		Height: cfg.Height,
		MaxFPS: cfg.Scheduler.MaxFPS,
	}
	if reportPath != "" {
		p.Engine.AddObserver(report)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	asGIF := strings.EqualFold(filepath.Ext(renderOut), ".gif")
	var gifRec *export.GIFRecorder
	if asGIF {
		gifRec = export.NewGIFRecorder(cfg.Scheduler.MaxFPS/float64(every), 0)
	} else if err := os.MkdirAll(renderOut, 0755); err != nil {
		return err
	}

	written := 0
	start := time.Now()
	err = p.Run(ctx, renderFrames, func(frame int, drawn bool) error {
		if !drawn || frame%every != 0 {
			return nil
		}
		written++
		if asGIF {
			gifRec.Add(raster.Image())
			return nil
		}
		return raster.SavePNG(filepath.Join(renderOut, fmt.Sprintf("frame_%05d.png", frame)))
	})
	if err != nil {
		return err
	}
	if asGIF {
		if err := gifRec.Save(renderOut); err != nil {
			return err
		}
	}
	if reportPath != "" {
		st := p.Engine.Stats()
		report.Metrics = p.Engine.Metrics()
		report.Evicted = st.Evicted
		report.Executed = st.Executed
		report.Skipped = st.Skipped
		report.Summarize()
		if err := export.SaveReport(reportPath, report); err != nil {
			return err
		}
	}
	logger.Info("render finished", "frames", renderFrames, "written", written, "elapsed", time.Since(start).Round(time.Millisecond))

	if reportPath == "-" {
		return nil
	}
	fmt.Printf("rendered %d frames (%d written) to %s\n", renderFrames, written, renderOut)
	if len(population) > 1 {
		fmt.Println(asciigraph.Plot(population, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("particles per frame")))
	}
	sum := metrics.Summarize(population)
	fmt.Printf("population: peak %.0f, mean %.1f, std dev %.1f, p95 %.0f\n", pop.Value(), sum.Mean, sum.StdDev, sum.P95)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	p, _, logger, closeLog, err := newPlayer(cmd, render.NewRecorder(1, 1), &snapFrames)
	if err != nil {
		return err
	}
	defer closeLog()
	defer p.Stop()

	if err := p.Run(context.Background(), max(snapFrames, 1), nil); err != nil {
		return err
	}
	if err := export.SaveSVG(snapOut, p.Engine.Frame()); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", snapOut, "frame", p.Frame())
	fmt.Printf("wrote %s\n", snapOut)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	p, cfg, _, closeLog, err := newPlayer(cmd, render.NewRecorder(1, 1), &benchFrames)
	if err != nil {
		return err
	}
	defer closeLog()
	defer p.Stop()

	set := metrics.Default()
	for _, m := range set {
		p.Engine.AddMetric(m)
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	start := time.Now()
	for i := 0; i < benchFrames; i++ {
		// circle the pointer through the middle of the surface
		u := float64(i) / 60
		p.Engine.OnPointerMove(w/2+w/4*math.Cos(u), h/2+h/4*math.Sin(u))
		p.Step()
	}
	elapsed := time.Since(start)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "frames\t%d\n", benchFrames)
	fmt.Fprintf(tw, "surface\t%dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(tw, "elapsed\t%v\n", elapsed.Round(time.Microsecond))
	if benchFrames > 0 {
		fmt.Fprintf(tw, "per frame\t%v\n", (elapsed / time.Duration(benchFrames)).Round(time.Microsecond))
	}
	values := p.Engine.Metrics()
	for _, m := range set {
		fmt.Fprintf(tw, "%s\t%.3f\n", m.Name(), values[m.Name()])
	}
	fmt.Fprintf(tw, "evicted\t%d\n", p.Engine.Stats().Evicted)
	return tw.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMAX\tDENSITY\tSPEED\tBANDS\tFPS")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.1f\t%d\t%.0f\n", name,
			c.Particles.MaxParticles, c.Particles.DensityDivisor, c.Particles.MaxSpeed,
			c.Waves.Bands, c.Scheduler.MaxFPS)
	}
	return tw.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "ambient.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
