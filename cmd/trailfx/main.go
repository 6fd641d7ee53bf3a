package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trailfx/internal/config"
	"github.com/san-kum/trailfx/internal/export"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/metrics"
	"github.com/san-kum/trailfx/internal/playback"
	"github.com/san-kum/trailfx/internal/session"
	"github.com/san-kum/trailfx/internal/storage"
	"github.com/san-kum/trailfx/internal/trace"
	"github.com/san-kum/trailfx/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	seed       int64
	frameRate  int
	logFile    string
	logLevel   string
	recordPath string
	// bench
	pattern   string
	benchTime time.Duration
	rate      float64
	clicks    int
	runs      int
	width     float64
	height    float64
	// replay / bench output
	svgPath string
	save    bool
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "trailfx",
		Short:        "pointer trail, ripple and hot-zone effects",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trailfx", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 keeps the config value)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal session",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "play a synthesized pointer pattern headlessly",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&pattern, "pattern", string(trace.Circle), "pointer pattern ("+strings.Join(trace.Patterns(), ", ")+")")
	benchCmd.Flags().DurationVar(&benchTime, "time", 5*time.Second, "input duration")
	benchCmd.Flags().Float64Var(&rate, "rate", 120, "pointer moves per second")
	benchCmd.Flags().IntVar(&clicks, "clicks", 5, "clicks spread over the run")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "replay under this many consecutive seeds")
	benchCmd.Flags().Float64Var(&width, "width", 160, "viewport width")
	benchCmd.Flags().Float64Var(&height, "height", 96, "viewport height")
	benchCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	replayCmd := &cobra.Command{
		Use:   "replay [trace.csv]",
		Short: "play a recorded trace headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	replayCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print stored run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return yaml.NewEncoder(os.Stdout).Encode(cfg)
		},
	}
	addLiveFlags(configCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, benchCmd, replayCmd, listCmd, exportCmd, presetsCmd, configCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&recordPath, "record", "", "record input to a trace file (csv)")
}

// resolveConfig applies preset, then config file, then any flag the user set
// explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := viz.GetTheme(cfg.Render.Theme); !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Render.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

// newLogger returns a logger writing to --log, or to fallback when no file
// was given. The returned func closes the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "trailfx",
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI, so logs only go to a file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s := session.New(cfg, session.WithLogger(logger))
	defer s.Close()

	opts := []viz.Option{viz.WithLogger(logger)}
	if recordPath != "" {
		rec, err := trace.Create(recordPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("closing trace", "path", recordPath, "err", err)
			}
			fmt.Printf("recorded %d events to %s\n", rec.Count(), recordPath)
		}()
		opts = append(opts, viz.WithRecorder(rec))
	}

	logger.Info("live session", "seed", cfg.Seed, "theme", cfg.Render.Theme, "fps", cfg.Render.FPS)
	return viz.Run(viz.NewModel(s, opts...))
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	p, err := trace.ParsePattern(pattern)
	if err != nil {
		return err
	}
	events, err := trace.Synthesize(trace.SynthConfig{
		Pattern:  p,
		Duration: benchTime,
		Rate:     rate,
		Clicks:   clicks,
		Width:    width,
		Height:   height,
		Zone:     true,
	}, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	if runs > 1 {
		fmt.Printf("benchmarking %s pattern (%d events, %d seeds from %d)\n\n", p, len(events), runs, cfg.Seed)
		start := time.Now()
		results, err := playback.NewEnsemble(playback.Config{Session: cfg}, runs, cfg.Seed, metrics.Defaults).Run(context.Background(), events)
		if err != nil {
			return err
		}
		return printSpread(os.Stdout, playback.Summarize(results), time.Since(start))
	}

	fmt.Printf("benchmarking %s pattern (%d events)\n\n", p, len(events))
	return playAndReport(cfg, string(p), events, logger)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	events, err := trace.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("replaying %s (%d events, %v)\n\n", args[0], len(events), trace.Duration(events))
	return playAndReport(cfg, args[0], events, logger)
}

func playAndReport(cfg *config.Config, source string, events []trace.Event, logger *log.Logger) error {
	p := playback.New(playback.Config{Session: cfg})
	p.SetLogger(logger)
	for _, m := range metrics.Defaults() {
		p.AddMetric(m)
	}

	start := time.Now()
	res, err := p.Run(context.Background(), events)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := printReport(os.Stdout, res, elapsed); err != nil {
		return err
	}

	if svgPath != "" {
		w, h, zone, ok := viewport(events)
		opts := export.SVGOptions{
			Width:  w,
			Height: h,
			Path:   res.Path,
			Style:  renderStyle(cfg, zone, ok),
		}
		if err := export.WriteSVG(svgPath, res.Final, opts); err != nil {
			return err
		}
		fmt.Printf("\nfinal frame written to %s\n", svgPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(source, cfg, events, res)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func renderStyle(cfg *config.Config, zone fx.Rect, showZone bool) viz.Style {
	th, _ := viz.GetTheme(cfg.Render.Theme)
	return viz.Style{
		Theme:        th,
		EngagedScale: cfg.Render.EngagedScale,
		RippleRadius: cfg.Render.RippleRadius,
		Zone:         zone,
		ShowZone:     showZone,
	}
}

// viewport sizes the SVG to fit every event and returns the last zone, if
// the trace ends with one mounted.
func viewport(events []trace.Event) (w, h float64, zone fx.Rect, ok bool) {
	for _, ev := range events {
		switch ev.Kind {
		case trace.Zone:
			zone, ok = ev.Rect(), true
			w, h = math.Max(w, zone.Max.X), math.Max(h, zone.Max.Y)
		case trace.Unzone:
			ok = false
		default:
			w, h = math.Max(w, ev.X), math.Max(h, ev.Y)
		}
	}
	return math.Ceil(w) + 16, math.Ceil(h) + 16, zone, ok
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tDURATION\tFRAMES\tSEED\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%d\t%.0f\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
			run.Seed,
			run.Metrics["peak_particles"],
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
