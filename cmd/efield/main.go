package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/efield/internal/analysis"
	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/export"
	"github.com/san-kum/efield/internal/geometry"
	"github.com/san-kum/efield/internal/logging"
	"github.com/san-kum/efield/internal/render"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile    string
	preset        string
	chargeFlags   []string
	ds            float64
	maxIterations int
	arrowInc      int
	workers       int
	logLevel      string
	theme         string
	// render
	cols int
	rows int
	// export
	outFile string
	// config init
	force bool
)

// main registers the efield commands. With no subcommand it opens the
// interactive editor.
func main() {
	rootCmd := &cobra.Command{
		Use:           "efield",
		Short:         "electric field line tracer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	addSceneFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive field editor",
		RunE:  runTUI,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace the scene and print a summary",
		RunE:  runTrace,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print the field as a braille plot",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&cols, "cols", 100, "plot width in characters")
	renderCmd.Flags().IntVar(&rows, "rows", 35, "plot height in characters")

	exportCmd := &cobra.Command{
		Use:       "export [svg|wkt|geojson]",
		Short:     "export traced field lines",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"svg", "wkt", "geojson"},
		RunE:      runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPresets(cmd.OutOrStdout())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, traceCmd, renderCmd, exportCmd, presetsCmd, configCmd)

	err := rootCmd.Execute()
	_ = logging.Get().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	logging.InitializeStderr(cfg.Logger)
	logging.Get().Debug("configuration loaded",
		zap.String("preset", cfg.Preset),
		zap.Int("charges", len(cfg.Charges)),
		zap.Float64("ds", cfg.Field.StepSize),
		zap.Int("max_iterations", cfg.Field.MaxIterations),
		zap.Int("workers", cfg.Workers),
	)
	return cfg, nil
}

// viewPad is the margin added around charges placed outside the grid.
const viewPad = 0.05

func world(cfg *config.Config) geometry.Bounds {
	return geometry.Bounds{Max: geometry.V(cfg.Grid.Width, cfg.Grid.Height)}
}

func renderOnce(cfg *config.Config) (*render.Frame, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := scene.NewSessionFromConfig(cfg)
	r := render.New(cfg.Workers, logging.Get())
	return r.Render(ctx, sess.Snapshot())
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := scene.NewSessionFromConfig(cfg)
	r := render.New(cfg.Workers, logging.Get())
	app := viz.NewApp(ctx, sess, r, world(cfg), cfg.Theme)

	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	frame, err := renderOnce(cfg)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), frame)
}

func printSummary(out io.Writer, frame *render.Frame) error {
	s := analysis.Summarize(frame.Lines)

	fmt.Fprintf(out, "traced %d lines from %d charges in %v\n\n", s.Lines, len(frame.Charges), frame.Elapsed)
	if s.Lines == 0 {
		fmt.Fprintln(out, "no positive charges: nothing to trace")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHARGE\tPOSITION\tQ\tLINES\tMEAN ITER\tMEAN LENGTH\tTERMINATIONS")
	for _, cs := range s.Charges {
		var terms []string
		for _, k := range (analysis.Summary{Terminations: cs.Terminations}).TerminationKinds() {
			terms = append(terms, fmt.Sprintf("%s=%d", k, cs.Terminations[k]))
		}
		fmt.Fprintf(w, "%d\t(%g, %g)\t%g\t%d\t%.0f\t%.1f\t%s\n",
			cs.Index, cs.Charge.X, cs.Charge.Y, cs.Charge.Magnitude,
			len(cs.Lines), cs.MeanIterations, cs.MeanLength, strings.Join(terms, " "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\ntotal iterations: %d, arrows: %d\n", s.TotalIterations, s.Arrows)
	if series := analysis.IterationSeries(frame.Lines); len(series) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("iterations per line"),
		))
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	frame, err := renderOnce(cfg)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(cols, rows)
	vp := viz.NewViewport(canvas, analysis.ViewBounds(world(cfg), frame.Charges, viewPad))
	styles := viz.NewStyles(viz.GetTheme(cfg.Theme))
	viz.Draw(vp, viz.Layer{
		Grid:        scene.GridFromConfig(cfg.Grid),
		Charges:     frame.Charges,
		Editing:     -1,
		Lines:       frame.Lines,
		ArrowLength: frame.Params.ArrowLength,
	}, styles)

	_, err = fmt.Fprint(cmd.OutOrStdout(), canvas.Render(styles.Line))
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	format := args[0]
	switch format {
	case "svg", "wkt", "geojson":
	default:
		return fmt.Errorf("unknown export format %q (want svg, wkt or geojson)", format)
	}

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	frame, err := renderOnce(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "svg":
		err = export.WriteSVG(out, frame, export.DefaultSVGOptions(cfg.Grid.Width, cfg.Grid.Height, scene.GridFromConfig(cfg.Grid)))
	case "wkt":
		err = export.WriteWKT(out, frame)
	case "geojson":
		err = export.WriteGeoJSON(out, frame)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		logging.Get().Info("exported", zap.String("format", format), zap.String("path", outFile), zap.Int("lines", frame.LineCount()))
	}
	return nil
}

func printPresets(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tCHARGES\tDESCRIPTION")
	for i, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, p.Name, len(p.Charges), p.Description)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "efield.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
