//Package main provides the qeppsPlot cli. It plots the complex eigenvalue columns of sweep files over frequency
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"qeppsPlot/config"
	"qeppsPlot/sweepData"
	"qeppsPlot/sweepPlot"
	"qeppsPlot/viewer"
)

const (
	exitDataError  = 1
	exitUsageError = 2
)

//application bundles the command line configuration options
type application struct {
	opts    sweepPlot.Options
	cfg     *config.Config
	verbose bool
}

//usageError marks errors caused by invalid command line input
type usageError struct {
	err   error
	usage string
}

func (e *usageError) Error() string {
	return fmt.Sprintf("%v\nUsage:\n%s", e.err, e.usage)
}

func (e *usageError) Unwrap() error {
	return e.err
}

func newUsageError(cmd *cobra.Command, err error) error {
	return &usageError{err: err, usage: cmd.UsageString()}
}

//legacyFlags are the single dash spellings of earlier revisions, pflag only knows single letter shorthands
var legacyFlags = map[string]string{
	"-xl":  "--xlabel",
	"-yl":  "--ylabel",
	"-out": "--output",
	"-col": "--columns",
}

//normalizeArgs rewrites legacy flags to their long form. Arguments after "--" are left untouched
func normalizeArgs(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i, arg := range argv {
		if arg == "--" {
			out = append(out, argv[i:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		long, ok := legacyFlags[name]
		switch {
		case !ok:
			out = append(out, arg)
		case hasValue:
			out = append(out, long+"="+value)
		default:
			out = append(out, long)
		}
	}
	return out
}

func newRootCmd(parsed func(app *application)) *cobra.Command {
	opts := sweepPlot.Options{}
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "qeppsPlot [files...]",
		Short: "Plot complex sweep results over frequency",
		Long: `qeppsPlot draws the eigenvalue columns of sweep files against frequency (THz).
The absolute real part is drawn solid, the negated imaginary part dashed in the color of
its real counterpart. Without --output the figure is shown in the browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newUsageError(cmd, sweepPlot.ErrNoFiles)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			opts.Files = args
			if err := opts.Validate(); err != nil {
				return newUsageError(cmd, err)
			}
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return newUsageError(cmd, err)
			}
			parsed(&application{opts: opts, cfg: cfg, verbose: verbose})
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(c, err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&opts.Output, "output", "o", "", "Save path, format is inferred from the extension. Omit to show the figure (also -out)")
	flags.BoolVar(&opts.Imag, "imag", false, "Plot the negated imaginary part")
	flags.BoolVar(&opts.Real, "real", false, "Plot the absolute real part. Default if neither --real nor --imag is set")
	flags.IntVarP(&opts.Columns, "columns", "c", 1, "Number of data columns to plot per file (also -col)")
	flags.StringVar(&opts.XLabel, "xlabel", sweepPlot.DefaultXLabel, "x axis label (also -xl)")
	flags.StringVar(&opts.YLabel, "ylabel", sweepPlot.DefaultYLabel, "y axis label (also -yl)")
	flags.StringVar(&opts.Title, "title", "", "Figure title")
	flags.BoolVar(&opts.Legend, "legend", false, "Label every trace in a legend")
	flags.StringVar(&configPath, "config", "", "Settings file (yaml, toml or json)")
	flags.Float64("width", 6.4, "Figure width in inches")
	flags.Float64("height", 4.8, "Figure height in inches")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

//ParseArguments parses argv (without the program name). It returns nil and no error if only the help was requested
func ParseArguments(argv []string) (*application, error) {
	var app *application
	cmd := newRootCmd(func(a *application) {
		app = a
	})
	cmd.SetArgs(normalizeArgs(argv))
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	return app, nil
}

func styleFromConfig(c config.FigureConfig) sweepPlot.Style {
	style := sweepPlot.DefaultStyle()
	style.Width = vg.Length(c.Width) * vg.Inch
	style.Height = vg.Length(c.Height) * vg.Inch
	style.LineWidth = vg.Points(c.LineWidth)
	style.Dashes = []vg.Length{vg.Points(c.DashOn), vg.Points(c.DashOff)}
	return style
}

//run renders all files and saves or shows the result
func run(ctx context.Context, app *application) error {
	loader := sweepData.NewLoader(app.cfg.Data.FrequencyScale, app.cfg.Data.Comment, app.cfg.Data.MaxMemoryFraction)
	fig := sweepPlot.NewGonumFigure(styleFromConfig(app.cfg.Figure), app.opts.Legend)

	if err := sweepPlot.Render(app.opts, loader, fig); err != nil {
		return err
	}

	title := app.opts.Title
	if title == "" {
		title = "qeppsPlot"
	}
	shower := viewer.New(app.cfg.Viewer.Addr, title, app.cfg.Viewer.OpenBrowser)
	return sweepPlot.Output(ctx, app.opts, fig, shower, app.cfg.Viewer.Format)
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsageError
	}
	return exitDataError
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	app, err := ParseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing arguments : %v\n", err)
		os.Exit(exitCode(err))
	}
	if app == nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, app)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("qeppsPlot failed")
		os.Exit(exitCode(err))
	}
}
