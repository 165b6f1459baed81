package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bjaus/tablebuilder"
	"github.com/bjaus/tablebuilder/internal/config"
	"github.com/bjaus/tablebuilder/internal/source"
)

// app holds the state shared by all subcommands.
type app struct {
	cfgPath    string
	format     string
	transposed bool
	color      bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tablebuilder",
		Short: "Render records as tables",
		Long: `tablebuilder reads records from JSON or YAML files, SQL databases or HTML
pages and renders them as a table declared in a YAML definition. Without a
definition every column of the input becomes a field.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if a.cfgPath == "" {
				return nil
			}
			var err error
			a.cfg, err = config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			a.logger.Debug("loaded config", "path", a.cfgPath, "fields", len(a.cfg.Fields))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to YAML table definition")
	flags.StringVarP(&a.format, "format", "f", "", fmt.Sprintf("output format %v (default from config, else table)", tablebuilder.Formats()))
	flags.BoolVarP(&a.transposed, "transposed", "t", false, "lay fields out as rows")
	flags.BoolVar(&a.color, "color", false, "render styles as ANSI escape codes")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newRenderCmd(a),
		newQueryCmd(a),
		newHTMLCmd(a),
		newExampleCmd(a),
	)
	return root
}

// outputFormat picks the flag, then the config, then the table format.
func (a *app) outputFormat() (tablebuilder.Format, error) {
	if a.format != "" {
		return tablebuilder.ParseFormat(a.format)
	}
	if a.cfg != nil {
		return a.cfg.OutputFormat(), nil
	}
	return tablebuilder.FormatTable, nil
}

// spec returns the configured spec, or one field per column when there is
// no definition.
func (a *app) spec(columns []string) (*tablebuilder.Spec, error) {
	if a.cfg != nil {
		return a.cfg.Spec()
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns in input and no --config given")
	}
	fields := make([]*tablebuilder.Field, len(columns))
	for i, c := range columns {
		f, err := tablebuilder.NewField(c, c, tablebuilder.WithKey(c))
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return tablebuilder.NewSpec(fields...)
}

func (a *app) options(cmd *cobra.Command) ([]tablebuilder.Option, error) {
	var opts []tablebuilder.Option
	if a.cfg != nil {
		var err error
		if opts, err = a.cfg.BuildOptions(); err != nil {
			return nil, err
		}
	}
	opts = append(opts, tablebuilder.WithLogger(a.logger))
	if a.transposed {
		opts = append(opts, tablebuilder.Transposed(true))
	}
	if a.color {
		opts = append(opts, tablebuilder.WithStyler(tablebuilder.ANSIStyler(lipgloss.NewRenderer(cmd.OutOrStdout()))))
	}
	return opts, nil
}

// render builds and writes a table for set.
func (a *app) render(cmd *cobra.Command, set *source.Set) error {
	spec, err := a.spec(set.Columns)
	if err != nil {
		return err
	}
	opts, err := a.options(cmd)
	if err != nil {
		return err
	}
	format, err := a.outputFormat()
	if err != nil {
		return err
	}
	t, err := spec.Build(set.Records, opts...)
	if err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return tablebuilder.Write(cmd.OutOrStdout(), format, t)
}
