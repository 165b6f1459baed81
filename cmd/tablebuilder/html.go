package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablebuilder/internal/source"
)

func newHTMLCmd(a *app) *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:   "html [file|-]",
		Short: "Render a <table> from an HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			} else if a.cfg != nil && a.cfg.Source.File != "" {
				path = a.cfg.Source.File
			}
			if selector == "" && a.cfg != nil {
				selector = a.cfg.Source.Selector
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening html: %w", err)
				}
				defer f.Close()
				r = f
			}
			set, err := source.HTMLTable(r, selector)
			if err != nil {
				return err
			}
			return a.render(cmd, set)
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "s", "", `CSS selector of the table (default "table")`)
	return cmd
}
