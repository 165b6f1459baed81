package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablebuilder/internal/source"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file...]",
		Short: "Render records from JSON, YAML or HTML files",
		Long: `Reads records from the given files (or the source.file of the definition, or
JSON from stdin) and renders them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && a.cfg != nil && a.cfg.Source.File != "" {
				args = []string{a.cfg.Source.File}
			}
			set := &source.Set{}
			if len(args) == 0 {
				in, err := source.DecodeJSON(cmd.InOrStdin())
				if err != nil {
					return err
				}
				set = in
			}
			for _, path := range args {
				s, err := source.ReadFile(path)
				if err != nil {
					return err
				}
				a.logger.Debug("read records", "path", path, "records", len(s.Records))
				set.Records = append(set.Records, s.Records...)
				set.Columns = mergeColumns(set.Columns, s.Columns)
			}
			if len(set.Records) == 0 && a.cfg == nil {
				return fmt.Errorf("no records")
			}
			return a.render(cmd, set)
		},
	}
}

func mergeColumns(have, more []string) []string {
	seen := make(map[string]bool, len(have))
	for _, c := range have {
		seen[c] = true
	}
	for _, c := range more {
		if !seen[c] {
			seen[c] = true
			have = append(have, c)
		}
	}
	return have
}
