package main

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
)

type classCount struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

func newClassesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Count elements per classification token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}

			counts := engine.Store().Classes()
			classes := make([]classCount, 0, len(counts))
			for class, count := range counts {
				classes = append(classes, classCount{Class: class, Count: count})
			}
			slices.SortFunc(classes, func(a, b classCount) int {
				if c := cmp.Compare(b.Count, a.Count); c != 0 {
					return c
				}
				return cmp.Compare(a.Class, b.Class)
			})

			if jsonOutput {
				return writeJSON(cmd, classes)
			}
			rows := make([][]string, 0, len(classes))
			for _, c := range classes {
				rows = append(rows, []string{c.Class, strconv.Itoa(c.Count)})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Class", "Elements"}, rows, []columnAlignment{alignLeft, alignRight})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
