package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newSnapshotsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List captured gst-inspect dumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openSnapshots()
			if err != nil {
				return err
			}
			defer store.Close()

			dumps, err := store.List(commandScope(cmd, ""))
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, dumps)
			}

			rows := make([][]string, 0, len(dumps))
			for _, d := range dumps {
				rows = append(rows, []string{
					strconv.FormatInt(d.ID, 10),
					d.CapturedAt.Local().Format(time.DateTime),
					strconv.Itoa(d.ElementCount),
					d.ToolVersion,
					shortDigest(d.Digest),
				})
			}
			return writeTable(cmd.OutOrStdout(),
				[]string{"ID", "Captured", "Elements", "Tool version", "Digest"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
