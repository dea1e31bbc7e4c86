package main

import (
	"github.com/spf13/cobra"

	"gstcatalog/internal/inspect"
)

type elementSummary struct {
	Name           string `json:"name"`
	Rank           string `json:"rank"`
	Classification string `json:"classification"`
	LongName       string `json:"long_name"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var class string
	var filter string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known elements",
		Long: "List known elements in name order.\n\n" +
			"--class keeps elements whose classification contains the text (case-insensitive),\n" +
			"--filter does the same against element names.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}

			names := engine.ByClassification(class)
			if filter != "" {
				names = intersectSorted(names, engine.Store().ByName(filter))
			}

			summaries := make([]elementSummary, 0, len(names))
			for _, name := range names {
				summaries = append(summaries, summarize(engine.Element(name)))
			}
			if jsonOutput {
				return writeJSON(cmd, summaries)
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{s.Name, s.Rank, s.Classification, s.LongName})
			}
			return writeTable(cmd.OutOrStdout(),
				[]string{"Name", "Rank", "Classification", "Long name"},
				rows,
				nil,
			)
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Only elements whose classification contains this text")
	cmd.Flags().StringVar(&filter, "filter", "", "Only elements whose name contains this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func summarize(element inspect.Element) elementSummary {
	return elementSummary{
		Name:           element.Name,
		Rank:           element.Rank,
		Classification: element.Classification,
		LongName:       element.LongName,
	}
}

// intersectSorted keeps the entries of a that also appear in b. Both inputs are sorted.
func intersectSorted(a, b []string) []string {
	out := make([]string, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
