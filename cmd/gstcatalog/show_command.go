package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gstcatalog/internal/inspect"
	"gstcatalog/internal/services"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the parsed record of one element from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])
			element, ok := engine.Store().Lookup(name)
			if !ok {
				return services.Wrap(services.ErrNotFound, "catalog", "show", fmt.Sprintf("element %q not found", name), nil)
			}
			return printElement(cmd, element, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect NAME",
		Short: "Run gst-inspect for one element and show the parsed record",
		Long: "Run gst-inspect for one element and show the parsed record.\n\n" +
			"The catalog and snapshot database are not touched. With --dump-file the\n" +
			"element is taken from the dump instead of the tool.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := ctx.source(cmd)
			if err != nil {
				return err
			}
			engine, err := ctx.newEngine(source)
			if err != nil {
				return err
			}
			element, err := engine.InspectElement(commandScope(cmd, ""), args[0])
			if err != nil {
				return err
			}
			return printElement(cmd, element, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printElement(cmd *cobra.Command, element inspect.Element, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, element)
	}
	out := cmd.OutOrStdout()

	details := [][2]string{
		{"Name", element.Name},
		{"Long name", element.LongName},
		{"Classification", element.Classification},
		{"Rank", element.Rank},
		{"Description", element.Description},
		{"Author", element.Author},
	}
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		fmt.Fprintf(out, "%-16s %s\n", d[0]+":", d[1])
	}

	if err := printPadTemplates(out, element.PadTemplates); err != nil {
		return err
	}
	return printProperties(out, element.Properties)
}

func printPadTemplates(out io.Writer, pads []inspect.PadTemplate) error {
	fmt.Fprintf(out, "\nPad templates (%d)\n", len(pads))
	if len(pads) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(pads))
	for _, pad := range pads {
		rows = append(rows, []string{pad.Name, string(pad.Direction), string(pad.Presence), pad.Caps})
	}
	return writeTable(out, []string{"Name", "Direction", "Presence", "Caps"}, rows, nil)
}

func printProperties(out io.Writer, props []inspect.Property) error {
	fmt.Fprintf(out, "\nProperties (%d)\n", len(props))
	if len(props) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(props))
	for _, prop := range props {
		rows = append(rows, []string{
			prop.Name,
			prop.Type,
			flagString(prop),
			prop.Default,
			prop.Range,
			strings.Join(prop.EnumValues, ", "),
		})
	}
	return writeTable(out, []string{"Name", "Type", "Flags", "Default", "Range", "Values"}, rows, nil)
}

// flagString renders access flags as "rwc" with dashes for missing ones.
func flagString(prop inspect.Property) string {
	flags := []byte("---")
	if prop.Readable {
		flags[0] = 'r'
	}
	if prop.Writable {
		flags[1] = 'w'
	}
	if prop.Controllable {
		flags[2] = 'c'
	}
	return string(flags)
}
