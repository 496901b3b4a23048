package cli

import (
	"github.com/spf13/cobra"

	fio "github.com/matzehuels/flowgraph/pkg/io"
)

// convertCommand converts payloads between JSON and YAML.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a graph payload between JSON and YAML",
		Long: `Convert a graph payload between JSON and YAML. The payload is validated on
the way. With -o the target format follows the output extension, otherwise
the result goes to stdout in the --to format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := fio.Import(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := fio.Export(nodes, output); err != nil {
					return err
				}
				printSuccess(c.Out, "Converted %d nodes", len(nodes))
				printFile(c.Out, output)
				return nil
			}
			f, err := fio.ParseFormat(to)
			if err != nil {
				return err
			}
			return fio.Write(nodes, c.Out, f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&to, "to", "yaml", "stdout format: json, yaml")

	return cmd
}
