package app

import (
	"github.com/spf13/cobra"

	"github.com/EthanYidong/rehost/internal/output"
)

// NewInspectCommand creates the inspect command, which assembles the files
// and prints the resulting manifest without serving it.
func (a *App) NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <config>",
		Short: "Assemble the configured files and list what would be served",
		Long: `Inspect runs the same assembly as the server, then prints each served
name with its source, size in bytes and number of replacements applied.

The output format defaults to a table on a terminal and JSON otherwise.`,
		Example: `  rehost inspect site.toml
  rehost inspect site.yaml --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(a.config.Format)
			if err != nil {
				return err
			}

			files, err := a.Assemble(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(output.DetectFormat(string(format)))
			return formatter.Format(cmd.OutOrStdout(), output.Manifest(files))
		},
	}

	cmd.Flags().StringVarP(&a.config.Format, "format", "f", a.config.Format, "output format: table, json, yaml")

	return cmd
}
