package cli

import (
	"github.com/OFFIS-RIT/annograph/pkg/frames"

	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of fixture documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := frames.Schema()
			if err != nil {
				return err
			}
			raw = append(raw, '\n')
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
}
