package cli

import (
	"github.com/OFFIS-RIT/annograph/internal/util"
	"github.com/OFFIS-RIT/annograph/pkg/logger"
	"github.com/OFFIS-RIT/annograph/pkg/logger/console"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the srlview command tree. Flag defaults come from
// SRLVIEW_* environment variables.
func NewRootCmd() *cobra.Command {
	var debug, jsonLogs bool

	root := &cobra.Command{
		Use:           "srlview",
		Short:         "Inspect predicate-argument views built from fixture documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug:  debug,
				JSON:   jsonLogs,
				Prefix: "srlview",
				Output: cmd.ErrOrStderr(),
			}))
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", util.GetEnvBool("DEBUG", false), "enable debug logging")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", util.GetEnvBool("JSON_LOGS", false), "log as JSON lines")

	root.AddCommand(newRenderCmd(), newSchemaCmd())
	return root
}
