package commands

import (
	"os"

	"employeedir/internal/terminal"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetches the employee list and prints every employee name.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sessions.Populate(cmd.Context(), terminal.NewTarget(os.Stdout, !noColor))
	},
}
