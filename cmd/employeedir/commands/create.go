package commands

import (
	"os"

	"employeedir/internal/dummyapi"
	"employeedir/internal/terminal"
	"employeedir/internal/web"

	"github.com/spf13/cobra"
)

var createPayload dummyapi.RecordPayload

func init() {
	createCmd.Flags().StringVar(&createPayload.Name, "name", web.DefaultPayload.Name, "Name of the employee.")
	createCmd.Flags().StringVar(&createPayload.Salary, "salary", web.DefaultPayload.Salary, "Salary of the employee.")
	createCmd.Flags().StringVar(&createPayload.Age, "age", web.DefaultPayload.Age, "Age of the employee.")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [--name <name>] [--salary <salary>] [--age <age>]",
	Short: "Creates an employee and prints the response of the API.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sessions.Submit(cmd.Context(), terminal.NewTarget(os.Stdout, !noColor), createPayload)
	},
}
