package main

import (
	"fmt"
	"os"

	"github.com/janec/payroll/internal/shell"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	Long: `List all employees in the order they were added, with basic salary,
tax and net salary.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, st, err := openStore()
	if err != nil {
		return err
	}

	records := st.List()
	if len(records) == 0 {
		fmt.Println("No employee records available.")
		return nil
	}

	shell.WriteTable(os.Stdout, records, s.Config().Currency)
	return nil
}
