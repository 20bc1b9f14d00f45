package main

import (
	"os"

	"github.com/janec/payroll/internal/cli"
	"github.com/janec/payroll/internal/shell"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employee",
	Long: `Show the salary, tax and net salary of the employee with the given ID.

Examples:
  payroll show 1`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeEmployeeIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := cli.ParseID(args[0])
	if err != nil {
		return err
	}

	s, st, err := openStore()
	if err != nil {
		return err
	}

	e, ok := st.FindByID(id)
	if !ok {
		return &cli.NotFoundError{ID: id}
	}

	shell.WriteDetails(os.Stdout, e, s.Config().Currency)
	return nil
}
