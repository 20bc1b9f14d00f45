package main

import (
	"fmt"

	"github.com/janec/payroll/internal/cli"
	"github.com/janec/payroll/internal/logger"
	"github.com/janec/payroll/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <id> <name> <salary>",
	Short: "Add an employee",
	Long: `Add an employee and save employees.txt.

The ID must be a whole number not already in use. Tax and net salary are
worked out from the basic salary. A negative salary is stored as 0.

Examples:
  payroll add 1 Alice 45000
  payroll add 2 "Bob Jones" 9999.50
  payroll add -- 3 Cara -500`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, err := cli.ParseID(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	if !model.ValidName(name) {
		return &cli.ValidationError{Field: "name", Message: fmt.Sprintf("must not contain %q or a line break", model.FieldDelimiter)}
	}
	basic, err := cli.ParseSalary(args[2])
	if err != nil {
		return err
	}

	s, st, err := openStore()
	if err != nil {
		return err
	}

	e, err := st.Add(id, name, basic)
	if err != nil {
		return err
	}

	if err := s.SaveStore(st); err != nil {
		return err
	}
	logger.Get().Info().Int("id", e.ID).Msg("employee added")

	currency := s.Config().Currency
	if basic.IsNegative() {
		fmt.Println(cli.Yellow("Warning: salary cannot be negative, stored as 0"))
	}
	fmt.Printf("%d %s  tax %s  net %s\n", e.ID, e.Name,
		cli.Money(e.Tax, currency), cli.Money(e.NetSalary, currency))
	return nil
}
