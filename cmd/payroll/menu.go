package main

import (
	"io"
	"os"

	"github.com/janec/payroll/internal/payroll"
	"github.com/janec/payroll/internal/shell"
	"github.com/janec/payroll/internal/storage"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive payroll menu.

The menu loads employees.txt if present, then offers:
  1. Add New Employee
  2. Display All Employees
  3. Search Employee by ID
  4. Save Data to File
  5. Exit

Commands can be chosen by number or by name (add, list, search, save,
exit, or any unique prefix). Every added employee is saved immediately,
and the file is saved once more on exit. A file that could not be loaded
is left as it was unless an employee is added or Save is chosen.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if cmd != nil {
		in = cmd.InOrStdin()
		out = cmd.OutOrStdout()
	}
	return startMenu(in, out)
}

// startMenu runs the menu over in and out. A bad employees file is reported
// by the menu itself and does not stop it.
func startMenu(in io.Reader, out io.Writer) error {
	s, err := storage.Open(flagDir)
	if err != nil {
		return err
	}

	sh := shell.New(payroll.NewStore(), s, in, out, s.Config().Currency)
	return sh.Run()
}
