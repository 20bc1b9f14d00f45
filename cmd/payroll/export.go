package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/janec/payroll/internal/cli"
	"github.com/janec/payroll/internal/export"
	"github.com/janec/payroll/internal/logger"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export employees to a spreadsheet",
	Long: `Write all employees to an Excel workbook, one row per employee in the
order they were added, followed by a totals row.

This is a one-way export; employees.txt is not changed.

Examples:
  payroll export payroll.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return &cli.ValidationError{Field: "file", Message: "export file must end in .xlsx"}
	}

	s, st, err := openStore()
	if err != nil {
		return err
	}

	records := st.List()
	if err := export.WriteXLSX(path, records, s.Config().Currency); err != nil {
		return err
	}
	logger.Get().Info().Int("count", len(records)).Str("path", path).Msg("exported employees")

	fmt.Printf("Exported %d employees to %s\n", len(records), path)
	return nil
}
