// Package shell implements the interactive payroll menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/janec/payroll/internal/cli"
	"github.com/janec/payroll/internal/logger"
	"github.com/janec/payroll/internal/model"
	"github.com/janec/payroll/internal/payroll"
	"github.com/shopspring/decimal"
)

// Menu commands, in menu order.
const (
	cmdAdd    = "add"
	cmdList   = "list"
	cmdSearch = "search"
	cmdSave   = "save"
	cmdExit   = "exit"
)

var commands = []string{cmdAdd, cmdList, cmdSearch, cmdSave, cmdExit}

// errInputClosed signals that input ended in the middle of a prompt.
var errInputClosed = errors.New("input closed")

// Persister loads and saves the store.
// storage.Storage is the production implementation.
type Persister interface {
	Exists() bool
	Path() string
	LoadInto(st *payroll.Store) (int, error)
	SaveStore(st *payroll.Store) error
}

// Shell runs the menu loop over a line-oriented reader and writer.
type Shell struct {
	store    *payroll.Store
	files    Persister
	in       *bufio.Scanner
	out      io.Writer
	currency string

	// loadFailed is set when the startup load failed and cleared once the
	// user adds a record or saves. While set, exit leaves the file alone.
	loadFailed bool
}

// New returns a Shell over store, saving through files.
func New(store *payroll.Store, files Persister, in io.Reader, out io.Writer, currency string) *Shell {
	return &Shell{
		store:    store,
		files:    files,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
	}
}

// Run loads existing records and serves the menu until exit or end of input.
// Records are saved once more before Run returns.
func (sh *Shell) Run() error {
	sh.printf("%s\n", cli.Bold("============================================="))
	sh.printf("%s\n", cli.Bold("   PAYROLL MANAGEMENT SYSTEM"))
	sh.printf("%s\n", cli.Bold("============================================="))

	sh.Load()

	for {
		sh.printMenu()
		line, ok := sh.readLine()
		if !ok {
			sh.printf("\n")
			sh.exit()
			return sh.in.Err()
		}

		cmd, err := resolveChoice(line)
		if err != nil {
			sh.printf("%s\n", cli.Red("Invalid choice! Please enter a number between 1 and 5."))
			continue
		}

		var cmdErr error
		switch cmd {
		case cmdAdd:
			cmdErr = sh.Add()
		case cmdList:
			sh.List()
		case cmdSearch:
			cmdErr = sh.Search()
		case cmdSave:
			sh.loadFailed = false
			sh.Save()
		case cmdExit:
			sh.exit()
			return nil
		}

		if errors.Is(cmdErr, errInputClosed) {
			sh.printf("\n")
			sh.exit()
			return sh.in.Err()
		}
	}
}

// Load replaces the store contents with the saved file, if any.
// Failures are reported and leave the store as it was.
func (sh *Shell) Load() {
	log := logger.Get()
	path := sh.files.Path()

	if !sh.files.Exists() {
		sh.printf("No existing data file found. Starting fresh.\n")
		log.Info().Str("path", path).Msg("no data file")
		return
	}

	n, err := sh.files.LoadInto(sh.store)
	if err != nil {
		sh.printf("%s\n", cli.Red(fmt.Sprintf("Could not load '%s': %v", path, err)))
		sh.printf("Starting with %d employee records.\n", sh.store.Count())
		log.Warn().Err(err).Str("path", path).Msg("load failed")
		sh.loadFailed = true
		return
	}

	sh.printf("Loaded %d employee records from '%s'.\n", n, path)
	log.Info().Int("count", n).Str("path", path).Msg("loaded employees")
}

// Add prompts for a new employee, stores it and saves.
func (sh *Shell) Add() error {
	if sh.store.Full() {
		sh.printf("%s\n", cli.Red(fmt.Sprintf("Maximum employee limit reached (%d)!", sh.store.Capacity())))
		return nil
	}

	sh.printf("\n%s\n", cli.Bold("=== ADD NEW EMPLOYEE ==="))

	for {
		id, err := sh.promptNewID()
		if err != nil {
			return err
		}
		name, err := sh.promptName()
		if err != nil {
			return err
		}
		basic, err := sh.promptSalary()
		if err != nil {
			return err
		}

		e, err := sh.store.Add(id, name, basic)
		var dup *payroll.DuplicateIDError
		var full *payroll.CapacityError
		switch {
		case errors.As(err, &dup):
			sh.printf("%s\n", cli.Yellow(fmt.Sprintf("Employee ID %d already exists! Please enter a different ID.", dup.ID)))
			continue
		case errors.As(err, &full):
			sh.printf("%s\n", cli.Red(fmt.Sprintf("Maximum employee limit reached (%d)!", full.Capacity)))
			return nil
		case err != nil:
			return err
		}

		logger.Get().Info().Int("id", e.ID).Str("tax", e.Tax.StringFixed(2)).Msg("employee added")
		sh.loadFailed = false

		sh.printf("\n%s\n", cli.Green("Employee added successfully!"))
		sh.printf("Tax deducted: %s\n", cli.Money(e.Tax, sh.currency))
		sh.printf("Net Salary: %s\n", cli.Money(e.NetSalary, sh.currency))

		sh.Save()
		return nil
	}
}

// promptNewID asks until it gets an integer that is not in use.
func (sh *Shell) promptNewID() (int, error) {
	for {
		line, ok := sh.prompt("Enter Employee ID: ")
		if !ok {
			return 0, errInputClosed
		}
		id, err := cli.ParseID(line)
		if err != nil {
			sh.printf("%s\n", cli.Yellow(err.Error()))
			continue
		}
		if sh.store.Exists(id) {
			sh.printf("%s\n", cli.Yellow(fmt.Sprintf("Employee ID %d already exists! Please enter a different ID.", id)))
			continue
		}
		return id, nil
	}
}

// promptName asks until it gets a name that fits the file format.
func (sh *Shell) promptName() (string, error) {
	for {
		line, ok := sh.prompt("Enter Employee Name: ")
		if !ok {
			return "", errInputClosed
		}
		if !model.ValidName(line) {
			sh.printf("%s\n", cli.Yellow(fmt.Sprintf("Name must not contain '%s'.", model.FieldDelimiter)))
			continue
		}
		return line, nil
	}
}

// promptSalary asks until it gets a number. Negative numbers are reported
// and left for the store to clamp.
func (sh *Shell) promptSalary() (decimal.Decimal, error) {
	for {
		line, ok := sh.prompt("Enter Basic Salary: " + sh.currency)
		if !ok {
			return decimal.Zero, errInputClosed
		}
		s, err := cli.ParseSalary(line)
		if err != nil {
			sh.printf("%s\n", cli.Yellow(err.Error()))
			continue
		}
		if s.IsNegative() {
			sh.printf("%s\n", cli.Yellow("Warning: Salary cannot be negative! Setting to 0."))
		}
		return s, nil
	}
}

// List prints every employee in insertion order.
func (sh *Shell) List() {
	records := sh.store.List()
	if len(records) == 0 {
		sh.printf("\nNo employee records available.\n")
		return
	}

	sh.printf("\n%s\n", cli.Bold("=== ALL EMPLOYEE RECORDS ==="))
	WriteTable(sh.out, records, sh.currency)
}

// WriteTable prints a count line and a ruled table of records.
func WriteTable(w io.Writer, records []model.Employee, currency string) {
	table := cli.NewTable()
	table.SetMaxWidth(1, cli.DefaultMaxNameWidth)
	for col := 2; col <= 4; col++ {
		table.AlignRight(col)
	}
	table.AddRow("ID", "Name", "Basic Salary", "Tax", "Net Salary")
	for _, e := range records {
		table.AddRow(
			strconv.Itoa(e.ID),
			e.Name,
			cli.Money(e.BasicSalary, currency),
			cli.Money(e.Tax, currency),
			cli.Money(e.NetSalary, currency),
		)
	}
	rule := cli.Gray(strings.Repeat("-", table.Width()))

	fmt.Fprintf(w, "Total Employees: %d\n", len(records))
	fmt.Fprintln(w, rule)
	table.Render(w)
	fmt.Fprintln(w, rule)
}

// Search prompts for an ID and prints the matching employee.
func (sh *Shell) Search() error {
	line, ok := sh.prompt("\nEnter Employee ID to search: ")
	if !ok {
		return errInputClosed
	}
	id, err := cli.ParseID(line)
	if err != nil {
		sh.printf("%s\n", cli.Yellow(err.Error()))
		return nil
	}

	e, found := sh.store.FindByID(id)
	if !found {
		sh.printf("%s\n", (&cli.NotFoundError{ID: id}).Error())
		return nil
	}

	sh.printf("\n%s\n", cli.Bold("=== EMPLOYEE DETAILS ==="))
	WriteDetails(sh.out, e, sh.currency)
	return nil
}

// WriteDetails prints one employee as labelled lines.
func WriteDetails(w io.Writer, e model.Employee, currency string) {
	fmt.Fprintf(w, "Employee ID: %d\n", e.ID)
	fmt.Fprintf(w, "Name: %s\n", e.Name)
	fmt.Fprintf(w, "Basic Salary: %s\n", cli.Money(e.BasicSalary, currency))
	fmt.Fprintf(w, "Tax Deducted: %s\n", cli.Money(e.Tax, currency))
	fmt.Fprintf(w, "Net Salary: %s\n", cli.Money(e.NetSalary, currency))
}

// Save writes the store to disk and reports the outcome.
// A failed save leaves the in-memory records intact.
func (sh *Shell) Save() bool {
	log := logger.Get()
	path := sh.files.Path()

	if err := sh.files.SaveStore(sh.store); err != nil {
		sh.printf("%s\n", cli.Red(fmt.Sprintf("Error saving data to '%s': %v", path, err)))
		log.Error().Err(err).Str("path", path).Msg("save failed")
		return false
	}

	sh.printf("Data saved to '%s' successfully.\n", path)
	log.Debug().Int("count", sh.store.Count()).Str("path", path).Msg("saved employees")
	return true
}

func (sh *Shell) exit() {
	if sh.loadFailed {
		path := sh.files.Path()
		sh.printf("\n%s\n", cli.Yellow(fmt.Sprintf("Not saving: '%s' could not be loaded and nothing was added.", path)))
		logger.Get().Warn().Str("path", path).Msg("skipped save after failed load")
	} else {
		sh.printf("\nSaving data before exit...\n")
		sh.Save()
	}
	sh.printf("Thank you for using Payroll System. Goodbye!\n")
}

func (sh *Shell) printMenu() {
	sh.printf("\n%s\n", cli.Bold("=== PAYROLL MANAGEMENT SYSTEM ==="))
	sh.printf("1. Add New Employee\n")
	sh.printf("2. Display All Employees\n")
	sh.printf("3. Search Employee by ID\n")
	sh.printf("4. Save Data to File\n")
	sh.printf("5. Exit\n")
	sh.printf("Enter your choice (1-5): ")
}

func (sh *Shell) prompt(text string) (string, bool) {
	sh.printf("%s", text)
	return sh.readLine()
}

// readLine returns the next input line without its line ending.
func (sh *Shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimRight(sh.in.Text(), "\r"), true
}

func (sh *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.out, format, args...)
}

// resolveChoice maps a menu number or command name prefix to a command.
func resolveChoice(line string) (string, error) {
	line = strings.TrimSpace(line)
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(commands) {
			return "", fmt.Errorf("choice %d out of range", n)
		}
		return commands[n-1], nil
	}
	return cli.MatchCommand(line, commands)
}
