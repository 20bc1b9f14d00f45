// Package model defines the employee record, the tax rule and the
// employees.txt codec.
package model

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxNameLength is the longest name kept on a record, in characters.
const MaxNameLength = 99

// MaxAmountDigits is the most digits an amount may have before the decimal
// point, on input or in employees.txt.
const MaxAmountDigits = 15

// amountPattern accepts plain decimal notation only. Exponent forms such as
// 1e30000000 would expand to millions of digits when formatted.
var amountPattern = regexp.MustCompile(`^-?\d{1,15}(\.\d{1,15})?$`)

// ErrAmountFormat is returned by ParseAmount for anything but plain digits.
var ErrAmountFormat = errors.New("amount must be plain digits with at most 15 before the decimal point")

// Tax bracket thresholds and rates. Brackets are flat: the matching rate
// applies to the whole salary.
var (
	bracketNoTax    = decimal.NewFromInt(10000)
	bracketLowUpper = decimal.NewFromInt(30000)
	bracketMidUpper = decimal.NewFromInt(50000)

	rateLow  = decimal.New(10, -2)
	rateMid  = decimal.New(20, -2)
	rateHigh = decimal.New(30, -2)
)

// Employee is a single payroll record.
// Tax and NetSalary are derived from BasicSalary and are never set directly.
type Employee struct {
	ID          int
	Name        string
	BasicSalary decimal.Decimal
	Tax         decimal.Decimal
	NetSalary   decimal.Decimal
}

// NewEmployee builds a record with a normalized name, a salary clamped to
// zero and freshly computed tax and net salary.
func NewEmployee(id int, name string, basicSalary decimal.Decimal) Employee {
	e := Employee{
		ID:          id,
		Name:        NormalizeName(name),
		BasicSalary: ClampSalary(basicSalary),
	}
	e.Recompute()
	return e
}

// Recompute derives Tax and NetSalary from BasicSalary.
func (e *Employee) Recompute() {
	e.Tax = ComputeTax(e.BasicSalary)
	e.NetSalary = e.BasicSalary.Sub(e.Tax)
}

// ComputeTax returns the tax owed on basicSalary.
//
//	< 10,000            0%
//	10,000 .. 30,000   10%
//	30,000 .. 50,000   20% (lower bound exclusive)
//	> 50,000           30%
func ComputeTax(basicSalary decimal.Decimal) decimal.Decimal {
	switch {
	case basicSalary.LessThan(bracketNoTax):
		return decimal.Zero
	case basicSalary.LessThanOrEqual(bracketLowUpper):
		return basicSalary.Mul(rateLow)
	case basicSalary.LessThanOrEqual(bracketMidUpper):
		return basicSalary.Mul(rateMid)
	default:
		return basicSalary.Mul(rateHigh)
	}
}

// ComputeNetSalary returns basicSalary minus its tax.
func ComputeNetSalary(basicSalary decimal.Decimal) decimal.Decimal {
	return basicSalary.Sub(ComputeTax(basicSalary))
}

// ParseAmount parses a money amount such as "45000" or "-12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, ErrAmountFormat
	}
	return decimal.NewFromString(s)
}

// ClampSalary returns zero for negative salaries.
func ClampSalary(s decimal.Decimal) decimal.Decimal {
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// NormalizeName cuts name at its first line break and limits it to
// MaxNameLength characters.
func NormalizeName(name string) string {
	if i := strings.IndexAny(name, "\r\n"); i >= 0 {
		name = name[:i]
	}
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}

// ValidName reports whether name can be stored in employees.txt without
// breaking the line format.
func ValidName(name string) bool {
	return !strings.ContainsAny(name, FieldDelimiter+"\r\n")
}
