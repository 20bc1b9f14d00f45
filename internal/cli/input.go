package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/janec/payroll/internal/model"
	"github.com/shopspring/decimal"
)

// ParseID parses a whole-number employee ID.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "employee ID", Message: fmt.Sprintf("%q is not a whole number", s)}
	}
	return id, nil
}

// ParseSalary parses a decimal amount in plain notation. Negative values are
// returned as is.
func ParseSalary(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := model.ParseAmount(s)
	if err != nil {
		return decimal.Zero, &ValidationError{
			Field:   "salary",
			Message: fmt.Sprintf("%q is not a number with at most %d digits before the point", s, model.MaxAmountDigits),
		}
	}
	return d, nil
}
