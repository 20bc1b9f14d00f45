package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/janec/payroll/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() []model.Employee {
	return []model.Employee{
		model.NewEmployee(2, "Bob", decimal.NewFromInt(9999)),
		model.NewEmployee(1, "Alice", decimal.NewFromInt(45000)),
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	require.NoError(t, WriteXLSX(path, sample(), "Rs."))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"ID", "Name", "Basic Salary (Rs.)", "Tax (Rs.)", "Net Salary (Rs.)"}, rows[0])
	assert.Equal(t, []string{"2", "Bob", "9999", "0", "9999"}, rows[1])
	assert.Equal(t, []string{"1", "Alice", "45000", "9000", "36000"}, rows[2])
	assert.Equal(t, []string{"Total", "2 employees", "54999", "9000", "45999"}, rows[3])
}

func TestEncodeXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXLSX(&buf, nil, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "0 employees", rows[1][1])
}

func TestWriteXLSX_BadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "out.xlsx"), sample(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestWriteXLSX_ColumnWidths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXLSX(&buf, sample(), "Rs."))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	for col, want := range map[string]float64{"A": 8, "B": 30, "C": 16, "E": 16} {
		got, err := f.GetColWidth(SheetName, col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "column %s", col)
	}
}
