package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/janec/payroll/internal/model"
	"github.com/janec/payroll/internal/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salary(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openTemp(t *testing.T) (string, *Storage) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	return dir, s
}

func TestOpen(t *testing.T) {
	t.Run("open existing directory succeeds", func(t *testing.T) {
		dir := t.TempDir()

		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Root())
		assert.Equal(t, filepath.Join(dir, "employees.txt"), s.Path())
		assert.False(t, s.Exists())
	})

	t.Run("open missing directory fails", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to access")
	})

	t.Run("open a file fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "plain")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := Open(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("config selects the data file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".payrollconfig.yaml"), []byte("data_file: staff.txt\n"), 0644))

		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "staff.txt"), s.Path())
	})

	t.Run("absolute data file is used as is", func(t *testing.T) {
		dir := t.TempDir()
		abs := filepath.Join(t.TempDir(), "elsewhere.txt")
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".payrollconfig.yaml"), []byte("data_file: "+abs+"\n"), 0644))

		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, abs, s.Path())
	})

	t.Run("bad config fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".payrollconfig.yaml"), []byte("::: ["), 0644))

		_, err := Open(dir)
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields no records", func(t *testing.T) {
		_, s := openTemp(t)

		records, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("reads records", func(t *testing.T) {
		dir, s := openTemp(t)
		content := "2\n1|Alice|45000.00|9000.00|36000.00\n2|Bob|9999.00|0.00|9999.00\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.txt"), []byte(content), 0644))

		records, err := s.Load()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Alice", records[0].Name)
		assert.Equal(t, "Bob", records[1].Name)
	})

	t.Run("truncated file is a malformed-line parse error", func(t *testing.T) {
		dir, s := openTemp(t)
		content := "2\n1|Alice|45000.00|9000.00|36000.00\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.txt"), []byte(content), 0644))

		_, err := s.Load()
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrMalformedLine))
		assert.Contains(t, err.Error(), "employees.txt")

		var pe *model.ParseError
		assert.True(t, errors.As(err, &pe))
	})

	t.Run("unreadable file is unavailable", func(t *testing.T) {
		dir, s := openTemp(t)
		// a directory where the file should be cannot be read as a file
		require.NoError(t, os.Mkdir(filepath.Join(dir, "employees.txt"), 0755))

		_, err := s.Load()
		var fu *FileUnavailableError
		require.True(t, errors.As(err, &fu), "got %v", err)
		assert.Equal(t, "read", fu.Op)
	})
}

func TestSave(t *testing.T) {
	t.Run("writes the employees format", func(t *testing.T) {
		dir, s := openTemp(t)

		err := s.Save([]model.Employee{model.NewEmployee(1, "Alice", salary("45000"))})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "employees.txt"))
		require.NoError(t, err)
		assert.Equal(t, "1\n1|Alice|45000.00|9000.00|36000.00\n", string(data))
		assert.True(t, s.Exists())
	})

	t.Run("overwrites previous contents", func(t *testing.T) {
		dir, s := openTemp(t)

		require.NoError(t, s.Save([]model.Employee{
			model.NewEmployee(1, "Alice", salary("45000")),
			model.NewEmployee(2, "Bob", salary("9999")),
		}))
		require.NoError(t, s.Save(nil))

		data, err := os.ReadFile(filepath.Join(dir, "employees.txt"))
		require.NoError(t, err)
		assert.Equal(t, "0\n", string(data))
	})

	t.Run("unwritable path is unavailable", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".payrollconfig.yaml"), []byte("data_file: missing/dir/employees.txt\n"), 0644))
		s, err := Open(dir)
		require.NoError(t, err)

		err = s.Save(nil)
		var fu *FileUnavailableError
		require.True(t, errors.As(err, &fu), "got %v", err)
		assert.Equal(t, "write", fu.Op)
		assert.Contains(t, err.Error(), "cannot write")
	})
}

func TestLoadInto(t *testing.T) {
	t.Run("save then reload gives the same list", func(t *testing.T) {
		_, s := openTemp(t)

		st := payroll.NewStore()
		_, err := st.Add(1, "Alice", salary("45000"))
		require.NoError(t, err)
		_, err = st.Add(2, "Bob", salary("9999"))
		require.NoError(t, err)
		_, err = st.Add(3, "Cara", salary("-500"))
		require.NoError(t, err)
		require.NoError(t, s.SaveStore(st))

		reloaded := payroll.NewStore()
		n, err := s.LoadInto(reloaded)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		before, after := st.List(), reloaded.List()
		require.Len(t, after, len(before))
		for i := range before {
			assert.Equal(t, before[i].ID, after[i].ID)
			assert.Equal(t, before[i].Name, after[i].Name)
			assert.True(t, before[i].BasicSalary.Equal(after[i].BasicSalary))
			assert.True(t, before[i].Tax.Equal(after[i].Tax))
			assert.True(t, before[i].NetSalary.Equal(after[i].NetSalary))
		}
	})

	t.Run("missing file empties nothing and loads nothing", func(t *testing.T) {
		_, s := openTemp(t)
		st := payroll.NewStore()

		n, err := s.LoadInto(st)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 0, st.Count())
	})

	t.Run("parse failure leaves store untouched", func(t *testing.T) {
		dir, s := openTemp(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.txt"), []byte("2\n5|Eve|1.00|0.00|1.00\n"), 0644))

		st := payroll.NewStore()
		_, _ = st.Add(1, "Alice", salary("45000"))

		_, err := s.LoadInto(st)
		require.Error(t, err)
		assert.Equal(t, 1, st.Count())
		_, ok := st.FindByID(5)
		assert.False(t, ok)
	})

	t.Run("duplicate ids in file are rejected", func(t *testing.T) {
		dir, s := openTemp(t)
		content := "2\n5|Eve|1.00|0.00|1.00\n5|Eve again|1.00|0.00|1.00\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.txt"), []byte(content), 0644))

		st := payroll.NewStore()
		_, err := s.LoadInto(st)
		var dup *payroll.DuplicateIDError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, 0, st.Count())
	})

	t.Run("stored tax is recomputed from salary", func(t *testing.T) {
		dir, s := openTemp(t)
		content := "1\n1|Alice|45000.00|1.00|44999.00\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.txt"), []byte(content), 0644))

		st := payroll.NewStore()
		_, err := s.LoadInto(st)
		require.NoError(t, err)

		e, ok := st.FindByID(1)
		require.True(t, ok)
		assert.Equal(t, "9000.00", e.Tax.StringFixed(2))
		assert.Equal(t, "36000.00", e.NetSalary.StringFixed(2))
	})
}
