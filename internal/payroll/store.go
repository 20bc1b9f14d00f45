// Package payroll holds the bounded, insertion-ordered set of employee
// records for a running session.
package payroll

import (
	"fmt"

	"github.com/janec/payroll/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultCapacity is the maximum number of records a Store holds.
const DefaultCapacity = 100

// DuplicateIDError indicates an employee ID is already in use.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("employee ID %d already exists", e.ID)
}

// CapacityError indicates the store cannot hold any more records.
type CapacityError struct {
	Capacity int // the store limit
	Count    int // records held or offered
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("maximum employee limit reached (%d)", e.Capacity)
}

// Store is an in-memory list of employees in insertion order.
// It is not safe for concurrent use.
type Store struct {
	capacity  int
	employees []model.Employee
}

// NewStore returns an empty store holding at most DefaultCapacity records.
func NewStore() *Store {
	return NewStoreWithCapacity(DefaultCapacity)
}

// NewStoreWithCapacity returns an empty store with a custom limit.
func NewStoreWithCapacity(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{capacity: capacity}
}

// Add creates and appends a record.
// Capacity is checked before uniqueness; on error the store is unchanged.
func (s *Store) Add(id int, name string, basicSalary decimal.Decimal) (model.Employee, error) {
	if len(s.employees) >= s.capacity {
		return model.Employee{}, &CapacityError{Capacity: s.capacity, Count: len(s.employees)}
	}
	if s.Exists(id) {
		return model.Employee{}, &DuplicateIDError{ID: id}
	}

	e := model.NewEmployee(id, name, basicSalary)
	s.employees = append(s.employees, e)
	return e, nil
}

// FindByID returns the record with the given ID.
func (s *Store) FindByID(id int) (model.Employee, bool) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return model.Employee{}, false
}

// Exists reports whether a record with the given ID is stored.
func (s *Store) Exists(id int) bool {
	_, ok := s.FindByID(id)
	return ok
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []model.Employee {
	out := make([]model.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	return len(s.employees)
}

// Capacity returns the maximum number of records.
func (s *Store) Capacity() int {
	return s.capacity
}

// Full reports whether another Add would fail for lack of room.
func (s *Store) Full() bool {
	return len(s.employees) >= s.capacity
}

// ReplaceAll swaps the whole record set for records.
// The incoming set is checked for size and duplicate IDs before anything
// changes. Salaries are clamped and tax and net salary are recomputed, so
// values read from disk never override the tax rule.
func (s *Store) ReplaceAll(records []model.Employee) error {
	if len(records) > s.capacity {
		return &CapacityError{Capacity: s.capacity, Count: len(records)}
	}

	seen := make(map[int]struct{}, len(records))
	next := make([]model.Employee, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return &DuplicateIDError{ID: r.ID}
		}
		seen[r.ID] = struct{}{}
		next = append(next, model.NewEmployee(r.ID, r.Name, r.BasicSalary))
	}

	s.employees = next
	return nil
}
