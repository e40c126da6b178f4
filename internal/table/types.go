package table

import (
	"errors"
	"fmt"
	"strings"

	"deriv-generator/internal/diagnostic"
)

const (
	// NotImplemented marks an entry slot with no stencil behind it.
	NotImplemented = "NULL"
	// DescriptionTableName is the array holding human readable names.
	DescriptionTableName = "DiffNameTable"
	// SlotCount is the number of implementation slots per entry.
	SlotCount = 3

	staggerSuffix = "stag"
	minNameLen    = 3
)

var (
	ErrDuplicateTable  = errors.New("duplicate table")
	ErrDuplicateMethod = errors.New("duplicate method")
	ErrEmptyTable      = errors.New("table has no implemented methods")
	ErrMalformedEntry  = errors.New("malformed entry")
	ErrUnbalanced      = errors.New("unbalanced braces")
)

// excluded names are meta entries, never real schemes.
var excluded = map[string]struct{}{
	"DIFF_W3":      {},
	"DIFF_SPLIT":   {},
	"DIFF_DEFAULT": {},
}

// IsExcluded reports whether method is one of the fixed meta entries.
func IsExcluded(method string) bool {
	_, ok := excluded[method]
	return ok
}

// Entry is one row of a method table.
type Entry struct {
	Method string
	Impls  [SlotCount]string
}

// Implemented reports whether slot has a stencil reference.
func (e Entry) Implemented(slot int) bool {
	return e.Impls[slot] != NotImplemented
}

// PrimarySlot returns the first implemented slot, or -1.
func (e Entry) PrimarySlot() int {
	for i := range e.Impls {
		if e.Implemented(i) {
			return i
		}
	}

	return -1
}

// Stencil returns the reference of the first implemented slot.
func (e Entry) Stencil() string {
	if slot := e.PrimarySlot(); slot >= 0 {
		return e.Impls[slot]
	}

	return NotImplemented
}

// Flags classify a table by the shape of its first retained entry.
type Flags struct {
	// FluxLike is set when the plain derivative slot is not implemented, so
	// the operator takes a velocity and a field.
	FluxLike bool
	// Upwind is set when neither the derivative nor the upwind slot is
	// implemented.
	Upwind bool
	// Staggered is set when the primary stencil works on a staggered grid.
	Staggered bool
}

func deriveFlags(first Entry) Flags {
	var f Flags

	f.FluxLike = !first.Implemented(0)
	f.Upwind = f.FluxLike && !first.Implemented(1)
	f.Staggered = strings.HasSuffix(first.Stencil(), staggerSuffix)

	return f
}

// MethodTable is the parsed form of one operator's array.
type MethodTable struct {
	// Name is the array identifier, e.g. FirstDerivTable.
	Name string
	// FirstMethod is the first non-meta method seen, whether or not it was kept.
	FirstMethod string
	// Line is where the array starts in the source.
	Line int

	entries []Entry
	index   map[string]int
	flags   Flags
}

func newMethodTable(name string, line int) *MethodTable {
	return &MethodTable{
		Name:  name,
		Line:  line,
		index: make(map[string]int),
	}
}

func (t *MethodTable) add(e Entry) {
	t.index[e.Method] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Entries returns the retained entries in source order.
func (t *MethodTable) Entries() []Entry {
	return t.entries
}

// Len returns the number of retained entries.
func (t *MethodTable) Len() int {
	return len(t.entries)
}

// Methods returns the retained method names in source order.
func (t *MethodTable) Methods() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Method
	}

	return names
}

// Lookup finds a retained entry by method name.
func (t *MethodTable) Lookup(method string) (Entry, bool) {
	i, ok := t.index[method]
	if !ok {
		return Entry{}, false
	}

	return t.entries[i], true
}

// Flags returns the classification derived when the table was parsed.
func (t *MethodTable) Flags() Flags {
	return t.flags
}

// DescriptionTable maps method names to human readable descriptions.
type DescriptionTable struct {
	order []string
	text  map[string]string
}

// Describe returns the description of method.
func (d *DescriptionTable) Describe(method string) (string, bool) {
	if d == nil {
		return "", false
	}

	s, ok := d.text[method]

	return s, ok
}

// Methods returns the described method names in source order.
func (d *DescriptionTable) Methods() []string {
	if d == nil {
		return nil
	}

	return d.order
}

// Model holds everything read from one table source.
type Model struct {
	// Tables are the method tables in parse order.
	Tables []*MethodTable
	// Descriptions is the DiffNameTable, or nil when the source has none.
	Descriptions *DescriptionTable
	// Diagnostics collects findings. Error diagnostics make the model
	// unusable for generation, see Err.
	Diagnostics diagnostic.Diagnostics

	byName map[string]*MethodTable
}

// Table returns the method table called name.
func (m *Model) Table(name string) (*MethodTable, bool) {
	t, ok := m.byName[name]
	return t, ok
}

// TableNames returns the method table names in parse order.
func (m *Model) TableNames() []string {
	names := make([]string, len(m.Tables))
	for i, t := range m.Tables {
		names[i] = t.Name
	}

	return names
}

// Err wraps the error diagnostics collected while parsing, or returns nil.
func (m *Model) Err() error {
	if err := m.Diagnostics.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}

	return nil
}
