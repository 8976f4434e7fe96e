// Package symbols provides the label table that maps label names to program memory addresses.
package symbols

import (
	"errors"
	"fmt"
	"sort"
)

// MaxLabelLength is the maximum number of characters of a label name.
const MaxLabelLength = 6

var (
	ErrDuplicateLabel = errors.New("label already defined")
	ErrLabelTooLong   = errors.New("label too long")
	ErrFrozen         = errors.New("symbol table is frozen")
)

// Table is the mutable label table that is filled while the program is scanned.
// Once all labels are known it is turned into a read-only View by calling Freeze.
type Table struct {
	items  map[string]int
	frozen bool
}

// View is a read-only view of a frozen Table.
type View struct {
	items map[string]int
}

// Symbol is a single label with its address.
type Symbol struct {
	Name    string
	Address int
}

// New creates a new empty symbol table.
func New() *Table {
	return &Table{
		items: make(map[string]int),
	}
}

// Add registers a label at the given address.
func (t *Table) Add(name string, address int) error {
	if t.frozen {
		return ErrFrozen
	}
	if len(name) > MaxLabelLength {
		return fmt.Errorf("%w: '%s' has more than %d characters", ErrLabelTooLong, name, MaxLabelLength)
	}
	if _, ok := t.items[name]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateLabel, name)
	}
	t.items[name] = address
	return nil
}

// Get returns the address of the given label.
func (t *Table) Get(name string) (int, bool) {
	address, ok := t.items[name]
	return address, ok
}

// Len returns the number of labels in the table.
func (t *Table) Len() int {
	return len(t.items)
}

// Freeze ends the building phase of the table and returns a read-only view of it.
// Any further Add call fails with ErrFrozen.
func (t *Table) Freeze() View {
	t.frozen = true
	return View{items: t.items}
}

// Get returns the address of the given label.
func (v View) Get(name string) (int, bool) {
	address, ok := v.items[name]
	return address, ok
}

// Has returns whether the label exists.
func (v View) Has(name string) bool {
	_, ok := v.items[name]
	return ok
}

// Len returns the number of labels.
func (v View) Len() int {
	return len(v.items)
}

// Sorted returns all labels sorted by address, labels sharing an address
// are sorted by name.
func (v View) Sorted() []Symbol {
	symbols := make([]Symbol, 0, len(v.items))
	for name, address := range v.items {
		symbols = append(symbols, Symbol{Name: name, Address: address})
	}
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].Address != symbols[j].Address {
			return symbols[i].Address < symbols[j].Address
		}
		return symbols[i].Name < symbols[j].Name
	})
	return symbols
}

// AtAddress returns the names of all labels defined at the given address, sorted by name.
func (v View) AtAddress(address int) []string {
	var names []string
	for name, addr := range v.items {
		if addr == address {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
