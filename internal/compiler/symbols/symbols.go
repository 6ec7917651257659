package symbols

import "github.com/seglang/segc/internal/compiler/types"

// Symbol maps a variable name to its declared type and the assembly label of
// its storage slot.
type Symbol struct {
	Name  string
	Type  types.Type
	Label string
}

// Table is an append-only symbol table with shadow-by-prepend semantics:
// Lookup returns the most recently defined entry for a name, and earlier
// entries for the same name are kept (they own separate storage).
type Table struct {
	entries []Symbol
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Define(name string, typ types.Type, label string) {
	t.entries = append(t.entries, Symbol{Name: name, Type: typ, Label: label})
}

// Lookup scans from the most recent entry so later declarations shadow
// earlier ones.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return &t.entries[i], true
		}
	}
	return nil, false
}

// Count returns the number of entries sharing a name, used to uniquify the
// storage labels of shadowed declarations.
func (t *Table) Count(name string) int {
	n := 0
	for _, s := range t.entries {
		if s.Name == name {
			n++
		}
	}
	return n
}
