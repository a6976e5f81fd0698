package strtable

// Table deduplicates strings to stable indices. Indices are assigned in
// first-seen order and never change. One instance is shared by every table
// built during a conversion run.
type Table struct {
	strings []string
	indices map[string]uint32
}

func New() *Table {
	return &Table{indices: make(map[string]uint32)}
}

// Intern returns the index of s, appending it on first occurrence.
func (t *Table) Intern(s string) uint32 {
	if idx, exists := t.indices[s]; exists {
		return idx
	}
	idx := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.indices[s] = idx
	return idx
}

// Strings returns the interned strings in index order.
func (t *Table) Strings() []string {
	if t.strings == nil {
		return []string{}
	}
	return t.strings
}
