package libtable

// NoLib marks the absence of a library reference.
const NoLib int32 = -1

type (
	// Lib is one entry of the shared library manifest. Start and End are
	// the coarse address range covered by the symbols registered against
	// this library, not per-symbol precise bounds.
	Lib struct {
		Name  string
		Start uint64
		End   uint64
	}

	// Table accumulates the shared library manifest across all threads of
	// a conversion run.
	Table struct {
		libs    []Lib
		indices map[string]int32
	}
)

func New() *Table {
	return &Table{indices: make(map[string]int32)}
}

// Intern returns the index for name, widening its address range with
// [addr, addr+size) when addr is non-zero. Empty names have no manifest
// entry and intern to NoLib.
func (t *Table) Intern(name string, addr uint64, size uint32) int32 {
	if name == "" {
		return NoLib
	}
	if idx, exists := t.indices[name]; exists {
		lib := &t.libs[idx]
		if addr != 0 {
			end := addr + uint64(size)
			if lib.Start == 0 || addr < lib.Start {
				lib.Start = addr
			}
			if end > lib.End {
				lib.End = end
			}
		}
		return idx
	}
	idx := int32(len(t.libs))
	t.libs = append(t.libs, Lib{Name: name, Start: addr, End: addr + uint64(size)})
	t.indices[name] = idx
	return idx
}

// Libs returns the manifest entries in index order.
func (t *Table) Libs() []Lib {
	return t.libs
}
