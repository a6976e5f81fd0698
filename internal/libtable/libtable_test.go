package libtable

import (
	"testing"

	"github.com/DaniPopes/tracy/internal/testutil"
)

func TestInternEmptyName(t *testing.T) {
	lt := New()
	if idx := lt.Intern("", 0x1000, 64); idx != NoLib {
		t.Fatalf("empty name interned to %d", idx)
	}
	if len(lt.Libs()) != 0 {
		t.Fatalf("empty name created a manifest entry")
	}
}

func TestInternWidensAddressRange(t *testing.T) {
	lt := New()
	idx := lt.Intern("libfoo.so", 0x2000, 0x100)
	if idx != 0 {
		t.Fatalf("first entry interned to %d", idx)
	}
	// A lower symbol widens the start, a higher one widens the end.
	lt.Intern("libfoo.so", 0x1000, 0x10)
	lt.Intern("libfoo.so", 0x3000, 0x200)
	// Registrations without an address leave the range untouched.
	lt.Intern("libfoo.so", 0, 0)

	want := []Lib{{Name: "libfoo.so", Start: 0x1000, End: 0x3200}}
	if diff := testutil.Diff(lt.Libs(), want); diff != "" {
		t.Fatalf("manifest mismatch: %s", diff)
	}
}

func TestInternKeepsIndicesStable(t *testing.T) {
	lt := New()
	a := lt.Intern("a.so", 0x10, 8)
	b := lt.Intern("b.so", 0x20, 8)
	if lt.Intern("a.so", 0x40, 8) != a || lt.Intern("b.so", 0, 0) != b {
		t.Fatalf("indices changed across registrations")
	}
}
