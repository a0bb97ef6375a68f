package symtab

import (
	"reflect"
	"testing"
)

func TestInsertIfAbsent(t *testing.T) {
	table := New()

	first := table.InsertIfAbsent("x", 1, 1)
	want := Entry{Name: "x", Class: ClassVar, Type: TypeNumber, FirstLine: 1, FirstColumn: 1}
	if first != want {
		t.Errorf("InsertIfAbsent() = %+v, want %+v", first, want)
	}

	again := table.InsertIfAbsent("x", 3, 9)
	if again != want {
		t.Errorf("second InsertIfAbsent() = %+v, want the original %+v", again, want)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}

	got, ok := table.Lookup("x")
	if !ok || got.FirstSeen() != "1:1" {
		t.Errorf("Lookup(x) = %+v, %v", got, ok)
	}
	if _, ok := table.Lookup("y"); ok {
		t.Error("Lookup(y) should miss")
	}
}

func TestSorted(t *testing.T) {
	table := New()
	table.InsertIfAbsent("zeta", 1, 1)
	table.InsertIfAbsent("alpha", 1, 8)
	table.InsertIfAbsent("mid", 2, 3)

	var names []string
	for _, e := range table.Sorted() {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("Sorted() names = %v", names)
	}
	if len(table.Entries()) != 3 {
		t.Errorf("Entries() returned %d entries", len(table.Entries()))
	}
}

func TestEmptyTable(t *testing.T) {
	table := New()
	if table.Len() != 0 || len(table.Sorted()) != 0 {
		t.Error("new table should be empty")
	}
}
