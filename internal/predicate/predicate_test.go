package predicate

import "testing"

func TestUniverse_EqAndBooleanAlgebra(t *testing.T) {
	u := NewUniverse(map[string][]string{
		"switch": {"s1", "s2", "s3"},
		"port":   {"80", "443"},
	})

	if u.Size() != 6 {
		t.Fatalf("expected a universe of size 6, got %d", u.Size())
	}

	s1 := u.Eq("switch", "s1")
	s2 := u.Eq("switch", "s2")
	all := u.All()
	none := u.None()

	oracle := AttrOracle{}

	if oracle.Overlap(s1, s2) != Disjoint {
		t.Fatalf("expected switch=s1 and switch=s2 to be disjoint")
	}
	if oracle.Overlap(s1, all) != Subset {
		t.Fatalf("expected switch=s1 to be a subset of everything")
	}
	if oracle.Overlap(all, s1) != Superset {
		t.Fatalf("expected everything to be a superset of switch=s1")
	}
	if !oracle.Satisfiable(s1) {
		t.Fatal("expected switch=s1 to be satisfiable")
	}
	if oracle.Satisfiable(none) {
		t.Fatal("expected None() to be unsatisfiable")
	}

	union := s1.Or(s2)
	if oracle.Overlap(union, s1) != Superset {
		t.Fatalf("expected (s1 | s2) to be a strict superset of s1")
	}

	negated := s1.Not()
	if oracle.Overlap(negated, s1) != Disjoint {
		t.Fatalf("expected ~s1 and s1 to be disjoint")
	}
	if oracle.Overlap(negated.Or(s1), all) != Equal {
		t.Fatalf("expected ~s1 | s1 to cover the whole universe")
	}
}

func TestUniverse_EqUnknownValueIsUnsatisfiable(t *testing.T) {
	u := NewUniverse(map[string][]string{"switch": {"s1"}})
	ghost := u.Eq("switch", "ghost")

	if (AttrOracle{}).Satisfiable(ghost) {
		t.Fatal("expected an equality constraint on an unknown value to be unsatisfiable")
	}
}

func TestAttrPredicate_And(t *testing.T) {
	u := NewUniverse(map[string][]string{
		"switch": {"s1", "s2"},
		"port":   {"80", "443"},
	})

	conj := u.Eq("switch", "s1").And(u.Eq("port", "80"))
	oracle := AttrOracle{}
	if !oracle.Satisfiable(conj) {
		t.Fatal("expected switch=s1 & port=80 to be satisfiable")
	}
	if oracle.Overlap(conj, u.Eq("switch", "s1")) != Subset {
		t.Fatalf("expected the conjunction to be a subset of switch=s1 alone")
	}
}

func TestAttrPredicate_PanicsOnUniverseMismatch(t *testing.T) {
	u1 := NewUniverse(map[string][]string{"switch": {"s1"}})
	u2 := NewUniverse(map[string][]string{"switch": {"s1"}})

	defer func() {
		if recover() == nil {
			t.Fatal("expected comparing predicates from different universes to panic")
		}
	}()
	_ = u1.All().And(u2.All())
}

func TestOverlap_String(t *testing.T) {
	cases := map[Overlap]string{
		Disjoint:   "disjoint",
		Equal:      "equal",
		Superset:   "superset",
		Subset:     "subset",
		Intersects: "intersects",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("Overlap(%d).String() = %q, want %q", o, got, want)
		}
	}
}
