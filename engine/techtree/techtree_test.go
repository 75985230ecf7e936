package techtree

import "testing"

func TestDefaultTreeValid(t *testing.T) {
	tt := NewTechTree()
	if err := tt.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(tt.Units) != 23 || len(tt.Buildings) != 24 || len(tt.Factions) != 3 {
		t.Fatalf("expected 23 units, 24 buildings, 3 factions; got %d, %d, %d",
			len(tt.Units), len(tt.Buildings), len(tt.Factions))
	}
}

func TestFactionStyles(t *testing.T) {
	tt := NewTechTree()
	want := map[string]BuildStyle{Protoss: StyleWarp, Zerg: StyleMorph, Terran: StyleConstruct}
	for id, s := range want {
		if got := tt.MustFaction(id).Style; got != s {
			t.Fatalf("%s: expected %v got %v", id, s, got)
		}
	}
	if !tt.MustBuilding("extractor").ConsumeWorker {
		t.Fatal("extractor should consume its drone")
	}
}

func TestSiegeProfile(t *testing.T) {
	u := NewTechTree().MustUnit("siegetank")
	if u.Siege == nil || u.Siege.Damage != 40 || u.Siege.Range != 13 || u.Siege.AttackSpeed != 2140 || u.Siege.Splash != 40 {
		t.Fatalf("unexpected siege profile %+v", u.Siege)
	}
	if u.Damage != 15 || u.Range != 7 || u.AttackSpeed != 1040 || u.Speed != 2.25 {
		t.Fatalf("unexpected mobile profile %+v", u)
	}
}

func TestMustUnitPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown unit")
		}
	}()
	NewTechTree().MustUnit("phoenix")
}

func TestPrereqHelpers(t *testing.T) {
	owned := map[string]bool{"pool": true}
	owns := func(s string) bool { return owned[s] }
	if !HasPrereqs([]string{"pool"}, owns) {
		t.Fatal("pool owned")
	}
	if got := MissingPrereq([]string{"pool", "warren"}, owns); got != "warren" {
		t.Fatalf("expected warren missing, got %q", got)
	}
	if HasPrereqs(NewTechTree().MustUnit("roach").Prereqs, owns) {
		t.Fatal("roach needs a warren")
	}
}

func TestBuildingsOfSorted(t *testing.T) {
	b := NewTechTree().BuildingsOf(Terran)
	if len(b) != 8 || b[0] != "armory" {
		t.Fatalf("unexpected terran buildings %v", b)
	}
}
