package language

import "testing"

func TestLookup_KnownAndUnknown(t *testing.T) {
	l, ok := Lookup("es-ES")
	if !ok {
		t.Fatalf("expected es-ES in catalog")
	}
	if l.DisplayName != "Spanish" {
		t.Fatalf("unexpected display name: %q", l.DisplayName)
	}
	if _, ok := Lookup("xx-XX"); ok {
		t.Fatalf("did not expect xx-XX in catalog")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	if len(a) == 0 {
		t.Fatalf("expected non-empty catalog")
	}
	a[0].DisplayName = "mutated"
	if b := All(); b[0].DisplayName == "mutated" {
		t.Fatalf("All must return a copy, not the backing slice")
	}
}

func TestDisplayName_FallsBackToCode(t *testing.T) {
	if got := DisplayName("tlh-KL"); got != "tlh-KL" {
		t.Fatalf("expected fallback to code, got %q", got)
	}
	if got := DisplayName("fr-FR"); got != "French" {
		t.Fatalf("expected French, got %q", got)
	}
}
