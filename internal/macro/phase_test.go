package macro

import "testing"

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseTypes, "types"},
		{PhaseDeclarations, "declarations"},
		{PhaseDefinitions, "definitions"},
		{Phase(42), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in      string
		want    Phase
		wantErr bool
	}{
		{"types", PhaseTypes, false},
		{"declarations", PhaseDeclarations, false},
		{"decls", PhaseDeclarations, false},
		{"definitions", PhaseDefinitions, false},
		{"defs", PhaseDefinitions, false},
		{"Types", 0, true},
		{"", 0, true},
		{"bodies", 0, true},
	}

	for _, tc := range tests {
		got, err := ParsePhase(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePhase(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParsePhase(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPhases_Order(t *testing.T) {
	phases := Phases()
	if len(phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(phases))
	}
	want := []Phase{PhaseTypes, PhaseDeclarations, PhaseDefinitions}
	for i, p := range phases {
		if p != want[i] {
			t.Errorf("Phases()[%d] = %v, want %v", i, p, want[i])
		}
	}
}
