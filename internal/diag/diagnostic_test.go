package diag

import "testing"

func TestDiagnosticError(t *testing.T) {
	tests := []struct {
		name string
		d    *Diagnostic
		want string
	}{
		{"nil", nil, "<nil>"},
		{"message only", &Diagnostic{Message: "ReferenceError: x is not defined"}, "ReferenceError: x is not defined"},
		{
			"with location",
			&Diagnostic{
				Message:  "SyntaxError: Unexpected token",
				Location: &Location{Resource: "jslint.js", Line: 3, StartColumn: 4, EndColumn: 7},
			},
			"jslint.js:3: SyntaxError: Unexpected token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationWidth(t *testing.T) {
	if w := (Location{StartColumn: 4, EndColumn: 7}).Width(); w != 3 {
		t.Errorf("Width() = %d, want 3", w)
	}
	if w := (Location{StartColumn: 5, EndColumn: 5}).Width(); w != 0 {
		t.Errorf("Width() = %d, want 0", w)
	}
	if w := (Location{StartColumn: 6, EndColumn: 2}).Width(); w != 0 {
		t.Errorf("Width() = %d, want 0 for inverted span", w)
	}
}

func TestPhaseAndKindStrings(t *testing.T) {
	if PhaseBootstrap.String() != "bootstrap" || PhaseDriver.String() != "driver" {
		t.Error("unexpected phase names")
	}
	if KindRuntime.String() != "runtime" || Kind(0).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
