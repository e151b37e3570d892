package directive

import (
	"testing"
)

func TestParseArgs_DirectiveForms(t *testing.T) {
	inv := ParseArgs([]string{"--indent=2", "--evil", "myfile.js"})

	if inv.Filename != "myfile.js" {
		t.Errorf("Filename = %q, want %q", inv.Filename, "myfile.js")
	}
	if len(inv.Directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(inv.Directives))
	}

	indent := inv.Directives[0]
	if s, ok := indent.Value.AsString(); indent.Name != "indent" || !ok || s != "2" {
		t.Errorf("indent directive = %+v, want string \"2\"", indent)
	}

	// A bare directive is the real boolean false, never the string "false".
	evil := inv.Directives[1]
	if b, ok := evil.Value.AsBool(); evil.Name != "evil" || !ok || b {
		t.Errorf("evil directive = %+v (%s), want bool false", evil, evil.Value.Kind())
	}
}

func TestParseArgs_ValueKeptVerbatim(t *testing.T) {
	inv := ParseArgs([]string{"--predef=a,b=c", "--maxlen="})
	if s, _ := inv.Directives[0].Value.AsString(); s != "a,b=c" {
		t.Errorf("predef = %q, want split on first '=' only", s)
	}
	if s, ok := inv.Directives[1].Value.AsString(); !ok || s != "" {
		t.Errorf("maxlen = %v, want empty string", inv.Directives[1].Value)
	}
}

func TestParseArgs_FirstBareTokenWins(t *testing.T) {
	inv := ParseArgs([]string{"a.js", "--white", "b.js", "c.js"})
	if inv.Filename != "a.js" {
		t.Errorf("Filename = %q, want a.js", inv.Filename)
	}
}

func TestParseArgs_NoFilename(t *testing.T) {
	inv := ParseArgs([]string{"--white"})
	if inv.Filename != "" {
		t.Errorf("Filename = %q, want empty", inv.Filename)
	}
}

func TestParseArgs_EmptyDirectiveNameIgnored(t *testing.T) {
	inv := ParseArgs([]string{"--", "--=x", "f.js"})
	if len(inv.Directives) != 0 {
		t.Errorf("expected no directives, got %+v", inv.Directives)
	}
	if inv.Filename != "f.js" {
		t.Errorf("Filename = %q, want f.js", inv.Filename)
	}
}

func TestParseArgs_VersionShortCircuits(t *testing.T) {
	for _, flag := range []string{"-v", "-version"} {
		t.Run(flag, func(t *testing.T) {
			inv := ParseArgs([]string{"--white", flag, "file.js", "--evil"})
			if !inv.ShowVersion {
				t.Fatal("ShowVersion = false")
			}
			if inv.Filename != "" {
				t.Errorf("tokens after %s should not be processed, Filename = %q", flag, inv.Filename)
			}
			if len(inv.Directives) != 1 {
				t.Errorf("expected 1 directive before %s, got %d", flag, len(inv.Directives))
			}
		})
	}
}

func TestParseArgs_HarnessOptions(t *testing.T) {
	inv := ParseArgs([]string{"-timings", "-color=off", "-bogus", "-trace-level=phase", "x.js"})

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{OptTimings, "true", true},
		{OptColor, "off", true},
		{OptTraceLevel, "phase", true},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		got, ok := inv.Option(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Option(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	if inv.Filename != "x.js" {
		t.Errorf("Filename = %q, want x.js", inv.Filename)
	}
}

func TestBuild_OverrideOrder(t *testing.T) {
	inv := ParseArgs([]string{"--indent=2", "--white", "--indent=8"})
	extra := []Entry{
		{Name: "indent", Value: Number(3)},
		{Name: "maxlen", Value: Number(100)},
	}
	r := Build(inv, extra)

	if !r.Frozen() {
		t.Error("Build should freeze the registry")
	}
	indent, _ := r.Get("indent")
	if s, ok := indent.AsString(); !ok || s != "8" {
		t.Errorf("indent = %v, want last CLI value \"8\"", indent)
	}
	maxlen, _ := r.Get("maxlen")
	if n, ok := maxlen.AsNumber(); !ok || n != 100 {
		t.Errorf("maxlen = %v, want config value 100", maxlen)
	}
	devel, _ := r.Get("devel")
	if b, _ := devel.AsBool(); !b {
		t.Error("untouched default devel should stay true")
	}
	if _, ok := r.Get("white"); !ok {
		t.Error("white directive missing")
	}
}
