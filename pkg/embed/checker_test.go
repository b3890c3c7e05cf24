package ofront_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ofront "github.com/funvibe/ofront/pkg/embed"
)

func TestCheckClean(t *testing.T) {
	report, err := ofront.New().
		AddSource("a.ol", "class A is method get : Integer is return 1 end end").
		AddSource("b.ol", "var n : A().get()").
		Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", report.Diagnostics)
	}
	if report.Unit == "" {
		t.Error("unit id missing")
	}
}

func TestCheckReportsProblems(t *testing.T) {
	report, err := ofront.New().
		AddSource("a.ol", "var x : y\nvar z : w").
		Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Diagnostics) != 2 {
		t.Fatalf("%d diagnostics, want 2", len(report.Diagnostics))
	}
	first := report.Diagnostics[0]
	if first.Code != "S005" || first.Line != 1 || first.Column != 9 {
		t.Errorf("first = %+v", first)
	}
}

func TestCheckStopOnFirstError(t *testing.T) {
	src := "class A extends A is end\nvar x : y"
	for _, stop := range []bool{false, true} {
		report, err := ofront.New().StopOnFirstError(stop).AddSource("a.ol", src).Check()
		if err != nil {
			t.Fatal(err)
		}
		want := 2
		if stop {
			want = 1
		}
		if len(report.Diagnostics) != want {
			t.Errorf("stop=%v: %d diagnostics, want %d", stop, len(report.Diagnostics), want)
		}
	}
}

func TestAddFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ol")
	if err := os.WriteFile(path, []byte("class A extends A is end"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := ofront.New()
	if err := c.AddFile(path); err != nil {
		t.Fatal(err)
	}
	if err := c.AddFile(path + ".missing"); err == nil {
		t.Error("missing file accepted")
	}
	report, err := c.Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Diagnostics) != 1 || report.Diagnostics[0].Kind != "RecursiveInheritance" {
		t.Errorf("report = %+v", report.Diagnostics)
	}
}

func TestFormat(t *testing.T) {
	got, err := ofront.Format("a.ol", "class A is var x : 1 end")
	if err != nil {
		t.Fatal(err)
	}
	if want := "class A is\n    var x : 1\nend"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	_, err = ofront.Format("a.ol", "class A is var x end")
	if err == nil || !strings.Contains(err.Error(), "syntax errors") {
		t.Errorf("err = %v", err)
	}
}
