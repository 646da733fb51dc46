package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Label: "Indexing", Out: &buf}

	track := Track(r)
	track(1, 2, "page-00.md")
	track(2, 2, "page-01.md")
	r.Finish()

	want := "Indexing: 2 notes\n[1/2] page-00.md\n[2/2] page-01.md\nIndexing: done\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("Indexing").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{Label: "Indexing"}
	r.Update(1, "ignored")
	r.Finish()
}
