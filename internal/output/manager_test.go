package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestManagerSummary(t *testing.T) {
	buf := captureOutput(t)
	m := NewManager()
	m.interactive = false
	m.StartDisplay()

	ok := m.Register("a", "good.mkv", func() (uint64, uint64) { return 10, 10 })
	bad := m.Register("", "bad.mkv", nil)
	m.SetStatus(ok, "active")
	if m.GetStatus(ok) != "active" || m.GetStatus("missing") != "unknown" {
		t.Fatalf("unexpected statuses %q %q", m.GetStatus(ok), m.GetStatus("missing"))
	}
	m.Complete(ok, "")
	m.ReportError(bad, errors.New("short transfer: received 500 of 1024 bytes"))
	m.StopDisplay()
	m.StopDisplay()

	success, failures, total := m.Counts()
	if success != 1 || failures != 1 || total != 2 {
		t.Fatalf("unexpected counts %d/%d/%d", success, failures, total)
	}
	out := buf.String()
	for _, want := range []string{"Completed 1 of 2", "Failed 1 of 2", "Transfer: bad.mkv", "received 500 of 1024 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestManagerEmptySummary(t *testing.T) {
	buf := captureOutput(t)
	m := NewManager()
	m.ShowSummary()
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestManagerRenderOrder(t *testing.T) {
	m := NewManager()
	m.Register("z", "first", nil)
	m.Register("a", "second", nil)
	m.Register("m", "third", nil)
	var names []string
	for _, info := range m.sorted() {
		names = append(names, info.Name)
	}
	if strings.Join(names, ",") != "first,second,third" {
		t.Fatalf("unexpected order %v", names)
	}
}

func TestPrintProgressBar(t *testing.T) {
	cases := map[string]struct{ done, total uint64 }{
		"0.0%":   {0, 100},
		"50.0%":  {50, 100},
		"100.0%": {100, 100},
	}
	for want, c := range cases {
		if bar := PrintProgressBar(c.done, c.total, 20); !strings.Contains(bar, want) {
			t.Errorf("PrintProgressBar(%d, %d) = %q, want %s", c.done, c.total, bar, want)
		}
	}
	if bar := PrintProgressBar(0, 0, 20); !strings.Contains(bar, "100.0%") {
		t.Fatalf("zero-size transfer should read as complete, got %q", bar)
	}
	if bar := PrintProgressBar(200, 100, 20); !strings.Contains(bar, "100.0%") {
		t.Fatalf("progress must clamp at 100%%, got %q", bar)
	}
}

func TestPrintHelpersWriteToOut(t *testing.T) {
	buf := captureOutput(t)
	PrintHeader("Known bots (2)")
	PrintError("Error: connection error")
	out := buf.String()
	if !strings.Contains(out, "Known bots (2)") || !strings.Contains(out, "Error: connection error") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(FDetail("Arutha"), "Arutha") {
		t.Fatal("FDetail dropped its text")
	}
}
