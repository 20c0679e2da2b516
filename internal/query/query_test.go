package query

import (
	"errors"
	"testing"
	"time"

	"github.com/ehfeng/querycrafter/internal/driver"
)

func TestLifecycleHappyPath(t *testing.T) {
	l := &Lifecycle{}
	start := time.Now()
	l.Start("select 1", start)
	if l.State != Running {
		t.Fatalf("expected Running, got %s", l.State)
	}
	l.Complete(driver.ResultSet{Headers: []string{"?column?"}, Rows: [][]string{{"1"}}}, 5, start.Add(5*time.Millisecond))
	if l.State != Completed {
		t.Fatalf("expected Completed, got %s", l.State)
	}
	if l.ExecutionTimeMS != 5 {
		t.Fatalf("expected reported 5ms, got %d", l.ExecutionTimeMS)
	}
}

func TestLifecycleNeverRecordsZeroElapsed(t *testing.T) {
	l := &Lifecycle{}
	start := time.Now()
	l.Start("select 1", start)
	l.Complete(driver.ResultSet{}, 0, start)
	if l.ExecutionTimeMS < 1 {
		t.Fatalf("expected clamp to at least 1ms, got %d", l.ExecutionTimeMS)
	}
}

func TestLifecycleFailureClearsRunning(t *testing.T) {
	l := &Lifecycle{}
	l.Start("select bogus", time.Now())
	l.Fail(errors.New("boom"))
	if l.State != Failed {
		t.Fatalf("expected Failed, got %s", l.State)
	}
}

func TestAddExplainPlain(t *testing.T) {
	got := AddExplain("select 1", false)
	if got != "EXPLAIN select 1" {
		t.Fatalf("got %q", got)
	}
}

func TestAddExplainAnalyzePreservesOtherOptions(t *testing.T) {
	got := AddExplain("EXPLAIN (COSTS false) select 1", true)
	if got != "EXPLAIN (ANALYZE, COSTS false) select 1" {
		t.Fatalf("got %q", got)
	}
}

func TestToggleExplainViewRoundTrips(t *testing.T) {
	once := ToggleExplainView("select 1")
	twice := ToggleExplainView(once)
	if twice != "select 1" {
		t.Fatalf("round trip failed: once=%q twice=%q", once, twice)
	}
}

func TestToggleExplainAnalyzeCycle(t *testing.T) {
	plain := "select 1"
	withAnalyze := ToggleExplainAnalyze(plain)
	if withAnalyze != "EXPLAIN (ANALYZE) select 1" {
		t.Fatalf("got %q", withAnalyze)
	}
	back := ToggleExplainAnalyze(withAnalyze)
	if back != plain {
		t.Fatalf("expected cycle back to plain, got %q", back)
	}
}
