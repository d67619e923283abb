package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRun_RecordsCounters(t *testing.T) {
	t.Parallel()

	r := New()
	r.RecordClassification("happy")
	r.RecordClassification("happy")
	r.RecordClassification("neutral")
	r.RecordQuery(10*time.Millisecond, nil)
	r.RecordQuery(20*time.Millisecond, errors.New("boom"))
	r.RecordAssignment(true)
	r.RecordAssignment(false)
	r.RecordAssignment(false)

	if got := testutil.ToFloat64(r.Classifications.WithLabelValues("happy")); got != 2 {
		t.Fatalf("happy=%v", got)
	}
	if got := testutil.ToFloat64(r.QueryFailures); got != 1 {
		t.Fatalf("failures=%v", got)
	}
	if got := testutil.ToFloat64(r.Assignments.WithLabelValues("fallback")); got != 2 {
		t.Fatalf("fallback=%v", got)
	}
	if got := testutil.CollectAndCount(r.QueryDuration); got != 1 {
		t.Fatalf("histogram series=%d", got)
	}
}

func TestRun_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Run
	r.RecordClassification("happy")
	r.RecordQuery(time.Second, errors.New("x"))
	r.RecordAssignment(true)
	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
}

func TestRun_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := New()
	r.RecordClassification("lonely")
	p := filepath.Join(t.TempDir(), "santa.prom")
	if err := r.WriteTextfile(p); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `santa_classifications_total{emotion="lonely"} 1`) {
		t.Fatalf("textfile=%s", b)
	}
}
