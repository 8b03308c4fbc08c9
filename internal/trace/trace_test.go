package trace

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTrace_EndWritesFile(t *testing.T) {
	dir := t.TempDir()

	tr := New()
	tr.AddStep("fetch", 120*time.Millisecond, "ok", map[string]any{"collected": 12})
	tr.AddStep("summarize_item", 80*time.Millisecond, "degraded", nil)

	path, err := tr.End(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, tr.TraceID+".json") {
		t.Errorf("trace file named %q, want suffix %q", path, tr.TraceID+".json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	var loaded Trace
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("trace file is not valid JSON: %v", err)
	}
	if loaded.TraceID != tr.TraceID {
		t.Errorf("trace_id = %q, want %q", loaded.TraceID, tr.TraceID)
	}
	if len(loaded.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(loaded.Steps))
	}
	if loaded.Steps[0].Name != "fetch" || loaded.Steps[0].DurationMS != 120 {
		t.Errorf("first step = %+v", loaded.Steps[0])
	}
	if loaded.Steps[1].Status != "degraded" {
		t.Errorf("second step status = %q", loaded.Steps[1].Status)
	}
	if loaded.EndTime.IsZero() {
		t.Error("end_time not recorded")
	}
}

func TestTrace_EmptyDirDisablesPersistence(t *testing.T) {
	tr := New()
	path, err := tr.End("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no file, got %q", path)
	}
	if tr.EndTime.IsZero() {
		t.Error("end must still close the trace")
	}
}

func TestTrace_ConcurrentAddStep(t *testing.T) {
	tr := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AddStep("summarize_item", time.Millisecond, "ok", nil)
		}()
	}
	wg.Wait()

	if len(tr.Steps) != 50 {
		t.Errorf("expected 50 steps, got %d", len(tr.Steps))
	}
}

func TestTrace_UniqueIDs(t *testing.T) {
	if New().TraceID == New().TraceID {
		t.Error("trace IDs must be unique")
	}
}
