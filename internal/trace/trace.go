package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Trace records the timed steps of one briefing run and can persist itself as
// an indented JSON file for offline inspection.
type Trace struct {
	mu sync.Mutex

	TraceID   string    `json:"trace_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Steps     []Step    `json:"steps"`
}

type Step struct {
	Name       string         `json:"name"`
	DurationMS int64          `json:"duration_ms"`
	Status     string         `json:"status"`
	Meta       map[string]any `json:"meta,omitempty"`
}

func New() *Trace {
	return &Trace{
		TraceID:   uuid.NewString(),
		StartTime: time.Now(),
	}
}

func (t *Trace) AddStep(name string, duration time.Duration, status string, meta map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Steps = append(t.Steps, Step{
		Name:       name,
		DurationMS: duration.Milliseconds(),
		Status:     status,
		Meta:       meta,
	})
}

// End closes the trace and writes it under dir. An empty dir disables
// persistence; write failures are reported but never fatal.
func (t *Trace) End(dir string) (string, error) {
	t.mu.Lock()
	t.EndTime = time.Now()
	t.mu.Unlock()

	if dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create trace dir: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal trace: %w", err)
	}

	path := filepath.Join(dir, t.TraceID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write trace file: %w", err)
	}
	return path, nil
}
