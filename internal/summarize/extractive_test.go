package summarize

import (
	"context"
	"strings"
	"testing"
)

func TestExtractive_PicksLeadingSentences(t *testing.T) {
	e := NewExtractive()
	snippet := "The central bank cut rates by a quarter point on Thursday. " +
		"Analysts had widely expected the move after weak jobs data. " +
		"A third sentence that should not make the cut this time."

	res, err := e.Summarize(context.Background(), "Rate cut", snippet, "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != extractiveConfidence {
		t.Errorf("confidence = %v, want %v", res.Confidence, extractiveConfidence)
	}
	if !strings.Contains(res.Summary, "central bank cut rates") {
		t.Errorf("summary missing first sentence: %q", res.Summary)
	}
	if strings.Contains(res.Summary, "third sentence") {
		t.Errorf("summary exceeded maxSentences: %q", res.Summary)
	}
	if res.TLDR == "" {
		t.Error("tldr must not be empty")
	}
}

func TestExtractive_DegradesShortContent(t *testing.T) {
	e := NewExtractive()

	res, err := e.Summarize(context.Background(), "Brief note", "Too short", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != degradedConfidence {
		t.Errorf("confidence = %v, want %v", res.Confidence, degradedConfidence)
	}
	if res.Summary == "" || res.TLDR == "" {
		t.Error("degraded result must still carry summary and tldr")
	}
}

func TestExtractive_FallsBackToTitle(t *testing.T) {
	e := NewExtractive()

	res, err := e.Summarize(context.Background(), "Headline only, with enough length to matter", "", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary == "" {
		t.Error("empty snippet should fall back to the title")
	}
}

func TestExtractive_EmptyEverything(t *testing.T) {
	e := NewExtractive()

	res, err := e.Summarize(context.Background(), "", "", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary == "" || res.TLDR == "" {
		t.Error("even empty input must yield placeholder text")
	}
	if res.Confidence != degradedConfidence {
		t.Errorf("confidence = %v, want %v", res.Confidence, degradedConfidence)
	}
}

func TestClampConfidence(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.8, 1},
	}
	for _, c := range cases {
		if got := clampConfidence(c.in); got != c.want {
			t.Errorf("clampConfidence(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
