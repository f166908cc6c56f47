package session

import (
	"strings"
	"testing"
)

func TestBuildReports_GroupsBySourceInBatchOrder(t *testing.T) {
	outcomes := []Outcome{
		{SourceID: 301, Hours: 1, NewID: 111},
		{SourceID: 301, Hours: 2, NewID: 222},
		{SourceID: 305, Hours: 24, NewID: 333},
	}

	messages := buildReports([]int64{301, 305}, outcomes)

	if len(messages) != 2 {
		t.Fatalf("expected 2 report messages, got %d", len(messages))
	}
	wantIDs := reportHeaderIDs + "\n" +
		`(из "301") 111, 222` + "\n" +
		`(из "305") 333`
	if messages[0] != wantIDs {
		t.Fatalf("unexpected id report:\n%q\nwant:\n%q", messages[0], wantIDs)
	}
	wantHours := reportHeaderByHours + "\n" +
		`(из "301") 111, 222 - 1 час, 2 часа` + "\n" +
		`(из "305") 333 - 1 день`
	if messages[1] != wantHours {
		t.Fatalf("unexpected hours report:\n%q\nwant:\n%q", messages[1], wantHours)
	}
}

func TestBuildReports_UnrecoveredIDs(t *testing.T) {
	outcomes := []Outcome{
		{SourceID: 301, Hours: 1, NewID: 0},
		{SourceID: 301, Hours: 6, NewID: 0},
	}

	messages := buildReports([]int64{301}, outcomes)

	if len(messages) != 1 {
		t.Fatalf("expected only the hours report, got %d messages", len(messages))
	}
	want := reportHeaderByHours + "\n" + `(из "301") — - 1 час, 6 часов`
	if messages[0] != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", messages[0], want)
	}
}

func TestBuildReports_NoOutcomes(t *testing.T) {
	if messages := buildReports([]int64{301}, nil); len(messages) != 0 {
		t.Fatalf("expected no reports, got %+v", messages)
	}
}

func TestBuildReports_SkipsSourcesWithoutOutcomes(t *testing.T) {
	outcomes := []Outcome{{SourceID: 305, Hours: 1, NewID: 111}}

	messages := buildReports([]int64{301, 305}, outcomes)

	for _, msg := range messages {
		if strings.Contains(msg, `"301"`) {
			t.Fatalf("source without outcomes leaked into report: %q", msg)
		}
	}
}

func TestChunkLines_SplitsAtBudget(t *testing.T) {
	line := strings.Repeat("x", 30)
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = line
	}

	messages := chunkLines("header", lines)

	if len(messages) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(messages))
	}
	total := 0
	for _, msg := range messages {
		if !strings.HasPrefix(msg, "header\n") {
			t.Fatalf("chunk misses header: %q", msg[:20])
		}
		if len(msg) > len("header")+1+reportChunkLimit {
			t.Fatalf("chunk exceeds budget: %d bytes", len(msg))
		}
		total += strings.Count(msg, line)
	}
	if total != 200 {
		t.Fatalf("lines lost in chunking: got %d, want 200", total)
	}
}
