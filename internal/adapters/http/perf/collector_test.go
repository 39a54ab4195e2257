package perf

import (
	"fmt"
	"testing"
	"time"
)

func TestCollectorRecordAndSnapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	for i := 0; i < 10; i++ {
		c.Record(Entry{
			Kind:       KindRequest,
			Path:       "GET /90day",
			StatusCode: 200,
			DurationMs: float64(i + 1),
			Timestamp:  now,
		})
	}
	c.Record(Entry{Kind: KindQuery, Path: "document.Get", DurationMs: 3, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 5)
	if snap.TotalRequests != 11 {
		t.Errorf("expected 11 total entries, got %d", snap.TotalRequests)
	}
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Count != 10 {
		t.Errorf("expected one request path with 10 samples, got %+v", snap.SlowestPaths)
	}
	if len(snap.SlowestQueries) != 1 || snap.SlowestQueries[0].Path != "document.Get" {
		t.Errorf("expected one query path, got %+v", snap.SlowestQueries)
	}
	if snap.RequestP50Ms < 5 || snap.RequestP50Ms > 6 {
		t.Errorf("expected p50 around 5.5, got %f", snap.RequestP50Ms)
	}
}

func TestCollectorRingOverwrite(t *testing.T) {
	c := NewCollector(4)
	now := time.Now()

	for i := 0; i < 10; i++ {
		c.Record(Entry{Kind: KindRequest, Path: fmt.Sprintf("GET /p%d", i), DurationMs: 1, Timestamp: now})
	}

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRequests != 10 {
		t.Errorf("expected total 10, got %d", snap.TotalRequests)
	}
	if len(snap.SlowestPaths) != 4 {
		t.Errorf("expected only the newest 4 entries retained, got %d", len(snap.SlowestPaths))
	}
}

func TestSnapshotFiltersBySince(t *testing.T) {
	c := NewCollector(10)
	old := time.Now().Add(-2 * time.Hour)
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 1, Timestamp: old})

	snap := c.Snapshot(time.Now().Add(-time.Hour), 5)
	if len(snap.SlowestPaths) != 0 {
		t.Errorf("expected entries before since excluded, got %+v", snap.SlowestPaths)
	}
}
