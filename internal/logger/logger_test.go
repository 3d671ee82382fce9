package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogEntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("Resort parsed", Fields{"slug": "mt-rose", "lifts": 5})

	var e map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if e["level"] != "INFO" {
		t.Errorf("level = %v, expected INFO", e["level"])
	}
	if e["message"] != "Resort parsed" {
		t.Errorf("message = %v", e["message"])
	}
	fields, ok := e["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("fields block missing")
	}
	if fields["slug"] != "mt-rose" {
		t.Errorf("fields.slug = %v", fields["slug"])
	}
	if e["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestMinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Errorf("debug message should be filtered at INFO level: %s", buf.String())
	}

	l.Warn("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message should pass at INFO level")
	}
}

func TestErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError, &buf)

	l.Error("Fetch failed", Fields{"slug": "homewood"}, errTest)

	var e map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if e["error"] != "boom" {
		t.Errorf("error = %v, expected boom", e["error"])
	}
}

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "boom" }

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("resorts.fresh")
	m.IncrCounter("resorts.fresh")
	m.IncrCounter("resorts.stale")
	m.RecordTiming("fetch.request", 100)
	m.RecordTiming("fetch.request", 300)

	snap := m.Snapshot()

	counters, ok := snap["counters"].(map[string]int64)
	if !ok {
		t.Fatal("counters block missing")
	}
	if counters["resorts.fresh"] != 2 {
		t.Errorf("resorts.fresh = %d, expected 2", counters["resorts.fresh"])
	}
	if counters["resorts.stale"] != 1 {
		t.Errorf("resorts.stale = %d, expected 1", counters["resorts.stale"])
	}

	timings, ok := snap["timings"].(map[string]Fields)
	if !ok {
		t.Fatal("timings block missing")
	}
	stats, ok := timings["fetch.request"]
	if !ok {
		t.Fatal("fetch.request timing missing")
	}
	if stats["count"] != 2 {
		t.Errorf("count = %v, expected 2", stats["count"])
	}
	if stats["min"] != "100ns" || stats["max"] != "300ns" {
		t.Errorf("min/max = %v/%v", stats["min"], stats["max"])
	}
	if stats["average"] != "200ns" {
		t.Errorf("average = %v, expected 200ns", stats["average"])
	}
}
