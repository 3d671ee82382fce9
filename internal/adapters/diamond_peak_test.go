package adapters

import "testing"

func TestDiamondPeakParse(t *testing.T) {
	content := loadFixture(t, "diamond_peak.html")

	a := ForKind("diamond_peak")
	result, err := a.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ops := result.Ops
	if ops.LiftsOpen == nil || *ops.LiftsOpen != 3 {
		t.Errorf("LiftsOpen = %v, expected 3", ops.LiftsOpen)
	}
	if ops.LiftsTotal == nil || *ops.LiftsTotal != 4 {
		t.Errorf("LiftsTotal = %v, expected 4", ops.LiftsTotal)
	}

	// 9 trail rows in the fixture, one of which is a Village terrain park
	// item that must be skipped.
	if ops.TrailsOpen == nil || *ops.TrailsOpen != 5 {
		t.Errorf("TrailsOpen = %v, expected 5", ops.TrailsOpen)
	}
	if ops.TrailsTotal == nil || *ops.TrailsTotal != 8 {
		t.Errorf("TrailsTotal = %v, expected 8", ops.TrailsTotal)
	}

	if ops.OpenFlag == nil || !*ops.OpenFlag {
		t.Errorf("OpenFlag = %v, expected true", ops.OpenFlag)
	}

	snow := result.Snow
	if snow.NewSnow24hIn == nil || *snow.NewSnow24hIn != 3 {
		t.Errorf("NewSnow24hIn = %v, expected 3", snow.NewSnow24hIn)
	}
	if snow.NewSnow48hIn == nil || *snow.NewSnow48hIn != 8 {
		t.Errorf("NewSnow48hIn = %v, expected 8", snow.NewSnow48hIn)
	}
	if snow.BaseDepthIn == nil || *snow.BaseDepthIn != 40 {
		t.Errorf("BaseDepthIn = %v, expected 40", snow.BaseDepthIn)
	}
	if snow.SeasonTotalIn == nil || *snow.SeasonTotalIn != 210 {
		t.Errorf("SeasonTotalIn = %v, expected 210", snow.SeasonTotalIn)
	}
}

func TestDiamondPeakParseEmptyPage(t *testing.T) {
	a := ForKind("diamond_peak")
	result, err := a.Parse("<html><body><p>Mountain closed for the season</p></body></html>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Ops.LiftsOpen != nil {
		t.Errorf("LiftsOpen = %v, expected nil on a page without lift rows", result.Ops.LiftsOpen)
	}
	if result.Ops.OpenFlag == nil || *result.Ops.OpenFlag {
		t.Errorf("OpenFlag = %v, expected false for closed mountain", result.Ops.OpenFlag)
	}
}
