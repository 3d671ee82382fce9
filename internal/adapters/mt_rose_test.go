package adapters

import "testing"

func TestMtRoseParse(t *testing.T) {
	content := loadFixture(t, "mt_rose.html")

	a := ForKind("mt_rose")
	result, err := a.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ops := result.Ops
	// 8 named lifts in the fixture: 4 open, 1 scheduled (counts as open),
	// 3 closed.
	if ops.LiftsOpen == nil || *ops.LiftsOpen != 5 {
		t.Errorf("LiftsOpen = %v, expected 5", ops.LiftsOpen)
	}
	if ops.LiftsTotal == nil || *ops.LiftsTotal != 8 {
		t.Errorf("LiftsTotal = %v, expected 8", ops.LiftsTotal)
	}
	if ops.OpenFlag == nil || !*ops.OpenFlag {
		t.Errorf("OpenFlag = %v, expected true", ops.OpenFlag)
	}

	snow := result.Snow
	if snow.NewSnow24hIn == nil || *snow.NewSnow24hIn != 5 {
		t.Errorf("NewSnow24hIn = %v, expected 5 (average of 4-6)", snow.NewSnow24hIn)
	}
	if snow.BaseDepthIn == nil || *snow.BaseDepthIn != 52.5 {
		t.Errorf("BaseDepthIn = %v, expected 52.5 (average of 47-58)", snow.BaseDepthIn)
	}
	if snow.SeasonTotalIn == nil || *snow.SeasonTotalIn != 120 {
		t.Errorf("SeasonTotalIn = %v, expected 120", snow.SeasonTotalIn)
	}
	if snow.NewSnow48hIn == nil || *snow.NewSnow48hIn != 10 {
		t.Errorf("NewSnow48hIn = %v, expected 10", snow.NewSnow48hIn)
	}
}

func TestMtRoseClosedLiftNotCountedOpen(t *testing.T) {
	// A closed lift followed later in the text by open lifts must not pick
	// up the later status words.
	html := `<html><body>
		<div class="lift-status">Wizard Closed Magic Open</div>
	</body></html>`

	a := ForKind("mt_rose")
	result, err := a.Parse(html)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Ops.LiftsOpen == nil || *result.Ops.LiftsOpen != 1 {
		t.Errorf("LiftsOpen = %v, expected 1", result.Ops.LiftsOpen)
	}
	if result.Ops.LiftsTotal == nil || *result.Ops.LiftsTotal != 2 {
		t.Errorf("LiftsTotal = %v, expected 2", result.Ops.LiftsTotal)
	}
}
