package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

func openResort(slug, name string) *resort.Conditions {
	return &resort.Conditions{
		Slug:         slug,
		Name:         name,
		FetchedAtUTC: time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC),
		Ops: resort.Ops{
			OpenFlag:    resort.Bool(true),
			LiftsOpen:   resort.Int(5),
			LiftsTotal:  resort.Int(10),
			TrailsOpen:  resort.Int(20),
			TrailsTotal: resort.Int(40),
		},
	}
}

func TestGenerateCounts(t *testing.T) {
	records := []*resort.Conditions{
		openResort("a", "Alpha"),
		{Slug: "b", Name: "Beta", Ops: resort.Ops{OpenFlag: resort.Bool(false)}},
		{Slug: "c", Name: "Gamma", Stale: true},
		{Slug: "d", Name: "Delta"}, // no open flag reported counts as closed
	}

	s := Generate(records)

	if s.Counts.OpenResorts != 1 {
		t.Errorf("OpenResorts = %d, expected 1", s.Counts.OpenResorts)
	}
	if s.Counts.ClosedResorts != 2 {
		t.Errorf("ClosedResorts = %d, expected 2", s.Counts.ClosedResorts)
	}
	if s.Counts.StaleResorts != 1 {
		t.Errorf("StaleResorts = %d, expected 1", s.Counts.StaleResorts)
	}
	if len(s.Blurbs) != 4 {
		t.Errorf("expected a blurb per resort, got %d", len(s.Blurbs))
	}
	if s.LastUpdatedUTC.IsZero() {
		t.Error("LastUpdatedUTC not set")
	}
}

func TestBlurbFresh(t *testing.T) {
	c := openResort("dp", "Diamond Peak")
	c.Snow.NewSnow24hIn = resort.Float(6)
	c.Weather.ShortForecast = resort.String("Snow Showers")
	c.Weather.TempF = resort.Float(28)
	c.Weather.WindMph = resort.Float(10)

	blurb := Blurb(c)

	for _, want := range []string{
		"Diamond Peak:",
		"5/10 lifts",
		"20/40 trails",
		`New snow (24h): 6"`,
		"Snow Showers",
		"28°F",
		"wind 10 mph",
	} {
		if !strings.Contains(blurb, want) {
			t.Errorf("blurb missing %q: %s", want, blurb)
		}
	}
}

func TestBlurbScheduledCountsTowardOpen(t *testing.T) {
	c := openResort("sb", "Sugar Bowl")
	c.Ops.LiftsScheduled = resort.Int(2)

	blurb := Blurb(c)
	if !strings.Contains(blurb, "7/10 lifts") {
		t.Errorf("scheduled lifts should add to the open count: %s", blurb)
	}
}

func TestBlurbStale(t *testing.T) {
	c := &resort.Conditions{
		Slug:         "pt",
		Name:         "Palisades Tahoe",
		Stale:        true,
		FetchedAtUTC: time.Date(2026, 1, 14, 16, 30, 0, 0, time.UTC),
	}

	blurb := Blurb(c)
	if !strings.Contains(blurb, "Latest update unavailable") {
		t.Errorf("stale blurb missing notice: %s", blurb)
	}
	if !strings.Contains(blurb, "2026-01-14 16:30") {
		t.Errorf("stale blurb should cite the last-known-good timestamp: %s", blurb)
	}
}

func TestHighlights(t *testing.T) {
	a := openResort("a", "Alpha")
	a.Ops.TrailsOpen = resort.Int(30) // 75% open
	a.Snow.NewSnow24hIn = resort.Float(3)
	a.Weather.TempF = resort.Float(25)
	a.Weather.WindMph = resort.Float(8)

	b := openResort("b", "Beta")
	b.Snow.NewSnow24hIn = resort.Float(8)
	b.Weather.TempF = resort.Float(40)
	b.Weather.WindMph = resort.Float(22)

	stale := openResort("c", "Gamma")
	stale.Stale = true
	stale.Snow.NewSnow24hIn = resort.Float(99) // must be ignored

	s := Generate([]*resort.Conditions{a, b, stale})

	joined := strings.Join(s.Highlights, "\n")

	if !strings.Contains(joined, "Most open terrain: Alpha") {
		t.Errorf("missing terrain highlight: %s", joined)
	}
	if !strings.Contains(joined, "Most new snow: Beta") {
		t.Errorf("missing snow highlight: %s", joined)
	}
	if strings.Contains(joined, "Gamma") {
		t.Errorf("stale resort must not appear in highlights: %s", joined)
	}
	// Beta's 22 mph is above the windy threshold.
	if !strings.Contains(joined, "Windiest: Beta") {
		t.Errorf("missing wind highlight: %s", joined)
	}
	// Alpha's 25F is below freezing.
	if !strings.Contains(joined, "Coldest: Alpha") {
		t.Errorf("missing cold highlight: %s", joined)
	}
}

func TestHighlightsThresholdsSuppressed(t *testing.T) {
	a := openResort("a", "Alpha")
	a.Weather.TempF = resort.Float(40) // above freezing
	a.Weather.WindMph = resort.Float(5)

	s := Generate([]*resort.Conditions{a})
	joined := strings.Join(s.Highlights, "\n")

	if strings.Contains(joined, "Windiest") {
		t.Errorf("mild wind should not be highlighted: %s", joined)
	}
	if strings.Contains(joined, "Coldest") {
		t.Errorf("mild temperature should not be highlighted: %s", joined)
	}
}

func TestHighlightsAllClosed(t *testing.T) {
	records := []*resort.Conditions{
		{Slug: "a", Name: "Alpha", Ops: resort.Ops{OpenFlag: resort.Bool(false)}},
		{Slug: "b", Name: "Beta", Stale: true},
	}

	s := Generate(records)
	if len(s.Highlights) != 1 || !strings.Contains(s.Highlights[0], "closed or unavailable") {
		t.Errorf("expected single all-closed highlight, got %v", s.Highlights)
	}
}
