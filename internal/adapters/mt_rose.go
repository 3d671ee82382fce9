package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// MtRose parses Mt Rose Ski Tahoe's conditions page. The lift status
// section lists each lift by name with a status word, and snow values are
// published as ranges like `47-58"`.
type MtRose struct {
	kind string
}

func (a *MtRose) Kind() string    { return a.kind }
func (a *MtRose) Available() bool { return true }

// Known lifts at Mt Rose.
var mtRoseLifts = []string{
	"Northwest Express",
	"Zephyr Express",
	"Lakeview Express",
	"Wizard",
	"Magic",
	"Galena",
	"Chuter",
	"Blazing Zephyr",
}

var (
	mtRoseNewSnowPattern = regexp.MustCompile(`(?i)new\s*snow[:\s]\s*(\d+)[-–]?(\d+)?["″]`)
	mtRoseBasePattern    = regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]\s*(\d+)[-–]?(\d+)?["″]`)
	mtRoseSeasonPattern  = regexp.MustCompile(`(?i)season\s*(?:total)?[:\s]\s*(\d+)[-–]?(\d+)?["″]`)
	mtRoseStormPattern   = regexp.MustCompile(`(?i)storm\s*(?:total)?[:\s]\s*(\d+)[-–]?(\d+)?["″]`)
	mtRoseTrailsPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)`)
)

func (a *MtRose) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	// Prefer the dedicated lift-status section, fall back to full page.
	liftText := CleanText(doc.Find(".lift-status").Text())
	text := pageText(doc)
	if liftText == "" {
		liftText = text
	}
	a.countLifts(liftText, ops)

	// Mt Rose publishes terrain percentage rather than trail counts, so
	// trails usually stay nil; pick up explicit counts if present.
	if open, total, ok := findCounts(text, []*regexp.Regexp{mtRoseTrailsPattern}); ok {
		ops.TrailsOpen = resort.Int(open)
		ops.TrailsTotal = resort.Int(total)
	}

	snow.NewSnow24hIn = findRangeAvg(text, mtRoseNewSnowPattern)
	snow.BaseDepthIn = findRangeAvg(text, mtRoseBasePattern)
	snow.SeasonTotalIn = findRangeAvg(text, mtRoseSeasonPattern)
	snow.NewSnow48hIn = findRangeAvg(text, mtRoseStormPattern)

	ops.OpenFlag = resort.Bool(ops.LiftsOpen != nil && *ops.LiftsOpen > 0)

	return result, nil
}

// countLifts scans for each known lift name followed by its status word.
// Only the first word after the name is the status; anything longer would
// bleed into the next lift's entry in the flattened text. "Scheduled to
// open" still counts as open for the day via its leading word.
func (a *MtRose) countLifts(text string, ops *resort.Ops) {
	open, total := 0, 0

	for _, name := range mtRoseLifts {
		p := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `\s+(\w+)`)
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		total++
		status := strings.ToLower(m[1])
		if strings.Contains(status, "scheduled") || strings.Contains(status, "open") {
			open++
		}
	}

	if total > 0 {
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsTotal = resort.Int(total)
	}
}
