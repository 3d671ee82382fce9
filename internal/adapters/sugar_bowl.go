package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// SugarBowl parses Sugar Bowl's conditions page. Individual lift entries
// carry Open/Scheduled/Closed statuses; scheduled lifts are tracked
// separately so consumers can distinguish "spinning now" from "opening
// later today".
type SugarBowl struct {
	kind string
}

func (a *SugarBowl) Kind() string    { return a.kind }
func (a *SugarBowl) Available() bool { return true }

// Known lifts at Sugar Bowl.
var sugarBowlLifts = []string{
	"Mt. Judah Express", "Jerome Hill Express", "Mt. Lincoln Express",
	"Christmas Tree Express", "Mt. Disney Express", "Nob Hill",
	"White Pine", "Summit Chair", "Gondola", "Flume Carpet", "Crow's Peak",
}

var (
	sbLiftsPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?\s*open`)
	sbTrailsPattern = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*trails?\s*open`)

	sbSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*["″]\s*24\s*hr`),
		regexp.MustCompile(`(?i)24\s*hr\s*(?:snowfall)?[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	sbSeasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*["″]\s*(?:year\s*to\s*date|ytd)`),
		regexp.MustCompile(`(?i)(?:year\s*to\s*date|ytd)[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	sb7DayPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*["″]\s*7\s*day`)
	sbBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:summit|base)[:\s]\s*(\d+(?:\.\d+)?)\s*["″]`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*["″]\s*(?:at\s+)?(?:summit|base)`),
	}
)

func (a *SugarBowl) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	open, scheduled, total := a.countLiftStatuses(doc)
	if total > 0 {
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsScheduled = resort.Int(scheduled)
		ops.LiftsTotal = resort.Int(total)
	}

	text := pageText(doc)

	if ops.LiftsTotal == nil {
		if m := sbLiftsPattern.FindStringSubmatch(text); m != nil {
			o, _ := strconv.Atoi(m[1])
			t, _ := strconv.Atoi(m[2])
			ops.LiftsOpen = resort.Int(o)
			ops.LiftsTotal = resort.Int(t)
		}
	}

	if m := sbTrailsPattern.FindStringSubmatch(text); m != nil {
		o, _ := strconv.Atoi(m[1])
		t, _ := strconv.Atoi(m[2])
		ops.TrailsOpen = resort.Int(o)
		ops.TrailsTotal = resort.Int(t)
	}

	snow.NewSnow24hIn = findFloat(text, sbSnow24Patterns...)
	snow.SeasonTotalIn = findFloat(text, sbSeasonPatterns...)
	snow.NewSnow48hIn = findFloat(text, sb7DayPattern)
	snow.BaseDepthIn = findFloat(text, sbBasePatterns...)

	switch {
	case strings.Contains(strings.ToLower(text), "mountain status open"):
		ops.OpenFlag = resort.Bool(true)
	case ops.LiftsAvailable() > 0:
		ops.OpenFlag = resort.Bool(true)
	case ops.LiftsOpen != nil || ops.LiftsScheduled != nil:
		ops.OpenFlag = resort.Bool(false)
	}

	return result, nil
}

// countLiftStatuses scans for each known lift name with its status on the
// next line of the rendered text.
func (a *SugarBowl) countLiftStatuses(doc *goquery.Document) (open, scheduled, total int) {
	text := doc.Text()

	for _, name := range sugarBowlLifts {
		p := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[^\n]*\n[^\n]*(Open|Scheduled|Closed)`)
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		total++
		switch strings.ToLower(m[1]) {
		case "open":
			open++
		case "scheduled":
			scheduled++
		}
	}
	return open, scheduled, total
}
