package adapters

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// VailResorts parses the terrain-and-lift-status pages shared by the Vail
// properties (Heavenly, Northstar, Kirkwood). Snow data lives in an
// embedded FR.snowReportData JSON blob and terrain counts in
// FR.TerrainStatusFeed; the visible text is the fallback for both.
type VailResorts struct {
	kind string
}

func (a *VailResorts) Kind() string    { return a.kind }
func (a *VailResorts) Available() bool { return true }

var (
	vailSnowReportPattern    = regexp.MustCompile(`(?s)FR\.snowReportData\s*=\s*(\{[^;]+\});`)
	vailTerrainFeedPattern   = regexp.MustCompile(`(?s)FR\.TerrainStatusFeed\s*=\s*(\{[^;]+\});`)
	vailTrailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	vailInchesPattern        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*inch`)

	vailLiftsTextPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?(?:\s*open)?`)
	vailTrailsTextPattern = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)(?:\s*open)?`)

	vailSnow24Pattern = regexp.MustCompile(`(?i)24\s*(?:hr|hour)s?[:\s]\s*(\d+(?:\.\d+)?)`)
	vailSnow48Pattern = regexp.MustCompile(`(?i)48\s*(?:hr|hour)s?[:\s]\s*(\d+(?:\.\d+)?)`)
	vailBasePattern   = regexp.MustCompile(`(?i)base[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	vailSeasonPattern = regexp.MustCompile(`(?i)season[:\s]\s*(\d+(?:\.\d+)?)`)
)

// terrainFeed mirrors the parts of FR.TerrainStatusFeed we read. Lift
// Status is 0 Closed, 1 Open, 2 On-Hold, 3 Scheduled, numeric or string.
type terrainFeed struct {
	Lifts []struct {
		Status json.RawMessage `json:"Status"`
	} `json:"Lifts"`
	GroomingAreas []struct {
		Trails []struct {
			IsOpen bool `json:"IsOpen"`
		} `json:"Trails"`
	} `json:"GroomingAreas"`
}

// snowReport mirrors FR.snowReportData. Measurements arrive either as
// {"Inches": "5", "Centimeters": "12"} or as strings like "5 inches".
type snowReport struct {
	TwentyFourHourSnowfall json.RawMessage `json:"TwentyFourHourSnowfall"`
	OvernightSnowfall      json.RawMessage `json:"OvernightSnowfall"`
	FortyEightHourSnowfall json.RawMessage `json:"FortyEightHourSnowfall"`
	BaseDepth              json.RawMessage `json:"BaseDepth"`
	CurrentSeason          json.RawMessage `json:"CurrentSeason"`
}

func (a *VailResorts) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	text := pageText(doc)

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	feed := extractTerrainFeed(content)
	if feed != nil && len(feed.Lifts) > 0 {
		open, scheduled, total := countVailLifts(feed)
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsScheduled = resort.Int(scheduled)
		ops.LiftsTotal = resort.Int(total)
	} else if m := vailLiftsTextPattern.FindStringSubmatch(text); m != nil {
		o, _ := strconv.Atoi(m[1])
		t, _ := strconv.Atoi(m[2])
		ops.LiftsOpen = resort.Int(o)
		ops.LiftsTotal = resort.Int(t)
	}

	if feed != nil {
		if open, total, ok := countVailTrails(feed); ok {
			ops.TrailsOpen = resort.Int(open)
			ops.TrailsTotal = resort.Int(total)
		}
	}
	if ops.TrailsTotal == nil {
		if m := vailTrailsTextPattern.FindStringSubmatch(text); m != nil {
			o, _ := strconv.Atoi(m[1])
			t, _ := strconv.Atoi(m[2])
			ops.TrailsOpen = resort.Int(o)
			ops.TrailsTotal = resort.Int(t)
		}
	}

	if report := extractSnowReport(content); report != nil {
		parseVailSnowReport(report, snow)
	} else {
		snow.NewSnow24hIn = findFloat(text, vailSnow24Pattern)
		snow.NewSnow48hIn = findFloat(text, vailSnow48Pattern)
		snow.BaseDepthIn = findFloat(text, vailBasePattern)
		snow.SeasonTotalIn = findFloat(text, vailSeasonPattern)
	}

	switch {
	case ops.LiftsAvailable() > 0 || ops.TrailsAvailable() > 0:
		ops.OpenFlag = resort.Bool(true)
	case ops.LiftsOpen != nil || ops.LiftsScheduled != nil:
		ops.OpenFlag = resort.Bool(false)
	}

	return result, nil
}

func extractTerrainFeed(html string) *terrainFeed {
	m := vailTerrainFeedPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var feed terrainFeed
	if err := json.Unmarshal(stripTrailingCommas(m[1]), &feed); err != nil {
		return nil
	}
	return &feed
}

func extractSnowReport(html string) *snowReport {
	m := vailSnowReportPattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	var report snowReport
	if err := json.Unmarshal(stripTrailingCommas(m[1]), &report); err != nil {
		return nil
	}
	return &report
}

// stripTrailingCommas makes the JS object literal valid JSON.
func stripTrailingCommas(jsObject string) []byte {
	return []byte(vailTrailingCommaPattern.ReplaceAllString(jsObject, "$1"))
}

func countVailLifts(feed *terrainFeed) (open, scheduled, total int) {
	for _, lift := range feed.Lifts {
		total++

		var numeric int
		if err := json.Unmarshal(lift.Status, &numeric); err == nil {
			switch numeric {
			case 1:
				open++
			case 3:
				scheduled++
			}
			continue
		}

		var status string
		if err := json.Unmarshal(lift.Status, &status); err == nil {
			switch strings.ToLower(status) {
			case "open":
				open++
			case "scheduled":
				scheduled++
			}
		}
	}
	return open, scheduled, total
}

func countVailTrails(feed *terrainFeed) (open, total int, ok bool) {
	for _, area := range feed.GroomingAreas {
		for _, trail := range area.Trails {
			total++
			if trail.IsOpen {
				open++
			}
		}
	}
	return open, total, total > 0
}

// parseVailSnowReport extracts snow values from the report blob.
func parseVailSnowReport(report *snowReport, snow *resort.Snow) {
	snow.NewSnow24hIn = vailInches(report.TwentyFourHourSnowfall)
	if snow.NewSnow24hIn == nil {
		snow.NewSnow24hIn = vailInches(report.OvernightSnowfall)
	}
	snow.NewSnow48hIn = vailInches(report.FortyEightHourSnowfall)
	snow.BaseDepthIn = vailInches(report.BaseDepth)
	snow.SeasonTotalIn = vailInches(report.CurrentSeason)
}

// vailInches decodes a measurement that is either a {"Inches": "5"} object
// or a "5 inches" string.
func vailInches(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var obj struct {
		Inches string `json:"Inches"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Inches != "" {
		if v, err := strconv.ParseFloat(obj.Inches, 64); err == nil {
			return &v
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if m := vailInchesPattern.FindStringSubmatch(s); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			return &v
		}
	}
	return nil
}
