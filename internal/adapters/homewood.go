package adapters

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Homewood parses Homewood Mountain Resort's snow report page. "Open
// Lifts" and "Open Runs" headings are followed by X/Y counts.
type Homewood struct {
	kind string
}

func (a *Homewood) Kind() string    { return a.kind }
func (a *Homewood) Available() bool { return true }

var (
	hwLiftsPattern   = regexp.MustCompile(`(?i)open\s+lifts[^0-9]*(\d+)\s*/\s*(\d+)`)
	hwRunsPattern    = regexp.MustCompile(`(?i)open\s+runs[^0-9]*(\d+)\s*/\s*(\d+)`)
	hwBasePattern    = regexp.MustCompile(`(?i)(?:base|summit)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	hwSeasonPattern  = regexp.MustCompile(`(?i)season\s*(?:total)?[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
	hwNewSnowPattern = regexp.MustCompile(`(?i)(?:24\s*(?:hr|hour)|overnight)[:\s]\s*(\d+(?:\.\d+)?)\s*(?:in|")`)
)

func (a *Homewood) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	text := pageText(doc)

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	if m := hwLiftsPattern.FindStringSubmatch(text); m != nil {
		o, _ := strconv.Atoi(m[1])
		t, _ := strconv.Atoi(m[2])
		ops.LiftsOpen = resort.Int(o)
		ops.LiftsTotal = resort.Int(t)
	}
	if m := hwRunsPattern.FindStringSubmatch(text); m != nil {
		o, _ := strconv.Atoi(m[1])
		t, _ := strconv.Atoi(m[2])
		ops.TrailsOpen = resort.Int(o)
		ops.TrailsTotal = resort.Int(t)
	}

	snow.BaseDepthIn = findFloat(text, hwBasePattern)
	snow.SeasonTotalIn = findFloat(text, hwSeasonPattern)
	snow.NewSnow24hIn = findFloat(text, hwNewSnowPattern)

	switch {
	case ops.LiftsOpen != nil:
		ops.OpenFlag = resort.Bool(*ops.LiftsOpen > 0)
	case ops.TrailsOpen != nil:
		ops.OpenFlag = resort.Bool(*ops.TrailsOpen > 0)
	}

	return result, nil
}
