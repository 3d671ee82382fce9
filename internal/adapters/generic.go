package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Generic scans whole-page text for common condition patterns. It works on
// simpler server-rendered pages and is the fallback for unknown kinds; it
// may miss data on JS-heavy sites.
type Generic struct {
	kind string
}

func (a *Generic) Kind() string {
	if a.kind == "" {
		return "generic"
	}
	return a.kind
}

func (a *Generic) Available() bool { return true }

var (
	genericLiftPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?`),
		regexp.MustCompile(`(?i)lifts?\s*[:\s]\s*(\d+)\s*/\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)\s+lifts?`),
		regexp.MustCompile(`(?i)lifts?\s+open[:\s]\s*(\d+)\s*/\s*(\d+)`),
	}

	genericTrailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(?:trails?|runs?)`),
		regexp.MustCompile(`(?i)(?:trails?|runs?)\s*[:\s]\s*(\d+)\s*/\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)\s+(?:trails?|runs?)`),
	}

	genericBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]\s*(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)base\s*(?:depth)?[:\s]\s*(\d+(?:\.\d+)?)["″]?\s*(?:in|inches?)?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)["″]?\s*base`),
	}

	genericSeasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)season\s*total[:\s]\s*(\d+(?:\.\d+)?)["″]?\s*(?:in|inches?)?`),
		regexp.MustCompile(`(?i)ytd[:\s]\s*(\d+(?:\.\d+)?)["″]?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)["″]?\s*(?:in|inches?)?\s*season`),
	}

	genericSurfacePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)surface[:\s]\s+([A-Za-z][A-Za-z\s,]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)conditions?[:\s]\s+([A-Za-z][A-Za-z\s,]*?)(?:\.|$)`),
	}
)

func (a *Generic) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	text := pageText(doc)

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	if open, total, ok := findCounts(text, genericLiftPatterns); ok {
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsTotal = resort.Int(total)
	}
	if open, total, ok := findCounts(text, genericTrailPatterns); ok {
		ops.TrailsOpen = resort.Int(open)
		ops.TrailsTotal = resort.Int(total)
	}

	ops.OpenFlag = genericOpenFlag(strings.ToLower(text), ops)

	snow.NewSnow24hIn = findNewSnow(text, "24")
	snow.NewSnow48hIn = findNewSnow(text, "48")
	snow.BaseDepthIn = findRangeAvg(text, genericBasePatterns[0])
	if snow.BaseDepthIn == nil {
		snow.BaseDepthIn = findFloat(text, genericBasePatterns[1:]...)
	}
	snow.SeasonTotalIn = findFloat(text, genericSeasonPatterns...)
	snow.Surface = findSurface(text)

	// Consider the parse a success only if something meaningful came out.
	if ops.LiftsOpen == nil && snow.NewSnow24hIn == nil {
		return nil, fmt.Errorf("could not extract meaningful data")
	}
	return result, nil
}

func findCounts(text string, patterns []*regexp.Regexp) (int, int, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			open, _ := strconv.Atoi(m[1])
			total, _ := strconv.Atoi(m[2])
			return open, total, true
		}
	}
	return 0, 0, false
}

func genericOpenFlag(textLower string, ops *resort.Ops) *bool {
	if strings.Contains(textLower, "resort closed") || strings.Contains(textLower, "mountain closed") {
		return resort.Bool(false)
	}
	if strings.Contains(textLower, "resort open") || strings.Contains(textLower, "mountain open") {
		return resort.Bool(true)
	}
	if ops.LiftsOpen != nil {
		return resort.Bool(*ops.LiftsOpen > 0)
	}
	return nil
}

func findNewSnow(text, hours string) *float64 {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`(?i)(\d+(?:\.\d+)?)["″]\s*(?:in\s+)?(?:last\s+)?%s\s*(?:hr|hour)`, hours)),
		regexp.MustCompile(fmt.Sprintf(`(?i)%s\s*(?:hr|hour)s?\s*[:\s]\s*(\d+(?:\.\d+)?)["″]?`, hours)),
		regexp.MustCompile(fmt.Sprintf(`(?i)new\s+snow\s*\(?%sh?\)?\s*[:\s]\s*(\d+(?:\.\d+)?)`, hours)),
		regexp.MustCompile(fmt.Sprintf(`(?i)(\d+(?:\.\d+)?)\s*(?:in|inches?|")\s*(?:in\s+)?%s\s*(?:hr|hour)`, hours)),
	}
	return findFloat(text, patterns...)
}

func findSurface(text string) *string {
	for _, p := range genericSurfacePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			surface := CleanText(m[1])
			if surface != "" && len(surface) < 50 {
				return &surface
			}
		}
	}
	return nil
}
