package adapters

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// SierraAtTahoe parses Sierra-at-Tahoe's server-rendered conditions page.
// Patterns look like "10/14 Lifts Open", "41/50 Runs Open" and
// `60" (summit), 35" (base)`.
type SierraAtTahoe struct {
	kind string
}

func (a *SierraAtTahoe) Kind() string    { return a.kind }
func (a *SierraAtTahoe) Available() bool { return true }

var (
	satLiftsPattern = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*lifts?\s*open|lifts?\s*open[:\s]\s*(\d+)\s*/\s*(\d+)`)
	satRunsPattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*runs?\s*open|runs?\s*open[:\s]\s*(\d+)\s*/\s*(\d+)`)

	satSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)24[- ]?hour[:\s]\s*(\d+(?:\.\d+)?)["']?\s*(?:in|inches?)?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)["']\s*(?:in\s+)?24[- ]?hour`),
		regexp.MustCompile(`(?i)last\s*24\s*hours?[:\s]\s*(\d+(?:\.\d+)?)`),
	}
	satBasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)base\s*depth[:\s]\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+)["']\s*\(summit\)`),
		regexp.MustCompile(`(?i)base[:\s]\s*(\d+)["']`),
	}
	satSeasonPattern = regexp.MustCompile(`(?i)ytd[:\s]\s*(\d+)|season\s*total[:\s]\s*(\d+)`)
)

func (a *SierraAtTahoe) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	text := pageText(doc)

	result := &Result{}
	ops := &result.Ops
	snow := &result.Snow

	if open, total, ok := matchEitherOrder(satLiftsPattern, text); ok {
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsTotal = resort.Int(total)
	}
	if open, total, ok := matchEitherOrder(satRunsPattern, text); ok {
		ops.TrailsOpen = resort.Int(open)
		ops.TrailsTotal = resort.Int(total)
	}

	snow.NewSnow24hIn = findFloat(text, satSnow24Patterns...)
	snow.BaseDepthIn = findFloat(text, satBasePatterns...)
	snow.SeasonTotalIn = findFloat(text, satSeasonPattern)

	ops.OpenFlag = resort.Bool(ops.LiftsOpen != nil && *ops.LiftsOpen > 0)

	return result, nil
}

// matchEitherOrder handles patterns with two alternations: "X/Y Lifts Open"
// (groups 1,2) or "Lifts Open: X/Y" (groups 3,4).
func matchEitherOrder(p *regexp.Regexp, text string) (int, int, bool) {
	m := p.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	if m[1] != "" {
		open, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		return open, total, true
	}
	open, _ := strconv.Atoi(m[3])
	total, _ := strconv.Atoi(m[4])
	return open, total, true
}
