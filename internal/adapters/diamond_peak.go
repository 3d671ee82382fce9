package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// DiamondPeak parses Diamond Peak's conditions page. The page uses
// structured CSS classes:
//
//	conditions__row--header                    lift rows
//	conditions__row--open, --groomed           open trails
//	conditions__row--closed                    closed items
//	conditions__status                         status text
type DiamondPeak struct {
	kind string
}

func (a *DiamondPeak) Kind() string    { return a.kind }
func (a *DiamondPeak) Available() bool { return true }

var (
	dpSnow24Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*24\s*h`),
		regexp.MustCompile(`(?i)24\s*h(?:our)?s?[:\s]\s*(\d+)`),
	}
	dpOvernightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*overnight`),
		regexp.MustCompile(`(?i)overnight[:\s]\s*(\d+)`),
	}
	dpBasePattern   = regexp.MustCompile(`(?i)base[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpPeakPattern   = regexp.MustCompile(`(?i)peak[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpSeasonPattern = regexp.MustCompile(`(?i)season[:\s]\s*(\d+)\s*(?:inches?|")`)
	dpStormPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)storm\s*(?:total)?[:\s]\s*(\d+)\s*(?:inches?|")`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:inches?|")\s*storm\s*(?:total)?`),
	}
)

func (a *DiamondPeak) Parse(content string) (*Result, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	result := &Result{}
	a.parseLifts(doc, &result.Ops)
	a.parseTrails(doc, &result.Ops)

	text := pageText(doc)
	a.parseSnow(text, &result.Snow)

	switch {
	case result.Ops.LiftsOpen != nil:
		result.Ops.OpenFlag = resort.Bool(*result.Ops.LiftsOpen > 0)
	case strings.Contains(strings.ToLower(text), "mountain closed"),
		strings.Contains(strings.ToLower(text), "closed for season"):
		result.Ops.OpenFlag = resort.Bool(false)
	case strings.Contains(strings.ToLower(text), "open"):
		result.Ops.OpenFlag = resort.Bool(true)
	}

	return result, nil
}

// parseLifts counts header rows whose label looks like a lift.
func (a *DiamondPeak) parseLifts(doc *goquery.Document, ops *resort.Ops) {
	open, total := 0, 0

	doc.Find(".conditions__row--header").Each(func(_ int, row *goquery.Selection) {
		label := CleanText(row.Find(".conditions__label").Text())
		status := strings.ToLower(CleanText(row.Find(".conditions__status").Text()))
		if label == "" || status == "" {
			return
		}
		if !containsAny(label, "Lift", "Chair", "Powerline", "Express") {
			return
		}
		total++
		if status == "open" || status == "groomed" {
			open++
		}
	})

	if total > 0 {
		ops.LiftsOpen = resort.Int(open)
		ops.LiftsTotal = resort.Int(total)
	}
}

// parseTrails counts non-header rows carrying open/groomed/closed classes.
func (a *DiamondPeak) parseTrails(doc *goquery.Document, ops *resort.Ops) {
	open, total := 0, 0

	doc.Find(".conditions__row--open, .conditions__row--groomed, .conditions__row--closed").
		Each(func(_ int, row *goquery.Selection) {
			if row.HasClass("conditions__row--header") {
				return
			}
			// Terrain park items are labeled "Village"; skip them.
			if strings.Contains(row.Find(".conditions__label").Text(), "Village") {
				return
			}
			total++
			if row.HasClass("conditions__row--open") || row.HasClass("conditions__row--groomed") {
				open++
			}
		})

	if total > 0 {
		ops.TrailsOpen = resort.Int(open)
		ops.TrailsTotal = resort.Int(total)
	}
}

func (a *DiamondPeak) parseSnow(text string, snow *resort.Snow) {
	snow.NewSnow24hIn = findFloat(text, dpSnow24Patterns...)
	if snow.NewSnow24hIn == nil {
		snow.NewSnow24hIn = findFloat(text, dpOvernightPatterns...)
	}

	snow.BaseDepthIn = findFloat(text, dpBasePattern)
	if snow.BaseDepthIn == nil {
		snow.BaseDepthIn = findFloat(text, dpPeakPattern)
	}

	snow.SeasonTotalIn = findFloat(text, dpSeasonPattern)
	snow.NewSnow48hIn = findFloat(text, dpStormPatterns...)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
