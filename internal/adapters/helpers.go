package adapters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Shared text-extraction helpers. Resort pages express the same facts in
// wildly different ways ("5/10", "5 of 10", `6-8"`), so adapters lean on
// these instead of re-rolling the patterns.

var (
	fractionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*/\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s+out\s+of\s+(\d+)`),
	}

	inchRangePattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)`)
	inchSinglePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:"|″|in|inches?)?`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ParseFraction parses counts like "5/10", "5 of 10" or "5 out of 10".
func ParseFraction(text string) (open, total int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, false
	}

	for _, p := range fractionPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			open, _ = strconv.Atoi(m[1])
			total, _ = strconv.Atoi(m[2])
			return open, total, true
		}
	}
	return 0, 0, false
}

// ParseInches parses measurements like `6"`, "6 in", "6 inches". Ranges
// like `6-8"` yield the average.
func ParseInches(text string) *float64 {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if m := inchRangePattern.FindStringSubmatch(text); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		avg := (low + high) / 2
		return &avg
	}

	if m := inchSinglePattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return &v
	}

	return nil
}

// ParseOpenStatus interprets open/closed status text. Negative phrases are
// checked first since "not open" contains "open".
func ParseOpenStatus(text string) *bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for _, phrase := range []string{"not operating", "closed", "not open"} {
		if strings.Contains(text, phrase) {
			f := false
			return &f
		}
	}
	for _, word := range []string{"open", "yes", "operating"} {
		if strings.Contains(text, word) {
			t := true
			return &t
		}
	}
	return nil
}

// CleanText collapses all whitespace runs to single spaces.
func CleanText(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// pageText extracts whitespace-normalized visible text from a parsed page,
// with script/style content stripped.
func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return CleanText(doc.Text())
}

// parseDocument parses raw HTML into a goquery document.
func parseDocument(content string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(content))
}

// findFloat returns the first capture group of the first pattern that
// matches, as a float.
func findFloat(text string, patterns ...*regexp.Regexp) *float64 {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			for _, g := range m[1:] {
				if g == "" {
					continue
				}
				if v, err := strconv.ParseFloat(g, 64); err == nil {
					return &v
				}
			}
		}
	}
	return nil
}

// findRangeAvg matches a pattern whose first group is required and second
// group optional; two groups average, one passes through. Used for values
// published as ranges like `47-58"`.
func findRangeAvg(text string, p *regexp.Regexp) *float64 {
	m := p.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if len(m) > 2 && m[2] != "" {
		high, err := strconv.ParseFloat(m[2], 64)
		if err == nil {
			avg := (low + high) / 2
			return &avg
		}
	}
	return &low
}
