// Package summary derives the homepage summary artifact from a run's
// records: status counts, rule-based highlights, and a short blurb per
// resort.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Highlight thresholds: wind and cold only make the list when notable.
const (
	windyThresholdMph = 15.0
	coldThresholdF    = 32.0
)

// Generate builds the complete summary for a run.
func Generate(records []*resort.Conditions) *resort.Summary {
	s := &resort.Summary{
		LastUpdatedUTC: time.Now().UTC(),
		Blurbs:         make(map[string]string, len(records)),
	}

	for _, c := range records {
		s.Blurbs[c.Slug] = Blurb(c)

		switch {
		case c.Stale:
			s.Counts.StaleResorts++
		case c.Ops.OpenFlag != nil && *c.Ops.OpenFlag:
			s.Counts.OpenResorts++
		default:
			s.Counts.ClosedResorts++
		}
	}

	s.Highlights = highlights(records)
	return s
}

// Blurb builds a one-sentence human-readable summary for one resort.
// Scheduled lifts and trails count toward the displayed open numbers.
func Blurb(c *resort.Conditions) string {
	if c.Stale {
		return fmt.Sprintf(
			"Latest update unavailable; showing last known conditions from %s UTC.",
			c.FetchedAtUTC.Format("2006-01-02 15:04"))
	}

	parts := []string{c.Name + ":"}

	if c.Ops.LiftsTotal != nil {
		parts = append(parts, fmt.Sprintf("%d/%d lifts", c.Ops.LiftsAvailable(), *c.Ops.LiftsTotal))
	}
	if c.Ops.TrailsTotal != nil {
		parts = append(parts, fmt.Sprintf("%d/%d trails.", c.Ops.TrailsAvailable(), *c.Ops.TrailsTotal))
	} else if c.Ops.LiftsTotal != nil {
		parts[len(parts)-1] += "."
	}

	if c.Snow.NewSnow24hIn != nil {
		parts = append(parts, fmt.Sprintf("New snow (24h): %.0f\".", *c.Snow.NewSnow24hIn))
	} else if c.Snow.BaseDepthIn != nil {
		parts = append(parts, fmt.Sprintf("Base: %.0f\".", *c.Snow.BaseDepthIn))
	}

	var weather []string
	if c.Weather.ShortForecast != nil {
		weather = append(weather, *c.Weather.ShortForecast)
	}
	if c.Weather.TempF != nil {
		weather = append(weather, fmt.Sprintf("%.0f°F", *c.Weather.TempF))
	}
	if c.Weather.WindMph != nil {
		weather = append(weather, fmt.Sprintf("wind %.0f mph", *c.Weather.WindMph))
	}
	if len(weather) > 0 {
		parts = append(parts, "Forecast: "+strings.Join(weather, ", ")+".")
	}

	return strings.Join(parts, " ")
}

func highlights(records []*resort.Conditions) []string {
	// Only fresh, open resorts compete for highlights.
	var active []*resort.Conditions
	for _, c := range records {
		if !c.Stale && c.Ops.OpenFlag != nil && *c.Ops.OpenFlag {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		return []string{"All resorts are currently closed or unavailable."}
	}

	var out []string

	if best := mostOpenTerrain(active); best != nil {
		pct := float64(*best.Ops.TrailsOpen) / float64(*best.Ops.TrailsTotal) * 100
		out = append(out, fmt.Sprintf("Most open terrain: %s (%d/%d trails, %.0f%%)",
			best.Name, *best.Ops.TrailsOpen, *best.Ops.TrailsTotal, pct))
	}

	if best := mostNewSnow(active); best != nil {
		out = append(out, fmt.Sprintf("Most new snow: %s (%.0f\" in 24h)",
			best.Name, *best.Snow.NewSnow24hIn))
	}

	if windiest := maxBy(active, func(c *resort.Conditions) *float64 { return c.Weather.WindMph }); windiest != nil {
		if *windiest.Weather.WindMph >= windyThresholdMph {
			out = append(out, fmt.Sprintf("Windiest: %s (%.0f mph)",
				windiest.Name, *windiest.Weather.WindMph))
		}
	}

	if coldest := minBy(active, func(c *resort.Conditions) *float64 { return c.Weather.TempF }); coldest != nil {
		if *coldest.Weather.TempF <= coldThresholdF {
			out = append(out, fmt.Sprintf("Coldest: %s (%.0f°F)",
				coldest.Name, *coldest.Weather.TempF))
		}
	}

	return out
}

// mostOpenTerrain finds the active resort with the highest open-trails
// ratio among those reporting both counts.
func mostOpenTerrain(active []*resort.Conditions) *resort.Conditions {
	var best *resort.Conditions
	var bestRatio float64

	for _, c := range active {
		if c.Ops.TrailsOpen == nil || c.Ops.TrailsTotal == nil ||
			*c.Ops.TrailsOpen == 0 || *c.Ops.TrailsTotal == 0 {
			continue
		}
		ratio := float64(*c.Ops.TrailsOpen) / float64(*c.Ops.TrailsTotal)
		if best == nil || ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	return best
}

func mostNewSnow(active []*resort.Conditions) *resort.Conditions {
	var best *resort.Conditions
	for _, c := range active {
		if c.Snow.NewSnow24hIn == nil || *c.Snow.NewSnow24hIn <= 0 {
			continue
		}
		if best == nil || *c.Snow.NewSnow24hIn > *best.Snow.NewSnow24hIn {
			best = c
		}
	}
	return best
}

func maxBy(records []*resort.Conditions, value func(*resort.Conditions) *float64) *resort.Conditions {
	var best *resort.Conditions
	for _, c := range records {
		v := value(c)
		if v == nil {
			continue
		}
		if best == nil || *v > *value(best) {
			best = c
		}
	}
	return best
}

func minBy(records []*resort.Conditions, value func(*resort.Conditions) *float64) *resort.Conditions {
	var best *resort.Conditions
	for _, c := range records {
		v := value(c)
		if v == nil {
			continue
		}
		if best == nil || *v < *value(best) {
			best = c
		}
	}
	return best
}
