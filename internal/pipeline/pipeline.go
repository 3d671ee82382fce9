// Package pipeline orchestrates one update cycle: fetch and parse every
// enabled resort, attach weather, fall back to last-known-good data on
// failure, and write all artifacts.
package pipeline

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/tahoe-conditions/internal/adapters"
	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
	"github.com/pfrederiksen/tahoe-conditions/internal/registry"
	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
	"github.com/pfrederiksen/tahoe-conditions/internal/summary"
	"github.com/pfrederiksen/tahoe-conditions/internal/weather"
)

// PageFetcher fetches resort conditions pages. Satisfied by *fetch.Client.
type PageFetcher interface {
	FetchPage(url string) (string, error)
}

// WeatherSource looks up current forecasts. Satisfied by *weather.Client.
type WeatherSource interface {
	Current(lat, lon float64) (*weather.Forecast, error)
}

// Store loads previous records and writes artifacts. Satisfied by
// *output.Writer.
type Store interface {
	LoadResort(slug string) *resort.Conditions
	WriteAll(resorts []*resort.Conditions, summary *resort.Summary) error
}

// Pipeline processes all resorts sequentially. One resort's failure never
// aborts the run; only registry and output-write problems are fatal.
type Pipeline struct {
	resorts []registry.Resort
	fetcher PageFetcher
	weather WeatherSource
	store   Store
}

// New creates a Pipeline over the given enabled resorts.
func New(resorts []registry.Resort, fetcher PageFetcher, weatherSource WeatherSource, store Store) *Pipeline {
	return &Pipeline{
		resorts: resorts,
		fetcher: fetcher,
		weather: weatherSource,
		store:   store,
	}
}

// Report summarizes one completed run.
type Report struct {
	StartedAt time.Time            `json:"started_at"`
	Duration  time.Duration        `json:"-"`
	Resorts   []*resort.Conditions `json:"resorts"`
	Summary   *resort.Summary      `json:"summary"`
	Fresh     int                  `json:"fresh"`
	Stale     int                  `json:"stale"`
}

// Run executes one update cycle.
func (p *Pipeline) Run() (*Report, error) {
	if len(p.resorts) == 0 {
		return nil, fmt.Errorf("no enabled resorts in registry")
	}

	start := time.Now()
	logger.Info("Starting conditions update", logger.Fields{"resorts": len(p.resorts)})

	records := make([]*resort.Conditions, 0, len(p.resorts))
	for _, rc := range p.resorts {
		records = append(records, p.processResort(rc))
	}

	sum := summary.Generate(records)

	if err := p.store.WriteAll(records, sum); err != nil {
		return nil, fmt.Errorf("writing outputs: %w", err)
	}

	report := &Report{
		StartedAt: start.UTC(),
		Duration:  time.Since(start),
		Resorts:   records,
		Summary:   sum,
	}
	for _, c := range records {
		if c.Stale {
			report.Stale++
		} else {
			report.Fresh++
		}
	}

	logger.Info("Update complete", logger.Fields{
		"open":   sum.Counts.OpenResorts,
		"closed": sum.Counts.ClosedResorts,
		"stale":  sum.Counts.StaleResorts,
	})

	return report, nil
}

// processResort builds the record for one resort: fresh ops/snow when the
// fetch+parse succeeds, last-known-good or a null skeleton otherwise.
// Weather is attached independently and never affects staleness.
func (p *Pipeline) processResort(rc registry.Resort) *resort.Conditions {
	logger.Debug("Processing resort", logger.Fields{"slug": rc.Slug, "kind": rc.Kind})

	c := &resort.Conditions{
		Slug:         rc.Slug,
		Name:         rc.Name,
		FetchedAtUTC: time.Now().UTC(),
		Sources:      resort.Sources{OpsURL: rc.SourceURL},
	}

	result, err := p.fetchAndParse(rc)

	p.attachWeather(c, rc)

	if err == nil {
		c.Ops = result.Ops
		c.Snow = result.Snow
		logger.IncrCounter("resorts.fresh")
		logger.Info("Resort parsed", logger.Fields{
			"slug":  rc.Slug,
			"lifts": c.Ops.LiftsAvailable(),
		})
		return c
	}

	logger.Warn("Fetch/parse failed, using fallback", logger.Fields{
		"slug":  rc.Slug,
		"error": err.Error(),
	})
	c.Stale = true

	prev := p.store.LoadResort(rc.Slug)
	if prev == nil {
		// Never seen this resort before: emit a null-field skeleton so
		// downstream consumers still see the entry.
		logger.IncrCounter("resorts.skeleton")
		return c
	}

	c.Ops = prev.Ops
	c.Snow = prev.Snow
	// Keep the old timestamp so consumers can compute data age; stale=true
	// is the signal that this cycle failed.
	c.FetchedAtUTC = prev.FetchedAtUTC
	if c.Weather.Empty() {
		c.Weather = prev.Weather
	}

	logger.IncrCounter("resorts.stale")
	logger.Info("Substituted last-known-good record", logger.Fields{
		"slug": rc.Slug,
		"from": prev.FetchedAtUTC.Format(time.RFC3339),
	})
	return c
}

func (p *Pipeline) fetchAndParse(rc registry.Resort) (*adapters.Result, error) {
	adapter := adapters.ForKind(rc.Kind)

	if !adapter.Available() {
		// Placeholder kinds short-circuit without a network fetch.
		return nil, fmt.Errorf("adapter %q not available", adapter.Kind())
	}

	page, err := p.fetcher.FetchPage(rc.SourceURL)
	if err != nil {
		return nil, err
	}
	return adapter.Parse(page)
}

// attachWeather adds the current forecast and source URLs. Weather
// failures degrade to null weather fields only.
func (p *Pipeline) attachWeather(c *resort.Conditions, rc registry.Resort) {
	fc, err := p.weather.Current(rc.Lat, rc.Lon)
	if fc != nil {
		if fc.PointsURL != "" {
			c.Sources.WeatherPointsURL = resort.String(fc.PointsURL)
		}
		c.Sources.WeatherForecastURL = fc.ForecastURL
	}
	if err != nil {
		logger.Warn("Weather lookup failed", logger.Fields{
			"slug":  rc.Slug,
			"error": err.Error(),
		})
		return
	}
	if fc != nil {
		c.Weather = fc.Weather
	}
}
