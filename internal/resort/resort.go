// Package resort defines the normalized conditions record shared by the
// adapters, the weather client, and the output writer.
//
// Every field that a source may fail to report is a pointer: nil means
// "unknown", which serializes as JSON null so downstream consumers can tell
// missing data apart from zero.
package resort

import "time"

// Sources records the URLs used to build a record.
type Sources struct {
	OpsURL             string  `json:"ops_url"`
	WeatherPointsURL   *string `json:"weather_points_url"`
	WeatherForecastURL *string `json:"weather_forecast_url"`
}

// Ops holds lift and trail operations status.
type Ops struct {
	OpenFlag        *bool `json:"open_flag"`
	LiftsOpen       *int  `json:"lifts_open"`
	LiftsScheduled  *int  `json:"lifts_scheduled"`
	LiftsTotal      *int  `json:"lifts_total"`
	TrailsOpen      *int  `json:"trails_open"`
	TrailsScheduled *int  `json:"trails_scheduled"`
	TrailsTotal     *int  `json:"trails_total"`
}

// LiftsAvailable counts lifts that are running or scheduled to run today.
func (o Ops) LiftsAvailable() int {
	n := 0
	if o.LiftsOpen != nil {
		n += *o.LiftsOpen
	}
	if o.LiftsScheduled != nil {
		n += *o.LiftsScheduled
	}
	return n
}

// TrailsAvailable counts trails that are open or scheduled to open today.
func (o Ops) TrailsAvailable() int {
	n := 0
	if o.TrailsOpen != nil {
		n += *o.TrailsOpen
	}
	if o.TrailsScheduled != nil {
		n += *o.TrailsScheduled
	}
	return n
}

// Snow holds snow conditions.
type Snow struct {
	NewSnow24hIn    *float64   `json:"new_snow_24h_in"`
	NewSnow48hIn    *float64   `json:"new_snow_48h_in"`
	BaseDepthIn     *float64   `json:"base_depth_in"`
	SeasonTotalIn   *float64   `json:"season_total_in"`
	Surface         *string    `json:"surface"`
	ReportUpdatedAt *time.Time `json:"report_updated_at"`
}

// Weather holds the current NWS forecast period.
type Weather struct {
	TempF              *float64 `json:"temp_f"`
	WindMph            *float64 `json:"wind_mph"`
	WindGustMph        *float64 `json:"wind_gust_mph"`
	ShortForecast      *string  `json:"short_forecast"`
	ForecastPeriodName *string  `json:"forecast_period_name"`
}

// Empty reports whether no weather field was populated.
func (w Weather) Empty() bool {
	return w.TempF == nil && w.WindMph == nil && w.WindGustMph == nil &&
		w.ShortForecast == nil && w.ForecastPeriodName == nil
}

// Conditions is the complete per-resort record written to disk.
//
// Slug, Name and FetchedAtUTC are always set. Stale is true exactly when
// the current cycle's fetch or parse failed and either a last-known-good
// record was substituted or a null-field skeleton was emitted.
type Conditions struct {
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	FetchedAtUTC time.Time `json:"fetched_at_utc"`
	Stale        bool      `json:"stale"`
	Sources      Sources   `json:"sources"`
	Ops          Ops       `json:"ops"`
	Snow         Snow      `json:"snow"`
	Weather      Weather   `json:"weather"`
}

// SummaryCounts tallies resorts by status.
type SummaryCounts struct {
	OpenResorts   int `json:"open_resorts"`
	ClosedResorts int `json:"closed_resorts"`
	StaleResorts  int `json:"stale_resorts"`
}

// Summary is the derived highlights artifact.
type Summary struct {
	LastUpdatedUTC time.Time         `json:"last_updated_utc"`
	Counts         SummaryCounts     `json:"counts"`
	Highlights     []string          `json:"highlights"`
	Blurbs         map[string]string `json:"blurbs"`
}

// Pointer helpers for building records with optional fields.

func Bool(v bool) *bool        { return &v }
func Int(v int) *int           { return &v }
func Float(v float64) *float64 { return &v }
func String(v string) *string  { return &v }
