// Package weather fetches current forecasts from the National Weather
// Service API.
//
// NWS lookups are two-step: the points endpoint resolves coordinates to a
// gridded forecast URL, then the forecast endpoint returns periods. Both
// responses are cached independently by URL through the shared fetch
// client. Weather failures never block ops/snow data: the caller just gets
// an error and leaves the weather fields null.
package weather

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

const pointsURLFormat = "https://api.weather.gov/points/%.4f,%.4f"

// Fetcher is the JSON-fetching capability the client needs, satisfied by
// *fetch.Client.
type Fetcher interface {
	FetchJSON(url string, v interface{}) error
}

// Client looks up NWS forecasts by coordinates.
type Client struct {
	fetcher Fetcher
}

// New creates a weather client on top of the shared fetch client.
func New(fetcher Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

// Forecast is the result of one lookup, including the URLs used so they
// can be recorded in the output's sources block.
type Forecast struct {
	Weather     resort.Weather
	PointsURL   string
	ForecastURL *string
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name            string   `json:"name"`
	Temperature     *float64 `json:"temperature"`
	TemperatureUnit string   `json:"temperatureUnit"`
	WindSpeed       string   `json:"windSpeed"`
	ShortForecast   string   `json:"shortForecast"`
}

// Current fetches the current forecast period for the given coordinates.
// The returned Forecast always carries the points URL, even on error.
func (c *Client) Current(lat, lon float64) (*Forecast, error) {
	fc := &Forecast{PointsURL: fmt.Sprintf(pointsURLFormat, lat, lon)}

	var points pointsResponse
	if err := c.fetcher.FetchJSON(fc.PointsURL, &points); err != nil {
		return fc, fmt.Errorf("NWS points lookup: %w", err)
	}

	if points.Properties.Forecast == "" {
		return fc, fmt.Errorf("no forecast URL in NWS points response for %.4f,%.4f", lat, lon)
	}
	fc.ForecastURL = resort.String(points.Properties.Forecast)

	var forecast forecastResponse
	if err := c.fetcher.FetchJSON(*fc.ForecastURL, &forecast); err != nil {
		return fc, fmt.Errorf("NWS forecast lookup: %w", err)
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return fc, fmt.Errorf("no forecast periods for %.4f,%.4f", lat, lon)
	}

	// The first period is the current one.
	current := periods[0]

	if current.Temperature != nil {
		temp := *current.Temperature
		if current.TemperatureUnit == "C" {
			temp = temp*9/5 + 32
		}
		fc.Weather.TempF = resort.Float(temp)
	}

	fc.Weather.WindMph, fc.Weather.WindGustMph = parseWind(current.WindSpeed)

	if current.ShortForecast != "" {
		fc.Weather.ShortForecast = resort.String(current.ShortForecast)
	}
	if current.Name != "" {
		fc.Weather.ForecastPeriodName = resort.String(current.Name)
	}

	logger.Debug("NWS forecast fetched", logger.Fields{
		"points_url": fc.PointsURL,
		"period":     current.Name,
	})

	return fc, nil
}

var (
	windSpeedPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:to\s*(\d+))?\s*mph`)
	windGustPattern  = regexp.MustCompile(`(?i)gust(?:ing|s)?\s*(?:to\s*)?(\d+)\s*mph`)
)

// parseWind parses NWS wind strings like "10 mph", "10 to 20 mph" (upper
// bound wins) or "10 mph gusting to 25 mph".
func parseWind(windSpeed string) (wind, gust *float64) {
	if windSpeed == "" {
		return nil, nil
	}

	if m := windSpeedPattern.FindStringSubmatch(windSpeed); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if m[2] != "" {
			v, _ = strconv.ParseFloat(m[2], 64)
		}
		wind = &v
	}

	if m := windGustPattern.FindStringSubmatch(windSpeed); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		gust = &v
	}

	return wind, gust
}
