package weather

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// stubFetcher serves canned JSON bodies by URL substring.
type stubFetcher struct {
	responses map[string]string
	calls     []string
}

func (s *stubFetcher) FetchJSON(url string, v interface{}) error {
	s.calls = append(s.calls, url)
	for substr, body := range s.responses {
		if strings.Contains(url, substr) {
			return json.Unmarshal([]byte(body), v)
		}
	}
	return fmt.Errorf("no stub for %s", url)
}

const pointsBody = `{"properties": {"forecast": "https://api.weather.gov/gridpoints/REV/33,87/forecast"}}`

const forecastBody = `{"properties": {"periods": [
	{"name": "This Afternoon", "temperature": 28, "temperatureUnit": "F",
	 "windSpeed": "10 to 20 mph", "shortForecast": "Snow Showers"},
	{"name": "Tonight", "temperature": 15, "temperatureUnit": "F",
	 "windSpeed": "5 mph", "shortForecast": "Mostly Clear"}
]}}`

func TestCurrent(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]string{
		"/points/":    pointsBody,
		"/gridpoints": forecastBody,
	}}

	fc, err := New(fetcher).Current(39.2538, -119.9242)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	if fc.PointsURL != "https://api.weather.gov/points/39.2538,-119.9242" {
		t.Errorf("PointsURL = %q", fc.PointsURL)
	}
	if fc.ForecastURL == nil || !strings.Contains(*fc.ForecastURL, "/gridpoints/") {
		t.Errorf("ForecastURL = %v", fc.ForecastURL)
	}

	w := fc.Weather
	if w.TempF == nil || *w.TempF != 28 {
		t.Errorf("TempF = %v, expected 28", w.TempF)
	}
	// "10 to 20 mph": the upper bound wins.
	if w.WindMph == nil || *w.WindMph != 20 {
		t.Errorf("WindMph = %v, expected 20", w.WindMph)
	}
	if w.ShortForecast == nil || *w.ShortForecast != "Snow Showers" {
		t.Errorf("ShortForecast = %v", w.ShortForecast)
	}
	if w.ForecastPeriodName == nil || *w.ForecastPeriodName != "This Afternoon" {
		t.Errorf("ForecastPeriodName = %v", w.ForecastPeriodName)
	}

	if len(fetcher.calls) != 2 {
		t.Errorf("expected 2 API calls (points then forecast), got %d", len(fetcher.calls))
	}
}

func TestCurrentCelsiusConverted(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]string{
		"/points/": pointsBody,
		"/gridpoints": `{"properties": {"periods": [
			{"name": "Tonight", "temperature": 0, "temperatureUnit": "C", "windSpeed": "", "shortForecast": ""}
		]}}`,
	}}

	fc, err := New(fetcher).Current(39.0, -120.0)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if fc.Weather.TempF == nil || *fc.Weather.TempF != 32 {
		t.Errorf("TempF = %v, expected 32 (0C converted)", fc.Weather.TempF)
	}
}

func TestCurrentPointsFailure(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]string{}}

	fc, err := New(fetcher).Current(39.0, -120.0)
	if err == nil {
		t.Fatal("expected error when points lookup fails")
	}
	// The points URL is still reported for the sources block.
	if fc == nil || fc.PointsURL == "" {
		t.Error("expected Forecast with PointsURL even on failure")
	}
}

func TestCurrentNoPeriods(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]string{
		"/points/":    pointsBody,
		"/gridpoints": `{"properties": {"periods": []}}`,
	}}

	if _, err := New(fetcher).Current(39.0, -120.0); err == nil {
		t.Fatal("expected error for empty periods")
	}
}

func TestParseWind(t *testing.T) {
	tests := []struct {
		input string
		wind  float64
		gust  float64
		// -1 means nil expected
	}{
		{"10 mph", 10, -1},
		{"10 to 20 mph", 20, -1},
		{"10 mph gusting to 25 mph", 10, 25},
		{"15 mph gusts to 30 mph", 15, 30},
		{"", -1, -1},
		{"calm", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wind, gust := parseWind(tt.input)
			checkFloat(t, "wind", wind, tt.wind)
			checkFloat(t, "gust", gust, tt.gust)
		})
	}
}

func checkFloat(t *testing.T, label string, got *float64, expected float64) {
	t.Helper()
	if expected < 0 {
		if got != nil {
			t.Errorf("%s = %v, expected nil", label, *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s = nil, expected %v", label, expected)
	}
	if *got != expected {
		t.Errorf("%s = %v, expected %v", label, *got, expected)
	}
}
