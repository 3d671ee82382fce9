package resort

import "testing"

func TestLiftsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		ops      Ops
		expected int
	}{
		{"nothing reported", Ops{}, 0},
		{"open only", Ops{LiftsOpen: Int(5)}, 5},
		{"open plus scheduled", Ops{LiftsOpen: Int(5), LiftsScheduled: Int(2)}, 7},
		{"scheduled only", Ops{LiftsScheduled: Int(3)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ops.LiftsAvailable(); got != tt.expected {
				t.Errorf("LiftsAvailable() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestTrailsAvailable(t *testing.T) {
	ops := Ops{TrailsOpen: Int(20), TrailsScheduled: Int(5)}
	if got := ops.TrailsAvailable(); got != 25 {
		t.Errorf("TrailsAvailable() = %d, expected 25", got)
	}
}

func TestWeatherEmpty(t *testing.T) {
	if !(Weather{}).Empty() {
		t.Error("zero-value weather should be empty")
	}
	if (Weather{TempF: Float(28)}).Empty() {
		t.Error("weather with a temperature is not empty")
	}
	if (Weather{ShortForecast: String("Sunny")}).Empty() {
		t.Error("weather with a forecast is not empty")
	}
}
