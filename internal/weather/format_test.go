package weather

import "testing"

func TestWindDirection(t *testing.T) {
	cases := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{359, "N"},
		{360, "N"},
		{720, "N"},
		{22.5, "NNE"},
	}

	for _, tc := range cases {
		if got := WindDirection(tc.degrees); got != tc.want {
			t.Errorf("WindDirection(%v) = %q, want %q", tc.degrees, got, tc.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatTemperature(22.6); got != "23°C" {
		t.Errorf("FormatTemperature(22.6) = %q", got)
	}
	if got := FormatTemperature(-0.4); got != "0°C" {
		t.Errorf("FormatTemperature(-0.4) = %q", got)
	}
	if got := FormatWindSpeed(3.46); got != "3.5 m/s" {
		t.Errorf("FormatWindSpeed(3.46) = %q", got)
	}
	if got := FormatWindSpeed(3); got != "3 m/s" {
		t.Errorf("FormatWindSpeed(3) = %q", got)
	}
	if got := FormatHumidity(68); got != "68%" {
		t.Errorf("FormatHumidity(68) = %q", got)
	}
	if got := FormatPressure(1013); got != "1013 hPa" {
		t.Errorf("FormatPressure(1013) = %q", got)
	}
	if got := FormatVisibility(10); got != "10 km" {
		t.Errorf("FormatVisibility(10) = %q", got)
	}
}
