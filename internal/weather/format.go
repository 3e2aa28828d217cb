package weather

import (
	"fmt"
	"math"
	"strconv"
)

// compassPoints are the 16 compass points in clockwise order from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// FormatTemperature renders a temperature rounded to the nearest whole
// degree, e.g. "23°C".
func FormatTemperature(temp float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(temp)))
}

// FormatWindSpeed renders a wind speed rounded to one decimal with
// trailing zeros trimmed, e.g. "3.5 m/s" or "3 m/s".
func FormatWindSpeed(speed float64) string {
	rounded := math.Round(speed*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " m/s"
}

// FormatHumidity renders a humidity percentage, e.g. "68%".
func FormatHumidity(humidity float64) string {
	return strconv.FormatFloat(humidity, 'f', -1, 64) + "%"
}

// FormatPressure renders a pressure, e.g. "1013 hPa".
func FormatPressure(pressure float64) string {
	return strconv.FormatFloat(pressure, 'f', -1, 64) + " hPa"
}

// FormatVisibility renders a visibility distance in kilometers, e.g. "10 km".
func FormatVisibility(visibility float64) string {
	return strconv.FormatFloat(visibility, 'f', -1, 64) + " km"
}

// WindDirection maps compass degrees onto one of the 16 points. The
// input is taken modulo 360, so 360 and 720 both read as north.
func WindDirection(degrees float64) string {
	deg := math.Mod(degrees, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/22.5)) % 16
	return compassPoints[idx]
}
