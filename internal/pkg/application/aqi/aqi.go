package aqi

import (
	"math"

	"github.com/diwise/aqi-bot/domain"
)

type Breakpoint struct {
	Concentration float64
	AQI           float64
}

// concentrations must be strictly increasing
var breakpoints = [...]Breakpoint{
	{0.0, 0},
	{12.1, 51},
	{35.5, 101},
	{55.5, 151},
	{150.5, 201},
	{250.5, 301},
	{350.5, 401},
	{500.5, 500},
}

const Max float64 = 500.0

func Breakpoints() []Breakpoint {
	bp := make([]Breakpoint, len(breakpoints))
	copy(bp, breakpoints[:])
	return bp
}

// FromPM25 converts a raw PM2.5 concentration to an AQI value by linear
// interpolation between the enclosing breakpoints. Concentrations at or above
// the last breakpoint saturate to Max and negative concentrations map to 0.
func FromPM25(raw float64) float64 {
	if math.IsNaN(raw) {
		return raw
	}

	last := breakpoints[len(breakpoints)-1]
	if raw >= last.Concentration {
		return Max
	}

	if raw <= breakpoints[0].Concentration {
		return breakpoints[0].AQI
	}

	high := 1
	for breakpoints[high].Concentration < raw {
		high++
	}

	hi, lo := breakpoints[high], breakpoints[high-1]
	if raw == hi.Concentration {
		return hi.AQI
	}

	return (hi.AQI-lo.AQI)/(hi.Concentration-lo.Concentration)*(raw-lo.Concentration) + lo.AQI
}

func FromStats(s domain.Stats) domain.Stats {
	return domain.Stats{
		Current:    FromPM25(s.Current),
		TenMinutes: FromPM25(s.TenMinutes),
		HalfHour:   FromPM25(s.HalfHour),
		OneHour:    FromPM25(s.OneHour),
		SixHours:   FromPM25(s.SixHours),
		OneDay:     FromPM25(s.OneDay),
		OneWeek:    FromPM25(s.OneWeek),
	}
}
