package weather

import (
	"errors"
	"fmt"
	"time"
)

const (
	hoursPerDay = 24
	firstHour   = 6 // each day's window starts at 06:00

	maxTemperatureC = 40.0
)

// ErrInvalidInput is returned for arguments outside Generate's contract.
var ErrInvalidInput = errors.New("invalid generator input")

// ReferenceStart is the first day of the regression sequence.
var ReferenceStart = NewDate(2020, time.March, 24)

const (
	ReferenceDays       = 10
	ReferenceSeed int32 = 1234
)

// Generate synthesizes days of placeholder weather starting at start.
//
// Each hour consumes five draws from src in the order temperature, cloudy, rainy,
// snowy, lightning. A zero day count returns an empty slice without touching src.
// Negative counts and a nil source are rejected before anything is drawn.
func Generate(start Date, days int, src Source) ([]DayWeather, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: day count %d is negative", ErrInvalidInput, days)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidInput)
	}

	out := make([]DayWeather, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, generateDay(start.AddDays(i), src))
	}
	return out, nil
}

func generateDay(date Date, src Source) DayWeather {
	base := date.At(firstHour, 0)

	hourly := make([]HourWeather, 0, hoursPerDay)
	for h := 0; h < hoursPerDay; h++ {
		hourly = append(hourly, HourWeather{
			Hour:       base.Add(time.Duration(h) * time.Hour),
			Temp:       nextTemperature(src),
			Conditions: nextConditions(src),
		})
	}

	low, high := hourly[0].Temp, hourly[0].Temp
	conditions := hourly[0].Conditions
	for _, hw := range hourly[1:] {
		if CompareTemperatures(hw.Temp, low) < 0 {
			low = hw.Temp
		}
		if CompareTemperatures(hw.Temp, high) > 0 {
			high = hw.Temp
		}
		conditions = CombineConditions(conditions, hw.Conditions)
	}

	return DayWeather{
		Date:       date,
		High:       high,
		Low:        low,
		Conditions: conditions,
		Hourly:     hourly,
	}
}

func nextTemperature(src Source) Temperature {
	return Temperature{DegreesC: src.Float32() * maxTemperatureC}
}

// nextConditions relies on Go evaluating composite literal fields left to right.
func nextConditions(src Source) Conditions {
	return Conditions{
		Cloudy:    src.Float32(),
		Rainy:     src.Float32(),
		Snowy:     src.Float32(),
		Lightning: src.Float32(),
	}
}

// Reference returns the canonical regression sequence.
func Reference() []DayWeather {
	days, _ := Generate(ReferenceStart, ReferenceDays, NewSeededSource(ReferenceSeed))
	return days
}
