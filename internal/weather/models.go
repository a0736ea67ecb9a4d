package weather

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
// It is carried as midnight UTC so day and hour arithmetic never crosses a DST shift.
type Date struct {
	t time.Time
}

// NewDate returns the given calendar date. Out-of-range values are normalized
// the way time.Date does (e.g. March 32 becomes April 1).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// At returns the wall-clock time on this date.
func (d Date) At(hour, minute int) time.Time {
	return d.t.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Temperature is a single reading in degrees Celsius.
type Temperature struct {
	DegreesC float32
}

// DegreesF is the Fahrenheit view, computed as C*1.8 - 32.
func (t Temperature) DegreesF() float32 {
	return float32(t.DegreesC*1.8) - 32
}

type temperatureJSON struct {
	DegreesC float32 `json:"degreesC"`
	DegreesF float32 `json:"degreesF"`
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	return json.Marshal(temperatureJSON{DegreesC: t.DegreesC, DegreesF: t.DegreesF()})
}

// UnmarshalJSON ignores degreesF; it is always derived.
func (t *Temperature) UnmarshalJSON(b []byte) error {
	var v temperatureJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	t.DegreesC = v.DegreesC
	return nil
}

// CompareTemperatures orders temperatures by value: -1 if a < b, 1 if a > b, 0 otherwise.
func CompareTemperatures(a, b Temperature) int {
	switch {
	case a.DegreesC < b.DegreesC:
		return -1
	case a.DegreesC > b.DegreesC:
		return 1
	default:
		return 0
	}
}

// Conditions holds four independent intensities. Generated values lie in [0,1),
// nothing else enforces that.
type Conditions struct {
	Cloudy    float32 `json:"cloudy"`
	Rainy     float32 `json:"rainy"`
	Snowy     float32 `json:"snowy"`
	Lightning float32 `json:"lightning"`
}

// CombineConditions multiplies a and b field by field.
func CombineConditions(a, b Conditions) Conditions {
	return Conditions{
		Cloudy:    a.Cloudy * b.Cloudy,
		Rainy:     a.Rainy * b.Rainy,
		Snowy:     a.Snowy * b.Snowy,
		Lightning: a.Lightning * b.Lightning,
	}
}

// HourWeather is one hour-aligned sample.
type HourWeather struct {
	Hour       time.Time   `json:"hour"`
	Temp       Temperature `json:"temp"`
	Conditions Conditions  `json:"conditions"`
}

// DayWeather summarises the 24 hours starting at 06:00 on Date.
type DayWeather struct {
	Date       Date          `json:"date"`
	High       Temperature   `json:"high"`
	Low        Temperature   `json:"low"`
	Conditions Conditions    `json:"conditions"`
	Hourly     []HourWeather `json:"hourly"`
}

// SampleSet is a generated sequence together with the parameters that produced it.
// A nil Seed means the set came from a non-deterministic source.
type SampleSet struct {
	ID          string       `json:"id"`
	Start       Date         `json:"start"`
	Seed        *int32       `json:"seed,omitempty"`
	GeneratedAt time.Time    `json:"generatedAt"` // always UTC
	Days        []DayWeather `json:"days"`
}
