package weather

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many draws Generate consumed.
type countingSource struct {
	src   Source
	draws int
}

func (c *countingSource) Float32() float32 {
	c.draws++
	return c.src.Float32()
}

// replaySource returns a fixed sequence of draws, cycling when exhausted.
type replaySource struct {
	values []float32
	next   int
}

func (r *replaySource) Float32() float32 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func TestGenerate_Reference(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "reference.json"))
	require.NoError(t, err)

	got, err := json.MarshalIndent(Reference(), "", "  ")
	require.NoError(t, err)
	got = append(got, '\n')

	assert.Equal(t, string(want), string(got))
}

func TestGenerate_ReferenceFirstHour(t *testing.T) {
	days := Reference()
	require.Len(t, days, ReferenceDays)

	first := days[0]
	assert.Equal(t, "2020-03-24", first.Date.String())
	assert.Equal(t, float32(1348164)/(1<<24)*40, first.Hourly[0].Temp.DegreesC)
	assert.Equal(t, float32(11555508)/(1<<24), first.Hourly[0].Conditions.Cloudy)
	assert.Equal(t, float32(15544075)/(1<<24), first.Hourly[0].Conditions.Rainy)
	assert.Equal(t, "2020-04-02", days[len(days)-1].Date.String())
}

func TestGenerate_Lengths(t *testing.T) {
	start := NewDate(2021, time.January, 1)
	for _, n := range []int{0, 1, 2, 7, 31, 100} {
		days, err := Generate(start, n, NewSeededSource(99))
		require.NoError(t, err)
		assert.Len(t, days, n)
		for _, d := range days {
			assert.Len(t, d.Hourly, hoursPerDay)
		}
	}
}

func TestGenerate_DrawCount(t *testing.T) {
	start := NewDate(2021, time.June, 1)

	t.Run("zero days draws nothing", func(t *testing.T) {
		src := &countingSource{src: NewSeededSource(1)}
		days, err := Generate(start, 0, src)
		require.NoError(t, err)
		assert.NotNil(t, days)
		assert.Empty(t, days)
		assert.Equal(t, 0, src.draws)
	})

	t.Run("120 draws per day", func(t *testing.T) {
		src := &countingSource{src: NewSeededSource(1)}
		_, err := Generate(start, 3, src)
		require.NoError(t, err)
		assert.Equal(t, 360, src.draws)
	})
}

func TestGenerate_DrawOrder(t *testing.T) {
	// Five distinct draws per hour: temperature, cloudy, rainy, snowy, lightning.
	src := &replaySource{values: []float32{0.5, 0.1, 0.2, 0.3, 0.4}}
	days, err := Generate(NewDate(2021, time.June, 1), 1, src)
	require.NoError(t, err)

	for _, h := range days[0].Hourly {
		assert.Equal(t, float32(20), h.Temp.DegreesC)
		assert.Equal(t, Conditions{Cloudy: 0.1, Rainy: 0.2, Snowy: 0.3, Lightning: 0.4}, h.Conditions)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	start := NewDate(2021, time.June, 1)

	src := &countingSource{src: NewSeededSource(1)}
	days, err := Generate(start, -1, src)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, days)
	assert.Equal(t, 0, src.draws)

	_, err = Generate(start, 1, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerate_Hours(t *testing.T) {
	start := NewDate(2020, time.December, 30)
	days, err := Generate(start, 3, NewSeededSource(5))
	require.NoError(t, err)

	for i, d := range days {
		assert.True(t, d.Date.Equal(start.AddDays(i)))
		assert.Equal(t, time.Date(2020, time.December, 30+i, 6, 0, 0, 0, time.UTC), d.Hourly[0].Hour)
		for h := 1; h < len(d.Hourly); h++ {
			assert.Equal(t, time.Hour, d.Hourly[h].Hour.Sub(d.Hourly[h-1].Hour))
		}
	}
}

func TestGenerate_SingleDayBoundary(t *testing.T) {
	date := NewDate(2024, time.February, 29)
	days, err := Generate(date, 1, NewSeededSource(77))
	require.NoError(t, err)
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "2024-02-29", d.Date.String())
	assert.Equal(t, time.Date(2024, time.February, 29, 6, 0, 0, 0, time.UTC), d.Hourly[0].Hour)
	assert.Equal(t, time.Date(2024, time.March, 1, 5, 0, 0, 0, time.UTC), d.Hourly[23].Hour)
}

func TestGenerate_Bounds(t *testing.T) {
	days, err := Generate(NewDate(2022, time.March, 1), 30, NewSeededSource(2024))
	require.NoError(t, err)

	for _, d := range days {
		minHourly := d.Hourly[0].Conditions
		for _, h := range d.Hourly {
			c := h.Temp.DegreesC
			assert.GreaterOrEqual(t, c, float32(0))
			assert.Less(t, c, float32(40))
			assert.LessOrEqual(t, d.Low.DegreesC, c)
			assert.GreaterOrEqual(t, d.High.DegreesC, c)

			for _, v := range []float32{h.Conditions.Cloudy, h.Conditions.Rainy, h.Conditions.Snowy, h.Conditions.Lightning} {
				assert.GreaterOrEqual(t, v, float32(0))
				assert.Less(t, v, float32(1))
			}
			minHourly = Conditions{
				Cloudy:    min(minHourly.Cloudy, h.Conditions.Cloudy),
				Rainy:     min(minHourly.Rainy, h.Conditions.Rainy),
				Snowy:     min(minHourly.Snowy, h.Conditions.Snowy),
				Lightning: min(minHourly.Lightning, h.Conditions.Lightning),
			}
		}

		assert.LessOrEqual(t, d.Conditions.Cloudy, minHourly.Cloudy)
		assert.LessOrEqual(t, d.Conditions.Rainy, minHourly.Rainy)
		assert.LessOrEqual(t, d.Conditions.Snowy, minHourly.Snowy)
		assert.LessOrEqual(t, d.Conditions.Lightning, minHourly.Lightning)
	}
}

func TestGenerate_AggregateConditionsFold(t *testing.T) {
	days, err := Generate(NewDate(2022, time.March, 1), 2, NewSeededSource(31))
	require.NoError(t, err)

	for _, d := range days {
		want := d.Hourly[0].Conditions
		for _, h := range d.Hourly[1:] {
			want = CombineConditions(want, h.Conditions)
		}
		assert.Equal(t, want, d.Conditions)
	}
}

func TestGenerate_LowHighFirstOccurrence(t *testing.T) {
	// Every hour draws the same temperature, so low and high are hour 0's value.
	src := &replaySource{values: []float32{0.25, 0.5, 0.5, 0.5, 0.5}}
	days, err := Generate(NewDate(2021, time.June, 1), 1, src)
	require.NoError(t, err)

	assert.Equal(t, days[0].Hourly[0].Temp, days[0].Low)
	assert.Equal(t, days[0].Hourly[0].Temp, days[0].High)
}

func TestGenerate_Deterministic(t *testing.T) {
	start := NewDate(2023, time.July, 4)
	a, err := Generate(start, 5, NewSeededSource(8675309))
	require.NoError(t, err)
	b, err := Generate(start, 5, NewSeededSource(8675309))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
