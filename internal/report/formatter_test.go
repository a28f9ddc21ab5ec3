package report

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-report/internal/model"
	"github.com/fakhrymubarak/weather-report/internal/timefmt"
)

func newTestFormatter(verbose bool) *Formatter {
	return NewFormatter(Options{
		Verbose: verbose,
		Time:    timefmt.Formatter{Location: time.UTC},
	})
}

func hours(n int) []any {
	data := make([]any, n)
	for i := range data {
		data[i] = map[string]any{
			"time":              json.Number(strconv.Itoa(1700000000 + i*3600)),
			"summary":           "Cloudy",
			"temperature":       json.Number("60"),
			"precipProbability": json.Number("0"),
		}
	}
	return data
}

func TestCurrently(t *testing.T) {
	got := newTestFormatter(false).Currently(model.Record{
		"summary":           "Clear",
		"temperature":       72,
		"precipType":        nil,
		"precipProbability": 0.1,
	})

	assert.Equal(t, "\ncurrently: \n\tClear and 72 degrees\n\tPossibility of precipitation: 0.1", got)
	assert.Contains(t, got, "Possibility of precipitation: 0.1")
}

func TestCurrently_KeepsPrecipType(t *testing.T) {
	got := newTestFormatter(false).Currently(model.Record{
		"summary":           "Drizzle",
		"temperature":       json.Number("55.4"),
		"precipType":        "rain",
		"precipProbability": json.Number("0.8"),
	})

	assert.Contains(t, got, "Drizzle and 55.4 degrees")
	assert.Contains(t, got, "Possibility of rain: 0.8")
}

func TestCurrently_MissingFieldsRenderAbsent(t *testing.T) {
	got := newTestFormatter(false).Currently(model.Record{})
	assert.Equal(t, "\ncurrently: \n\tN/A and N/A degrees\n\tPossibility of precipitation: N/A", got)
}

func TestMinutely_IgnoresVerbosity(t *testing.T) {
	rec := model.Record{
		"summary": "Clear for the hour.",
		"data":    []any{map[string]any{"time": 1}},
	}
	assert.Equal(t, "\tClear for the hour.", newTestFormatter(false).Minutely(rec))
	assert.Equal(t, "\tClear for the hour.", newTestFormatter(true).Minutely(rec))
}

func TestHourly_NonVerboseIsHeaderOnly(t *testing.T) {
	rec := model.Record{"summary": "Rain tonight.", "data": hours(24)}

	got, err := newTestFormatter(false).Hourly(rec)

	require.NoError(t, err)
	assert.Equal(t, "\nHourly: \n\tRain tonight.", got)
}

func TestHourly_Verbose(t *testing.T) {
	rec := model.Record{"summary": "Rain tonight.", "data": hours(2)}

	got, err := newTestFormatter(true).Hourly(rec)

	require.NoError(t, err)
	want := "\nHourly: \n\tRain tonight." +
		"\nTue 10 O'Clock PM: \n\tCloudy and 60 degrees\n\tPossibility of precipitation: 0" +
		"\nTue 11 O'Clock PM: \n\tCloudy and 60 degrees\n\tPossibility of precipitation: 0"
	assert.Equal(t, want, got)
}

func TestHourly_CustomHourPattern(t *testing.T) {
	f := NewFormatter(Options{
		Verbose:     true,
		HourPattern: "%H:00",
		Time:        timefmt.Formatter{Location: time.UTC},
	})

	got, err := f.Hourly(model.Record{"summary": "x", "data": hours(1)})

	require.NoError(t, err)
	assert.Contains(t, got, "\n22:00: \n\tCloudy")
}

func TestHourly_MalformedTimestamp(t *testing.T) {
	rec := model.Record{
		"summary": "Rain",
		"data":    []any{map[string]any{"summary": "no time"}},
	}

	_, err := newTestFormatter(true).Hourly(rec)

	assert.ErrorIs(t, err, timefmt.ErrMalformedTimestamp)
}

func TestHourly_MalformedData(t *testing.T) {
	_, err := newTestFormatter(true).Hourly(model.Record{"summary": "x", "data": "oops"})
	assert.ErrorIs(t, err, model.ErrMalformedResponse)
}

func day(ts int64, summary string) map[string]any {
	return map[string]any{
		"time":              json.Number(strconv.FormatInt(ts, 10)),
		"summary":           summary,
		"temperatureMin":    json.Number("41.2"),
		"temperatureMax":    json.Number("58"),
		"precipType":        nil,
		"precipProbability": json.Number("0.3"),
		"sunriseTime":       json.Number(strconv.FormatInt(ts-54800, 10)),
		"sunsetTime":        json.Number(strconv.FormatInt(ts-18800, 10)),
	}
}

func TestDaily_NonVerboseIsHeaderOnly(t *testing.T) {
	rec := model.Record{"summary": "Mixed week.", "data": []any{day(1700000000, "a"), day(1700086400, "b")}}

	got, err := newTestFormatter(false).Daily(rec)

	require.NoError(t, err)
	assert.Equal(t, "\nDaily: \n\tMixed week.", got)
}

func TestDaily_VerboseBlock(t *testing.T) {
	rec := model.Record{"summary": "Mixed week.", "data": []any{day(1700000000, "Light rain.")}}

	got, err := newTestFormatter(true).Daily(rec)

	require.NoError(t, err)
	want := "\nDaily: \n\tMixed week." +
		"\n\tTuesday Nov 14:" +
		"\n\t\tLight rain." +
		"\n\t\tBetween 41.2 and 58 degrees" +
		"\n\t\tPossibility of precipitation: 0.3" +
		"\n\t\tSunrise: 07:00 AM, Sunset: 05:00 PM\n"
	assert.Equal(t, want, got)
}

func TestDaily_PreservesOrder(t *testing.T) {
	rec := model.Record{"summary": "Week.", "data": []any{
		day(1700000000, "day-one"),
		day(1700086400, "day-two"),
		day(1700172800, "day-three"),
	}}

	got, err := newTestFormatter(true).Daily(rec)

	require.NoError(t, err)
	one := strings.Index(got, "day-one")
	two := strings.Index(got, "day-two")
	three := strings.Index(got, "day-three")
	require.True(t, one >= 0 && two >= 0 && three >= 0)
	assert.Less(t, one, two)
	assert.Less(t, two, three)
}

func TestDaily_MissingSunset(t *testing.T) {
	d := day(1700000000, "x")
	delete(d, "sunsetTime")

	_, err := newTestFormatter(true).Daily(model.Record{"summary": "x", "data": []any{d}})

	assert.ErrorIs(t, err, timefmt.ErrMalformedTimestamp)
	assert.Contains(t, err.Error(), "sunset")
}

func TestRender(t *testing.T) {
	fc := &model.Forecast{
		Currently: model.Record{"summary": "Clear", "temperature": 72, "precipProbability": 0},
		Minutely:  model.Record{"summary": "Clear for the hour."},
		Hourly:    model.Record{"summary": "Dry.", "data": hours(3)},
		Daily:     model.Record{"summary": "Sunny.", "data": []any{day(1700000000, "x")}},
	}

	blocks, err := newTestFormatter(false).Render(fc)

	require.NoError(t, err)
	require.Len(t, blocks, 4)
	assert.True(t, strings.HasPrefix(blocks[0], "\ncurrently: "))
	assert.Equal(t, "\tClear for the hour.", blocks[1])
	assert.Equal(t, "\nHourly: \n\tDry.", blocks[2])
	assert.Equal(t, "\nDaily: \n\tSunny.", blocks[3])
}

func TestRender_ErrorReturnsNothing(t *testing.T) {
	fc := &model.Forecast{
		Hourly: model.Record{"summary": "x", "data": []any{map[string]any{"time": "soon"}}},
		Daily:  model.Record{"summary": "y"},
	}

	blocks, err := newTestFormatter(true).Render(fc)

	assert.Error(t, err)
	assert.Nil(t, blocks)
}
