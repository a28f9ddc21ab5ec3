package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMap_ReproducesRecord(t *testing.T) {
	rec := Record{"summary": "Clear", "temperature": 72}

	got := FieldMap(rec, "summary", "temperature")

	require.Len(t, got, 2)
	for k, want := range rec {
		v, ok := got[k].Get()
		assert.True(t, ok, "field %s should be present", k)
		assert.Equal(t, want, v)
	}
}

func TestFields_KeepsOrder(t *testing.T) {
	rec := Record{"a": 1, "b": 2, "c": 3}

	got := Fields(rec, "c", "a", "b")

	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].String())
	assert.Equal(t, "1", got[1].String())
	assert.Equal(t, "2", got[2].String())
}

func TestFields_MissingKeyIsAbsent(t *testing.T) {
	got := Fields(Record{"summary": "Clear"}, "precipType")

	require.Len(t, got, 1)
	assert.True(t, got[0].IsAbsent())
	assert.Equal(t, AbsentText, got[0].String())
}

func TestFields_NilRecord(t *testing.T) {
	got := Fields(nil, "summary", "time")
	for _, v := range got {
		assert.True(t, v.IsAbsent())
	}
}

func TestValue_NullIsAbsentButZeroIsNot(t *testing.T) {
	rec := Record{"precipType": nil, "precipProbability": 0, "flag": false, "summary": ""}

	assert.True(t, rec.Value("precipType").IsAbsent())
	assert.False(t, rec.Value("precipProbability").IsAbsent())
	assert.False(t, rec.Value("flag").IsAbsent())
	assert.False(t, rec.Value("summary").IsAbsent())
	assert.Equal(t, "0", rec.Value("precipProbability").String())
	assert.Equal(t, "false", rec.Value("flag").String())
}

func TestValue_Or(t *testing.T) {
	assert.Equal(t, "precipitation", Absent().Or("precipitation"))
	assert.Equal(t, "rain", Present("rain").Or("precipitation"))
	assert.Equal(t, "0.1", Present(json.Number("0.1")).Or("x"))
	// nested values have no scalar rendering
	assert.Equal(t, "x", Present([]any{1}).Or("x"))
}

func TestRecord_Section(t *testing.T) {
	rec := Record{
		"hourly": map[string]any{"summary": "Rain"},
		"flags":  "nope",
	}

	hourly, err := rec.Section("hourly")
	require.NoError(t, err)
	assert.Equal(t, "Rain", hourly.Value("summary").String())

	_, err = rec.Section("daily")
	assert.True(t, errors.Is(err, ErrMalformedResponse))

	_, err = rec.Section("flags")
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestRecord_Entries(t *testing.T) {
	rec := Record{
		"data": []any{
			map[string]any{"time": 1},
			map[string]any{"time": 2},
		},
		"bad":  []any{"not an object"},
		"flat": 7,
	}

	entries, err := rec.Entries("data")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].Value("time").String())
	assert.Equal(t, "2", entries[1].Value("time").String())

	entries, err = rec.Entries("missing")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = rec.Entries("bad")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = rec.Entries("flat")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
