// Package timefmt renders unix timestamps from forecast responses as local wall-clock text.
package timefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/fakhrymubarak/weather-report/internal/model"
)

// Preset strftime patterns.
const (
	ClockTime = "%I:%M %p"
	HourLabel = "%a %I O'Clock %p"
	DayLabel  = "%A %b %d"
)

var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInvalidPattern     = errors.New("invalid time pattern")
)

// Formatter formats timestamps in Location. The zero value uses the host's local zone.
type Formatter struct {
	Location *time.Location
}

// Format renders ts (seconds since the epoch) with a strftime pattern.
func (f Formatter) Format(pattern string, ts model.Value) (string, error) {
	t, err := f.Time(ts)
	if err != nil {
		return "", err
	}
	p, err := strftime.New(pattern)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return p.FormatString(t), nil
}

// Time converts ts to a time in the formatter's zone.
func (f Formatter) Time(ts model.Value) (time.Time, error) {
	raw, ok := ts.Get()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing", ErrMalformedTimestamp)
	}
	secs, err := seconds(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).In(f.location()), nil
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func seconds(raw any) (int64, error) {
	var v float64
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, n.String())
		}
		v = parsed
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrMalformedTimestamp, raw, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt64/2 {
		return 0, fmt.Errorf("%w: %v", ErrMalformedTimestamp, v)
	}
	return int64(v), nil
}
