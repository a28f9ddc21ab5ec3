// Package report turns forecast sections into console text.
package report

import (
	"fmt"
	"strings"

	"github.com/fakhrymubarak/weather-report/internal/model"
	"github.com/fakhrymubarak/weather-report/internal/timefmt"
)

const genericPrecip = "precipitation"

// Options configures a Formatter. Empty patterns fall back to the timefmt presets.
type Options struct {
	Verbose      bool
	HourPattern  string
	ClockPattern string
	DayPattern   string
	Time         timefmt.Formatter
}

type Formatter struct {
	opts Options
}

func NewFormatter(opts Options) *Formatter {
	if opts.HourPattern == "" {
		opts.HourPattern = timefmt.HourLabel
	}
	if opts.ClockPattern == "" {
		opts.ClockPattern = timefmt.ClockTime
	}
	if opts.DayPattern == "" {
		opts.DayPattern = timefmt.DayLabel
	}
	return &Formatter{opts: opts}
}

// Render formats all four sections in report order. On error nothing is returned.
func (f *Formatter) Render(fc *model.Forecast) ([]string, error) {
	hourly, err := f.Hourly(fc.Hourly)
	if err != nil {
		return nil, fmt.Errorf("hourly: %w", err)
	}
	daily, err := f.Daily(fc.Daily)
	if err != nil {
		return nil, fmt.Errorf("daily: %w", err)
	}
	return []string{
		f.Currently(fc.Currently),
		f.Minutely(fc.Minutely),
		hourly,
		daily,
	}, nil
}

func header(title string, summary model.Value) string {
	return fmt.Sprintf("\n%s: \n\t%s", title, summary)
}

// Currently renders the current-conditions block.
func (f *Formatter) Currently(rec model.Record) string {
	return conditionsBlock("currently", rec)
}

func conditionsBlock(title string, rec model.Record) string {
	v := model.Fields(rec, "summary", "temperature", "precipType", "precipProbability")
	return fmt.Sprintf("%s and %s degrees\n\tPossibility of %s: %s",
		header(title, v[0]), v[1], v[2].Or(genericPrecip), v[3])
}

// Minutely renders only the summary sentence.
func (f *Formatter) Minutely(rec model.Record) string {
	return "\t" + rec.Value("summary").String()
}

// Hourly renders the header and, when verbose, one conditions block per hour.
func (f *Formatter) Hourly(rec model.Record) (string, error) {
	var b strings.Builder
	b.WriteString(header("Hourly", rec.Value("summary")))
	if !f.opts.Verbose {
		return b.String(), nil
	}
	entries, err := rec.Entries("data")
	if err != nil {
		return "", err
	}
	for i, entry := range entries {
		title, err := f.opts.Time.Format(f.opts.HourPattern, entry.Value("time"))
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i, err)
		}
		b.WriteString(conditionsBlock(title, entry))
	}
	return b.String(), nil
}

// Daily renders the header and, when verbose, one block per day.
func (f *Formatter) Daily(rec model.Record) (string, error) {
	var b strings.Builder
	b.WriteString(header("Daily", rec.Value("summary")))
	if !f.opts.Verbose {
		return b.String(), nil
	}
	entries, err := rec.Entries("data")
	if err != nil {
		return "", err
	}
	for i, entry := range entries {
		block, err := f.dayBlock(entry)
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i, err)
		}
		b.WriteString(block)
	}
	return b.String(), nil
}

func (f *Formatter) dayBlock(day model.Record) (string, error) {
	v := model.FieldMap(day,
		"time", "summary", "temperatureMin", "temperatureMax",
		"precipType", "precipProbability", "sunriseTime", "sunsetTime")

	date, err := f.opts.Time.Format(f.opts.DayPattern, v["time"])
	if err != nil {
		return "", err
	}
	sunrise, err := f.opts.Time.Format(f.opts.ClockPattern, v["sunriseTime"])
	if err != nil {
		return "", fmt.Errorf("sunrise: %w", err)
	}
	sunset, err := f.opts.Time.Format(f.opts.ClockPattern, v["sunsetTime"])
	if err != nil {
		return "", fmt.Errorf("sunset: %w", err)
	}

	return fmt.Sprintf("\n\t%s:\n\t\t%s\n\t\tBetween %s and %s degrees\n\t\tPossibility of %s: %s\n\t\tSunrise: %s, Sunset: %s\n",
		date, v["summary"], v["temperatureMin"], v["temperatureMax"],
		v["precipType"].Or(genericPrecip), v["precipProbability"], sunrise, sunset), nil
}
