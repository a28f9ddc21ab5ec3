package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fakhrymubarak/weather-report/internal/config"
	"github.com/fakhrymubarak/weather-report/internal/model"
	"github.com/fakhrymubarak/weather-report/internal/report"
	"github.com/fakhrymubarak/weather-report/internal/repository"
)

var ErrAddressMissing = errors.New("address is required")

// Options is the parsed command line of one run.
type Options struct {
	Address string
	APIKey  string
	Verbose bool
}

// Renderer formats a forecast into console blocks.
type Renderer interface {
	Render(f *model.Forecast) ([]string, error)
}

// ReportService runs geocode, fetch, format and print, in that order.
type ReportService struct {
	Geocoder    repository.GeocodeRepository
	Forecasts   repository.ForecastRepository
	Renderer    Renderer
	Out         io.Writer
	Placeholder rune
}

// NewReportService wires a service writing to out.
func NewReportService(geo repository.GeocodeRepository, forecasts repository.ForecastRepository, renderer Renderer, out io.Writer) *ReportService {
	return &ReportService{
		Geocoder:    geo,
		Forecasts:   forecasts,
		Renderer:    renderer,
		Out:         out,
		Placeholder: report.DefaultPlaceholder,
	}
}

// Run produces one report. Any failure aborts the run before anything is printed.
func (s *ReportService) Run(ctx context.Context, opts Options) error {
	log := config.GetLogger()

	address := strings.TrimSpace(opts.Address)
	if address == "" {
		return ErrAddressMissing
	}

	log.Debugw("geocoding", "address", address)
	loc, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		return fmt.Errorf("geocode %q: %w", address, err)
	}

	log.Debugw("fetching forecast", "lat", loc.Latitude, "lon", loc.Longitude, "place", loc.DisplayName)
	forecast, err := s.Forecasts.GetForecast(ctx, opts.APIKey, *loc)
	if err != nil {
		return fmt.Errorf("fetch forecast: %w", err)
	}

	blocks, err := s.Renderer.Render(forecast)
	if err != nil {
		return fmt.Errorf("format report: %w", err)
	}

	log.Debugw("printing report", "blocks", len(blocks))
	for _, block := range blocks {
		if _, err := fmt.Fprintln(s.Out, report.Sanitize(block, s.Placeholder)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
