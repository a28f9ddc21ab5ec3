package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-report/internal/config"
	"github.com/fakhrymubarak/weather-report/internal/middleware"
	"github.com/fakhrymubarak/weather-report/internal/redis"
	"github.com/fakhrymubarak/weather-report/internal/report"
	"github.com/fakhrymubarak/weather-report/internal/repository"
	"github.com/fakhrymubarak/weather-report/internal/service"
	"github.com/fakhrymubarak/weather-report/internal/timefmt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(err, config.GetLogger()))
}

// exitCode reports a failed run once through log and maps it to the process status.
func exitCode(err error, log *zap.SugaredLogger) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	log.Errorw("weather report failed", "error", err)
	return 1
}

func parseFlags(args []string, stderr io.Writer) (service.Options, error) {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		address      = fs.String("address", "", "enter an address to get long and lat")
		addressShort = fs.String("a", "", "shorthand for -address")
		key          = fs.String("key", "", "api key for darksky, defaults to $DARKSKY_API_KEY")
		keyShort     = fs.String("k", "", "shorthand for -key")
		verbose      = fs.Bool("verbose", false, "verbose hourly and daily reports")
		verboseShort = fs.Bool("v", false, "shorthand for -verbose")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("WEATHER")); err != nil {
		return service.Options{}, err
	}

	opts := service.Options{
		Address: firstNonEmpty(*addressShort, *address),
		APIKey:  firstNonEmpty(*keyShort, *key, config.GetForecastAPIKey()),
		Verbose: *verbose || *verboseShort,
	}
	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, config.GetForecastTimeout())
	defer cancel()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	defer transport.CloseIdleConnections()
	forecastClient := &http.Client{Transport: transport}
	perSecond, burst := config.GetGeocoderRateLimiterConfig()
	geoClient := &http.Client{Transport: middleware.NewRateLimitedTransport(transport, perSecond, burst)}

	rdb := redis.GetClient()
	defer func() {
		if err := redis.Close(); err != nil {
			config.GetLogger().Debugw("closing cache client", "error", err)
		}
	}()

	formatter := report.NewFormatter(report.Options{
		Verbose:      opts.Verbose,
		HourPattern:  config.GetFormatPattern("hour"),
		ClockPattern: config.GetFormatPattern("clock"),
		DayPattern:   config.GetFormatPattern("day"),
		Time:         timefmt.Formatter{},
	})

	svc := service.NewReportService(
		repository.NewGeocodeRepository(rdb, geoClient),
		repository.NewForecastRepository(rdb, forecastClient),
		formatter,
		stdout,
	)
	svc.Placeholder = report.PlaceholderRune(config.GetPlaceholder())
	return svc.Run(ctx, opts)
}
