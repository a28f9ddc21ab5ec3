package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("forecast.api_url", "https://api.forecast.io/forecast")
	viper.SetDefault("forecast.timeout", "15s")
	viper.SetDefault("forecast.units", "")
	viper.SetDefault("geocoder.api_url", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("geocoder.user_agent", "weather-report/1.0")
	viper.SetDefault("geocoder.rate", 1.0)
	viper.SetDefault("geocoder.burst", 1)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.expiration", "10m")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("format.hour", "%a %I O'Clock %p")
	viper.SetDefault("format.clock", "%I:%M %p")
	viper.SetDefault("format.day", "%A %b %d")
	viper.SetDefault("format.placeholder", "?")
	viper.SetDefault("log.level", "info")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// An installed binary has no project root; defaults cover that case.
		root, err := getProjectRoot()
		if err != nil {
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Debugw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Debugw("Error reading test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetForecastApiUrl() string {
	initConfig()
	return strings.TrimRight(viper.GetString("forecast.api_url"), "/")
}

// GetForecastAPIKey returns the Dark Sky key from the environment, loading .env first.
func GetForecastAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("DARKSKY_API_KEY")
}

// GetForecastTimeout returns the deadline for one forecast run. Defaults to 15s if not set or invalid.
func GetForecastTimeout() time.Duration {
	initConfig()
	return getDuration("forecast.timeout", 15*time.Second)
}

func GetForecastUnits() string {
	initConfig()
	return viper.GetString("forecast.units")
}

func GetGeocoderApiUrl() string {
	initConfig()
	return viper.GetString("geocoder.api_url")
}

func GetGeocoderUserAgent() string {
	initConfig()
	return viper.GetString("geocoder.user_agent")
}

// GetGeocoderRateLimiterConfig returns the rate (requests per second) and burst for outbound geocoder calls.
func GetGeocoderRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("geocoder.rate")
	if rate <= 0 {
		rate = 1
	}
	burst = viper.GetInt("geocoder.burst")
	if burst <= 0 {
		burst = 1
	}
	return
}

func GetCacheEnabled() bool {
	initConfig()
	return viper.GetBool("cache.enabled")
}

// GetCacheExpiration returns how long cached forecasts and locations live. Defaults to 10m.
func GetCacheExpiration() time.Duration {
	initConfig()
	return getDuration("cache.expiration", 10*time.Minute)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

// GetFormatPattern returns the strftime pattern configured under format.<key> (hour, clock or day).
func GetFormatPattern(key string) string {
	initConfig()
	return viper.GetString("format." + key)
}

func GetPlaceholder() string {
	initConfig()
	return viper.GetString("format.placeholder")
}

func getDuration(key string, def time.Duration) time.Duration {
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil || dur <= 0 {
		return def
	}
	return dur
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// GetLogger returns the process logger. It writes to stderr so stdout only carries the report.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel())
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// logLevel reads log.level without going through initConfig, which itself logs.
func logLevel() zapcore.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		raw = viper.GetString("log.level")
	}
	lvl, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
