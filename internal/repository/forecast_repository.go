package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/weather-report/internal/config"
	"github.com/fakhrymubarak/weather-report/internal/model"
)

// ForecastRepository defines the interface for forecast data access
type ForecastRepository interface {
	GetForecast(ctx context.Context, apiKey string, loc model.Location) (*model.Forecast, error)
}

// forecastRepository implements ForecastRepository
type forecastRepository struct {
	cache      Cache
	httpClient *http.Client
	baseURL    string
	units      string
	expiration time.Duration
}

// NewForecastRepository creates a forecast repository. A nil redisClient disables caching.
func NewForecastRepository(redisClient *redisv9.Client, httpClient ...*http.Client) ForecastRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &forecastRepository{
		cache:      cacheOf(redisClient),
		httpClient: client,
		baseURL:    config.GetForecastApiUrl(),
		units:      config.GetForecastUnits(),
		expiration: config.GetCacheExpiration(),
	}
}

// GetForecast returns the forecast for loc, checking the cache before making one API request.
func (r *forecastRepository) GetForecast(ctx context.Context, apiKey string, loc model.Location) (*model.Forecast, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	cacheKey := r.cacheKey(apiKey, loc)
	if body, err := r.getFromCache(ctx, cacheKey); err == nil {
		if forecast, err := model.DecodeForecast(body); err == nil {
			config.GetLogger().Debugw("forecast cache hit", "key", cacheKey)
			return forecast, nil
		}
	}

	body, err := r.fetchFromExternalAPI(ctx, apiKey, loc)
	if err != nil {
		return nil, err
	}
	forecast, err := model.DecodeForecast(body)
	if err != nil {
		return nil, err
	}

	r.cacheForecast(ctx, cacheKey, body)
	return forecast, nil
}

func (r *forecastRepository) forecastURL(apiKey string, loc model.Location) string {
	u := fmt.Sprintf("%s/%s/%s,%s", r.baseURL, url.PathEscape(apiKey),
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	if r.units != "" {
		u += "?" + url.Values{"units": {r.units}}.Encode()
	}
	return u
}

// fetchFromExternalAPI issues the single forecast request and returns the raw body.
func (r *forecastRepository) fetchFromExternalAPI(ctx context.Context, apiKey string, loc model.Location) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.forecastURL(apiKey, loc), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAPI, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrExternalAPI, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrExternalAPI, err)
	}
	return body, nil
}

// cacheKey scopes entries to the API key so a body cached under one key is never served to another.
func (r *forecastRepository) cacheKey(apiKey string, loc model.Location) string {
	sum := sha256.Sum256([]byte(apiKey))
	return fmt.Sprintf("forecast:%.4f,%.4f:%s:%x", loc.Latitude, loc.Longitude, r.units, sum[:8])
}

// getFromCache retrieves a raw forecast body from Redis
func (r *forecastRepository) getFromCache(ctx context.Context, key string) ([]byte, error) {
	if r.cache == nil {
		return nil, redisv9.Nil
	}
	return r.cache.Get(ctx, key).Bytes()
}

// cacheForecast stores the raw body; failures only cost a future cache miss.
func (r *forecastRepository) cacheForecast(ctx context.Context, key string, body []byte) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, body, r.expiration).Err(); err != nil {
		config.GetLogger().Debugw("forecast cache write failed", "key", key, "error", err)
	}
}
