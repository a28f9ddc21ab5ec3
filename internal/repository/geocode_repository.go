package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/weather-report/internal/config"
	"github.com/fakhrymubarak/weather-report/internal/model"
)

// GeocodeRepository resolves a free-text address to one location.
type GeocodeRepository interface {
	Geocode(ctx context.Context, address string) (*model.Location, error)
}

// nominatimResponse is shaped for the search API response
type nominatimResponse []struct {
	PlaceID     int64   `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
	DisplayName string  `json:"display_name"`
}

type geocodeRepository struct {
	cache      Cache
	httpClient *http.Client
	baseURL    string
	userAgent  string
	expiration time.Duration
}

// NewGeocodeRepository creates a Nominatim-backed geocoder. A nil redisClient disables caching.
func NewGeocodeRepository(redisClient *redisv9.Client, httpClient ...*http.Client) GeocodeRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &geocodeRepository{
		cache:      cacheOf(redisClient),
		httpClient: client,
		baseURL:    config.GetGeocoderApiUrl(),
		userAgent:  config.GetGeocoderUserAgent(),
		expiration: config.GetCacheExpiration(),
	}
}

// Geocode returns the best match for address.
func (r *geocodeRepository) Geocode(ctx context.Context, address string) (*model.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrLocationNotFound)
	}

	cacheKey := "geocode:" + strings.ToLower(address)
	if loc, err := r.getFromCache(ctx, cacheKey); err == nil {
		return loc, nil
	}

	loc, err := r.search(ctx, address)
	if err != nil {
		return nil, err
	}
	r.cacheLocation(ctx, cacheKey, loc)
	return loc, nil
}

func (r *geocodeRepository) search(ctx context.Context, address string) (*model.Location, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocoder, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocoder, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status: %s", ErrGeocoder, resp.Status)
	}

	var results nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocoder, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", ErrLocationNotFound, address)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", ErrGeocoder, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", ErrGeocoder, first.Lon)
	}
	return &model.Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: first.DisplayName,
	}, nil
}

func (r *geocodeRepository) getFromCache(ctx context.Context, key string) (*model.Location, error) {
	if r.cache == nil {
		return nil, redisv9.Nil
	}
	val, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var loc model.Location
	if err := json.Unmarshal([]byte(val), &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *geocodeRepository) cacheLocation(ctx context.Context, key string, loc *model.Location) {
	if r.cache == nil {
		return
	}
	if b, err := json.Marshal(loc); err == nil {
		_ = r.cache.Set(ctx, key, b, r.expiration).Err()
	}
}
