package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// ErrCityNotFound means the upstream does not know the requested city.
var ErrCityNotFound = errors.New("city not found")

const (
	defaultBaseURL = "https://api.openweathermap.org"
	cacheTTL       = 10 * time.Minute
	requestTimeout = 10 * time.Second
)

// Observation is one current-conditions reading.
type Observation struct {
	City        string
	Country     string
	Description string
	Temp        float64
	FeelsLike   float64
	Humidity    int
	PressureHPa int
	WindSpeed   float64
	WindDeg     int
	HasWindDeg  bool
	WindGust    float64
	Cloudiness  int
	Sunrise     int64
	Sunset      int64
	Lat         float64
	Lon         float64
}

// ForecastEntry is one 3-hour slot of the 5-day forecast.
type ForecastEntry struct {
	At          time.Time
	Temp        float64
	FeelsLike   float64
	Humidity    int
	PressureHPa int
	WindSpeed   float64
	Description string
}

type cacheEntry struct {
	at  time.Time
	obs Observation
}

// Client talks to OpenWeatherMap. Current readings are cached per city and
// language; calls go through a circuit breaker so a flapping upstream fails
// fast instead of tying up every firing.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *zap.Logger

	now func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewClient(token string, log *zap.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweathermap",
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
			// An unknown city is the caller's problem, not an upstream
			// failure; it must not trip the breaker.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrCityNotFound)
			},
		}),
		log:   log,
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
}

func apiLang(lang domain.Language) string {
	if lang == domain.LangRU {
		return "ru"
	}
	return "en"
}

// Current fetches current conditions for a city by name.
func (c *Client) Current(ctx context.Context, city string, lang domain.Language) (Observation, error) {
	key := strings.ToLower(strings.TrimSpace(city)) + "|" + string(lang)

	c.mu.Lock()
	if e, ok := c.cache[key]; ok && c.now().Sub(e.at) < cacheTTL {
		c.mu.Unlock()
		return e.obs, nil
	}
	c.mu.Unlock()

	q := url.Values{}
	q.Set("q", strings.TrimSpace(city))
	obs, err := c.fetchCurrent(ctx, q, lang)
	if err != nil {
		return Observation{}, err
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{at: c.now(), obs: obs}
	c.mu.Unlock()
	return obs, nil
}

// CurrentByCoords fetches current conditions for a point. Location-share
// requests are never cached, coordinates are too fine-grained for a city key.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64, lang domain.Language) (Observation, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	return c.fetchCurrent(ctx, q, lang)
}

func (c *Client) fetchCurrent(ctx context.Context, q url.Values, lang domain.Language) (Observation, error) {
	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64  `json:"speed"`
			Deg   *float64 `json:"deg"`
			Gust  float64  `json:"gust"`
		} `json:"wind"`
		Clouds struct {
			All int `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := c.get(ctx, "/data/2.5/weather", q, lang, &payload); err != nil {
		return Observation{}, err
	}

	obs := Observation{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		PressureHPa: int(payload.Main.Pressure),
		WindSpeed:   payload.Wind.Speed,
		WindGust:    payload.Wind.Gust,
		Cloudiness:  payload.Clouds.All,
		Sunrise:     payload.Sys.Sunrise,
		Sunset:      payload.Sys.Sunset,
		Lat:         payload.Coord.Lat,
		Lon:         payload.Coord.Lon,
	}
	if payload.Wind.Deg != nil {
		obs.WindDeg = int(*payload.Wind.Deg)
		obs.HasWindDeg = true
	}
	if len(payload.Weather) > 0 {
		obs.Description = payload.Weather[0].Description
	}
	return obs, nil
}

// Forecast fetches the 5-day 3-hour forecast for a city. Returns the resolved
// city name and the slot list.
func (c *Client) Forecast(ctx context.Context, city string, lang domain.Language) (string, []ForecastEntry, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(city))
	q.Set("cnt", "40")

	var payload struct {
		City struct {
			Name string `json:"name"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				Humidity  int     `json:"humidity"`
				Pressure  float64 `json:"pressure"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := c.get(ctx, "/data/2.5/forecast", q, lang, &payload); err != nil {
		return "", nil, err
	}

	entries := make([]ForecastEntry, 0, len(payload.List))
	for _, it := range payload.List {
		e := ForecastEntry{
			At:          time.Unix(it.Dt, 0).UTC(),
			Temp:        it.Main.Temp,
			FeelsLike:   it.Main.FeelsLike,
			Humidity:    it.Main.Humidity,
			PressureHPa: int(it.Main.Pressure),
			WindSpeed:   it.Wind.Speed,
		}
		if len(it.Weather) > 0 {
			e.Description = it.Weather[0].Description
		}
		entries = append(entries, e)
	}
	return payload.City.Name, entries, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, lang domain.Language, out any) error {
	q.Set("appid", c.token)
	q.Set("units", "metric")
	q.Set("lang", apiLang(lang))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	result, err := c.circuit.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrCityNotFound
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("openweathermap status %d", resp.StatusCode)
		}

		var buf json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&buf); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return buf, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("weather circuit open", zap.String("path", path))
		}
		return err
	}
	return json.Unmarshal(result.(json.RawMessage), out)
}
