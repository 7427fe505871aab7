package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/internal/repository"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

// maxForecastDays caps the daily forecast length returned to clients.
const maxForecastDays = 10

// weatherIcons maps upstream condition descriptions to display icons.
var weatherIcons = map[string]string{
	"clear sky":        "☀️",
	"few clouds":       "⛅",
	"scattered clouds": "☁️",
	"broken clouds":    "☁️",
	"overcast clouds":  "☁️",
	"shower rain":      "\U0001f327️",
	"rain":             "\U0001f327️",
	"light rain":       "\U0001f327️",
	"thunderstorm":     "⛈️",
	"snow":             "❄️",
	"mist":             "\U0001f32b️",
}

const unknownWeatherIcon = "❓"

// WeatherGetter performs HTTP GETs against the upstream weather provider.
// Satisfied by pkg/httpclient's CircuitBreakerClient.
type WeatherGetter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// oneCallResponse mirrors the subset of the OpenWeather One Call payload we use.
type oneCallResponse struct {
	Current struct {
		Temp      float64 `json:"temp"`
		Humidity  int     `json:"humidity"`
		WindSpeed float64 `json:"wind_speed"`
		UVI       float64 `json:"uvi"`
		Rain      struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Max float64 `json:"max"`
			Min float64 `json:"min"`
		} `json:"temp"`
		Pop     float64 `json:"pop"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
}

// WeatherService proxies the OpenWeather One Call API, shaping the payload
// for farm dashboards and caching reports per location.
type WeatherService struct {
	client  WeatherGetter
	cache   repository.WeatherCache
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewWeatherService creates a new weather service.
func NewWeatherService(client WeatherGetter, cache repository.WeatherCache, baseURL, apiKey string, logger *slog.Logger) *WeatherService {
	return &WeatherService{
		client:  client,
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// GetWeather returns current conditions and the daily forecast for the
// given coordinates.
func (s *WeatherService) GetWeather(ctx context.Context, lat, lon float64) (*domain.WeatherReport, error) {
	if lat < -90 || lat > 90 {
		return nil, apperrors.InvalidInput("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, apperrors.InvalidInput("longitude must be between -180 and 180")
	}

	locationKey := fmt.Sprintf("%.2f:%.2f", lat, lon)

	if s.cache != nil {
		if report, err := s.cache.GetReport(ctx, locationKey); err == nil {
			return report, nil
		}
	}

	report, err := s.fetch(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveReport(ctx, locationKey, report); err != nil {
			s.logger.WarnContext(ctx, "failed to cache weather report",
				slog.String("location", locationKey),
				slog.String("error", err.Error()),
			)
		}
	}

	return report, nil
}

// fetch calls the upstream One Call endpoint and shapes the response.
func (s *WeatherService) fetch(ctx context.Context, lat, lon float64) (*domain.WeatherReport, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))
	query.Set("appid", s.apiKey)
	query.Set("units", "metric")
	query.Set("exclude", "minutely,hourly,alerts")

	endpoint := s.baseURL + "/onecall?" + query.Encode()

	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		s.logger.ErrorContext(ctx, "weather upstream request failed",
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Unavailable("weather service is temporarily unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.ErrorContext(ctx, "weather upstream returned non-200",
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.Unavailable("weather service is temporarily unavailable")
	}

	var payload oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	return shapeReport(&payload), nil
}

// shapeReport converts the upstream payload into the dashboard report.
func shapeReport(payload *oneCallResponse) *domain.WeatherReport {
	condition := ""
	if len(payload.Current.Weather) > 0 {
		condition = payload.Current.Weather[0].Description
	}

	report := &domain.WeatherReport{
		Current: domain.CurrentWeather{
			Temp:      int(math.Round(payload.Current.Temp)),
			Humidity:  payload.Current.Humidity,
			Condition: titleCase(condition),
			WindSpeed: int(math.Round(payload.Current.WindSpeed)),
			Rainfall:  int(math.Round(payload.Current.Rain.OneHour)),
			UVIndex:   payload.Current.UVI,
			Location:  "Your Current Location",
		},
	}

	days := payload.Daily
	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}

	report.Forecast = make([]domain.ForecastDay, 0, len(days))
	for i, d := range days {
		description := ""
		if len(d.Weather) > 0 {
			description = d.Weather[0].Description
		}

		day := "Today"
		if i > 0 {
			day = time.Unix(d.Dt, 0).UTC().Format("Mon")
		}

		report.Forecast = append(report.Forecast, domain.ForecastDay{
			Day:  day,
			Icon: iconFor(description),
			High: int(math.Round(d.Temp.Max)),
			Low:  int(math.Round(d.Temp.Min)),
			Rain: int(math.Round(d.Pop * 100)),
		})
	}

	return report
}

// iconFor maps a condition description to its display icon.
func iconFor(description string) string {
	if icon, ok := weatherIcons[strings.ToLower(description)]; ok {
		return icon
	}
	return unknownWeatherIcon
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
