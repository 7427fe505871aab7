package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleSnapshot() *domain.MarketSnapshot {
	return &domain.MarketSnapshot{
		Cereals: []domain.MarketQuote{
			{Name: "Wheat", Price: 2130, Change: 5},
		},
		Vegetables: []domain.MarketQuote{
			{Name: "Tomato", Price: 27, Change: -2, Unit: "kg"},
		},
		Pulses: []domain.MarketQuote{
			{Name: "Moong", Price: 7150, Change: 40},
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestMarketCache_GetSnapshot_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewMarketCache(client, 5*time.Minute)

	snapshot := sampleSnapshot()
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	// Set data directly in miniredis.
	require.NoError(t, mr.Set("market:snapshot", string(data)))

	got, err := cache.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Cereals, 1)
	assert.Equal(t, "Wheat", got.Cereals[0].Name)
	assert.Equal(t, 2130, got.Cereals[0].Price)
	assert.Equal(t, "kg", got.Vegetables[0].Unit)
	assert.True(t, snapshot.UpdatedAt.Equal(got.UpdatedAt))
}

func TestMarketCache_GetSnapshot_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewMarketCache(client, 5*time.Minute)

	_, err := cache.GetSnapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarketCache_SaveSnapshot_SetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewMarketCache(client, 5*time.Minute)

	require.NoError(t, cache.SaveSnapshot(context.Background(), sampleSnapshot()))

	assert.True(t, mr.Exists("market:snapshot"))
	assert.Equal(t, 5*time.Minute, mr.TTL("market:snapshot"))
}

func TestMarketCache_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewMarketCache(client, 5*time.Minute)

	snapshot := sampleSnapshot()
	require.NoError(t, cache.SaveSnapshot(context.Background(), snapshot))

	got, err := cache.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot.Pulses, got.Pulses)
}

func TestWeatherCache_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewWeatherCache(client, 10*time.Minute)

	report := &domain.WeatherReport{
		Current: domain.CurrentWeather{
			Temp:      29,
			Humidity:  64,
			Condition: "Scattered Clouds",
			Location:  "Your Current Location",
		},
		Forecast: []domain.ForecastDay{
			{Day: "Today", Icon: "☁️", High: 31, Low: 25, Rain: 40},
		},
	}

	require.NoError(t, cache.SaveReport(context.Background(), "28.61:77.21", report))
	assert.True(t, mr.Exists("weather:28.61:77.21"))
	assert.Equal(t, 10*time.Minute, mr.TTL("weather:28.61:77.21"))

	got, err := cache.GetReport(context.Background(), "28.61:77.21")
	require.NoError(t, err)
	assert.Equal(t, report.Current, got.Current)
	require.Len(t, got.Forecast, 1)
	assert.Equal(t, "Today", got.Forecast[0].Day)
}

func TestWeatherCache_GetReport_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewWeatherCache(client, 10*time.Minute)

	_, err := cache.GetReport(context.Background(), "0.00:0.00")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWeatherCache_KeysAreIndependentPerLocation(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewWeatherCache(client, 10*time.Minute)

	delhi := &domain.WeatherReport{Current: domain.CurrentWeather{Temp: 29}}
	pune := &domain.WeatherReport{Current: domain.CurrentWeather{Temp: 24}}

	require.NoError(t, cache.SaveReport(context.Background(), "28.61:77.21", delhi))
	require.NoError(t, cache.SaveReport(context.Background(), "18.52:73.86", pune))

	got, err := cache.GetReport(context.Background(), "18.52:73.86")
	require.NoError(t, err)
	assert.Equal(t, 24, got.Current.Temp)
}
