package domain

// CurrentWeather holds present conditions for the requested location.
type CurrentWeather struct {
	Temp      int     `json:"temp"`
	Humidity  int     `json:"humidity"`
	Condition string  `json:"condition"`
	WindSpeed int     `json:"wind_speed"`
	Rainfall  int     `json:"rainfall"`
	UVIndex   float64 `json:"uv_index"`
	Location  string  `json:"location"`
}

// ForecastDay is a single day entry in the weather forecast.
type ForecastDay struct {
	Day  string `json:"day"`
	Icon string `json:"icon"`
	High int    `json:"high"`
	Low  int    `json:"low"`
	Rain int    `json:"rain"`
}

// WeatherReport combines current conditions with the daily forecast.
type WeatherReport struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
}
