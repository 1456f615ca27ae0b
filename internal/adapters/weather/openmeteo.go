package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/httpx"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/platform/obs"
)

// Open-Meteo serves at most 16 forecast days.
const maxForecastDays = 16

// OpenMeteoProvider fetches daily forecasts from the Open-Meteo API.
// No API key is required. The provider is safe for concurrent use.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
}

func NewOpenMeteoProvider() *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.open-meteo.com",
	}
}

type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeed10mMax  []float64 `json:"wind_speed_10m_max"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

// Forecast returns one ForecastDay per trip day starting at start,
// capped at the provider's 16-day horizon.
func (p *OpenMeteoProvider) Forecast(
	ctx context.Context,
	c domain.Coordinates,
	start time.Time,
	days int,
) (_ []domain.ForecastDay, err error) {
	defer obs.Time(ctx, "weather.Forecast")(&err)

	if days < 1 {
		return nil, fmt.Errorf("forecast: days must be >= 1, got %d", days)
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	endpoint := p.baseURL + "/v1/forecast"
	end := start.AddDate(0, 0, days-1)

	resp, err := httpx.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		params := url.Values{}
		params.Set("latitude", strconv.FormatFloat(c.Lat, 'f', 4, 64))
		params.Set("longitude", strconv.FormatFloat(c.Lon, 'f', 4, 64))
		params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,weather_code")
		params.Set("start_date", start.Format("2006-01-02"))
		params.Set("end_date", end.Format("2006-01-02"))
		params.Set("timezone", "auto")
		req.URL.RawQuery = params.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	d := decoded.Daily
	n := len(d.Time)
	if len(d.Temperature2mMax) != n || len(d.Temperature2mMin) != n ||
		len(d.PrecipitationSum) != n || len(d.WindSpeed10mMax) != n ||
		len(d.WeatherCode) != n {
		return nil, fmt.Errorf(
			"forecast arrays are not aligned: time=%d tmax=%d tmin=%d precip=%d wind=%d code=%d",
			n, len(d.Temperature2mMax), len(d.Temperature2mMin),
			len(d.PrecipitationSum), len(d.WindSpeed10mMax), len(d.WeatherCode),
		)
	}

	out := make([]domain.ForecastDay, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("parse forecast date %q: %w", d.Time[i], err)
		}

		out = append(out, domain.ForecastDay{
			Date:          date,
			TempMax:       d.Temperature2mMax[i],
			TempMin:       d.Temperature2mMin[i],
			Precipitation: d.PrecipitationSum[i],
			WindSpeed:     d.WindSpeed10mMax[i],
			WeatherCode:   d.WeatherCode[i],
		})
	}

	return out, nil
}
