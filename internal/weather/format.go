package weather

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// mmHg per hPa.
const mmHgFactor = 0.750062

var windArrowsRU = []string{
	"⬆️ Северный", "↗️ Северо-восточный", "➡️ Восточный", "↘️ Юго-восточный",
	"⬇️ Южный", "↙️ Юго-западный", "⬅️ Западный", "↖️ Северо-западный",
}

var windArrowsEN = []string{
	"⬆️ North", "↗️ Northeast", "➡️ East", "↘️ Southeast",
	"⬇️ South", "↙️ Southwest", "⬅️ West", "↖️ Northwest",
}

// Report fetches current conditions for the region and renders them. It is
// the entry point the notification dispatcher uses.
func (c *Client) Report(ctx context.Context, region string, lang domain.Language, features domain.FeatureSet, tz string, unit domain.PressureUnit) (string, error) {
	obs, err := c.Current(ctx, region, lang)
	if err != nil {
		return "", err
	}
	return Render(obs, lang, features, tz, unit), nil
}

// Render builds the user-facing report. Sunrise and sunset are shown on the
// clock of the given timezone.
func Render(obs Observation, lang domain.Language, features domain.FeatureSet, tz string, unit domain.PressureUnit) string {
	ru := lang == domain.LangRU

	var b strings.Builder
	if ru {
		fmt.Fprintf(&b, "🌤 Погода в городе %s:\n\n", obs.City)
		fmt.Fprintf(&b, "🌡 Температура: %s°C (ощущается как %s°C)\n", num(obs.Temp), num(obs.FeelsLike))
		fmt.Fprintf(&b, "📖 Описание: %s\n", obs.Description)
		fmt.Fprintf(&b, "💧 Влажность: %d%%\n", obs.Humidity)
		fmt.Fprintf(&b, "🔽 Давление: %s\n", pressure(obs.PressureHPa, unit, lang))
		fmt.Fprintf(&b, "💨 Скорость ветра: %s м/с", num(obs.WindSpeed))
	} else {
		fmt.Fprintf(&b, "🌤 Weather in %s:\n\n", obs.City)
		fmt.Fprintf(&b, "🌡 Temperature: %s°C (feels like %s°C)\n", num(obs.Temp), num(obs.FeelsLike))
		fmt.Fprintf(&b, "📖 Description: %s\n", obs.Description)
		fmt.Fprintf(&b, "💧 Humidity: %d%%\n", obs.Humidity)
		fmt.Fprintf(&b, "🔽 Pressure: %s\n", pressure(obs.PressureHPa, unit, lang))
		fmt.Fprintf(&b, "💨 Wind speed: %s m/s", num(obs.WindSpeed))
	}

	var extra strings.Builder
	if features.Enabled(domain.FeatureCloudiness) {
		if ru {
			fmt.Fprintf(&extra, "\n☁️ Облачность: %d%%", obs.Cloudiness)
		} else {
			fmt.Fprintf(&extra, "\n☁️ Cloudiness: %d%%", obs.Cloudiness)
		}
	}
	if features.Enabled(domain.FeatureWindDirection) && obs.HasWindDeg {
		idx := int(math.Round(float64(obs.WindDeg)/45)) % 8
		if ru {
			fmt.Fprintf(&extra, "\n🧭 Направление ветра: %s", windArrowsRU[idx])
		} else {
			fmt.Fprintf(&extra, "\n🧭 Wind direction: %s", windArrowsEN[idx])
		}
	}
	if features.Enabled(domain.FeatureWindGust) && obs.WindGust > 0 {
		if ru {
			fmt.Fprintf(&extra, "\n💨 Порывы ветра: %s м/с", num(obs.WindGust))
		} else {
			fmt.Fprintf(&extra, "\n💨 Wind gust: %s m/s", num(obs.WindGust))
		}
	}
	if features.Enabled(domain.FeatureSunriseSunset) && obs.Sunrise > 0 && obs.Sunset > 0 {
		loc, err := domain.LoadZone(tz)
		if err != nil {
			loc = time.UTC
		}
		sunrise := time.Unix(obs.Sunrise, 0).In(loc).Format("15:04")
		sunset := time.Unix(obs.Sunset, 0).In(loc).Format("15:04")
		if ru {
			fmt.Fprintf(&extra, "\n🌅 Восход солнца: %s\n🌇 Закат солнца: %s", sunrise, sunset)
		} else {
			fmt.Fprintf(&extra, "\n🌅 Sunrise: %s\n🌇 Sunset: %s", sunrise, sunset)
		}
	}

	if extra.Len() > 0 {
		if ru {
			b.WriteString("\n\n📊 Дополнительные данные:")
		} else {
			b.WriteString("\n\n📊 Additional data:")
		}
		b.WriteString(extra.String())
	}
	return b.String()
}

// DailySummary is one day of the 5-day forecast, aggregated from its 3-hour
// slots.
type DailySummary struct {
	Date        time.Time
	TempMin     float64
	TempMax     float64
	TempDay     float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Description string
}

// SummarizeDays groups forecast slots into per-day summaries on the clock of
// loc. The representative slot is the early-afternoon one when present.
func SummarizeDays(entries []ForecastEntry, loc *time.Location) []DailySummary {
	byDate := make(map[string][]ForecastEntry)
	var order []string
	for _, e := range entries {
		d := e.At.In(loc).Format("2006-01-02")
		if _, ok := byDate[d]; !ok {
			order = append(order, d)
		}
		byDate[d] = append(byDate[d], e)
	}

	out := make([]DailySummary, 0, len(order))
	for _, d := range order {
		slots := byDate[d]
		rep := slots[0]
		for _, s := range slots {
			h := s.At.In(loc).Hour()
			if h >= 12 && h <= 15 {
				rep = s
				break
			}
		}
		sum := DailySummary{
			Date:        rep.At.In(loc),
			TempMin:     slots[0].Temp,
			TempMax:     slots[0].Temp,
			TempDay:     rep.Temp,
			FeelsLike:   rep.FeelsLike,
			Humidity:    rep.Humidity,
			WindSpeed:   rep.WindSpeed,
			Description: rep.Description,
		}
		for _, s := range slots {
			if s.Temp < sum.TempMin {
				sum.TempMin = s.Temp
			}
			if s.Temp > sum.TempMax {
				sum.TempMax = s.Temp
			}
		}
		out = append(out, sum)
	}
	return out
}

// RenderForecast builds the multi-day forecast message.
func RenderForecast(city string, days []DailySummary, lang domain.Language) string {
	ru := lang == domain.LangRU

	var b strings.Builder
	if ru {
		fmt.Fprintf(&b, "📅 Прогноз погоды в городе %s:\n", city)
	} else {
		fmt.Fprintf(&b, "📅 Weather forecast for %s:\n", city)
	}
	for _, d := range days {
		date := d.Date.Format("02.01")
		if ru {
			fmt.Fprintf(&b, "\n%s: %s, 🌡 %s…%s°C, 💧 %d%%, 💨 %s м/с",
				date, d.Description, num(d.TempMin), num(d.TempMax), d.Humidity, num(d.WindSpeed))
		} else {
			fmt.Fprintf(&b, "\n%s: %s, 🌡 %s…%s°C, 💧 %d%%, 💨 %s m/s",
				date, d.Description, num(d.TempMin), num(d.TempMax), d.Humidity, num(d.WindSpeed))
		}
	}
	return b.String()
}

func pressure(hpa int, unit domain.PressureUnit, lang domain.Language) string {
	ru := lang == domain.LangRU
	if unit == domain.PressureMmHg {
		mm := int(math.Round(float64(hpa) * mmHgFactor))
		if ru {
			return fmt.Sprintf("%d мм рт. ст.", mm)
		}
		return fmt.Sprintf("%d mmHg", mm)
	}
	if ru {
		return fmt.Sprintf("%d гПа", hpa)
	}
	return fmt.Sprintf("%d hPa", hpa)
}

// num prints a reading without trailing zeros, the way the upstream reports
// it.
func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
