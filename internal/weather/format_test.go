package weather

import (
	"strings"
	"testing"
	"time"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

func baseObs() Observation {
	return Observation{
		City:        "Moscow",
		Country:     "RU",
		Description: "ясно",
		Temp:        21.5,
		FeelsLike:   20,
		Humidity:    40,
		PressureHPa: 1013,
		WindSpeed:   3.2,
		WindDeg:     90,
		HasWindDeg:  true,
		WindGust:    7.5,
		Cloudiness:  15,
		Sunrise:     1718931600, // 2024-06-21 01:00 UTC
		Sunset:      1718996400, // 2024-06-21 19:00 UTC
	}
}

func TestRender_BaseBlockRU(t *testing.T) {
	text := Render(baseObs(), domain.LangRU, nil, "UTC+0", domain.PressureMmHg)

	for _, want := range []string{
		"🌤 Погода в городе Moscow:",
		"🌡 Температура: 21.5°C (ощущается как 20°C)",
		"💧 Влажность: 40%",
		"760 мм рт. ст.", // 1013 hPa
		"💨 Скорость ветра: 3.2 м/с",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Дополнительные данные") {
		t.Error("feature block rendered with no features enabled")
	}
}

func TestRender_PressureUnits(t *testing.T) {
	obs := baseObs()
	en := Render(obs, domain.LangEN, nil, "UTC+0", domain.PressureHPa)
	if !strings.Contains(en, "1013 hPa") {
		t.Errorf("hPa not rendered: %s", en)
	}
	if !strings.Contains(Render(obs, domain.LangEN, nil, "UTC+0", domain.PressureMmHg), "760 mmHg") {
		t.Error("mmHg not rendered")
	}
}

func TestRender_Features(t *testing.T) {
	features := domain.FeatureSet{
		domain.FeatureCloudiness:    true,
		domain.FeatureWindDirection: true,
		domain.FeatureWindGust:      true,
	}
	text := Render(baseObs(), domain.LangEN, features, "UTC+0", domain.PressureHPa)

	for _, want := range []string{
		"📊 Additional data:",
		"☁️ Cloudiness: 15%",
		"🧭 Wind direction: ➡️ East", // 90°
		"💨 Wind gust: 7.5 m/s",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Sunrise") {
		t.Error("sunrise rendered without the feature")
	}
}

func TestRender_SunriseInReportTimezone(t *testing.T) {
	features := domain.FeatureSet{domain.FeatureSunriseSunset: true}
	obs := baseObs()

	utc := Render(obs, domain.LangEN, features, "UTC+0", domain.PressureHPa)
	if !strings.Contains(utc, "🌅 Sunrise: 01:00") {
		t.Errorf("UTC sunrise wrong:\n%s", utc)
	}
	msk := Render(obs, domain.LangEN, features, "Europe/Moscow", domain.PressureHPa)
	if !strings.Contains(msk, "🌅 Sunrise: 04:00") {
		t.Errorf("Moscow sunrise wrong:\n%s", msk)
	}
}

func TestRender_SkipsWindDirectionWithoutDegrees(t *testing.T) {
	obs := baseObs()
	obs.HasWindDeg = false
	text := Render(obs, domain.LangEN, domain.FeatureSet{domain.FeatureWindDirection: true}, "UTC+0", domain.PressureHPa)
	if strings.Contains(text, "Wind direction") {
		t.Error("direction rendered without degree data")
	}
}

func TestSummarizeDays(t *testing.T) {
	day1 := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	entries := []ForecastEntry{
		{At: day1.Add(6 * time.Hour), Temp: 12, Description: "morning"},
		{At: day1.Add(13 * time.Hour), Temp: 22, Humidity: 35, WindSpeed: 4, Description: "midday"},
		{At: day1.Add(21 * time.Hour), Temp: 16, Description: "evening"},
		{At: day1.Add(27 * time.Hour), Temp: 10, Description: "next morning"},
	}

	days := SummarizeDays(entries, time.UTC)
	if len(days) != 2 {
		t.Fatalf("days = %d", len(days))
	}
	d := days[0]
	if d.TempMin != 12 || d.TempMax != 22 {
		t.Errorf("min/max = %v/%v", d.TempMin, d.TempMax)
	}
	// The early-afternoon slot represents the day.
	if d.Description != "midday" || d.TempDay != 22 {
		t.Errorf("representative slot: %+v", d)
	}
	if days[1].Description != "next morning" {
		t.Errorf("second day: %+v", days[1])
	}
}

func TestSummarizeDays_SplitsByLocalDate(t *testing.T) {
	// 23:00 UTC is already the next day in Moscow (UTC+3).
	at := time.Date(2024, 6, 21, 23, 0, 0, 0, time.UTC)
	entries := []ForecastEntry{
		{At: at, Temp: 10},
		{At: at.Add(3 * time.Hour), Temp: 12},
	}
	msk, _ := domain.LoadZone("Europe/Moscow")
	if days := SummarizeDays(entries, msk); len(days) != 1 {
		t.Fatalf("Moscow days = %d, want 1", len(days))
	}
	if days := SummarizeDays(entries, time.UTC); len(days) != 2 {
		t.Fatalf("UTC days = %d, want 2", len(days))
	}
}

func TestRenderForecast(t *testing.T) {
	days := []DailySummary{{
		Date:        time.Date(2024, 6, 21, 13, 0, 0, 0, time.UTC),
		TempMin:     12,
		TempMax:     22,
		Humidity:    35,
		WindSpeed:   4,
		Description: "clear sky",
	}}
	text := RenderForecast("Paris", days, domain.LangEN)
	if !strings.Contains(text, "Weather forecast for Paris") || !strings.Contains(text, "21.06: clear sky, 🌡 12…22°C") {
		t.Errorf("forecast text:\n%s", text)
	}
}
