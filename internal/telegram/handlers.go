package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
	"github.com/aadvantures228-boop/Weather-Main/internal/weather"
)

// lang reads the user's language, falling back to the default on storage
// errors so every reply stays answerable.
func (r *Router) lang(ctx context.Context, chatID int64) domain.Language {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Warn("profile read failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return domain.LangRU
	}
	return prof.Language
}

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile init failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, "⚠️ Initialization error, try again later")
		return
	}
	r.sendWithKeyboard(chatID, startText(prof.Language), mainMenuKeyboard(prof.Language))
}

func (r *Router) handleHelp(ctx context.Context, chatID int64) {
	r.sendText(chatID, helpText(r.lang(ctx, chatID)))
}

// --- Weather ---

func (r *Router) handleWeatherCommand(ctx context.Context, chatID int64, arg string) {
	if arg != "" {
		r.clearPending(chatID)
		r.showWeather(ctx, chatID, arg)
		return
	}
	r.setPending(chatID, pendingWeatherCity, "")
	r.sendText(chatID, askCityText(r.lang(ctx, chatID)))
}

func (r *Router) showWeather(ctx context.Context, chatID int64, city string) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}

	obs, err := r.weather.Current(ctx, city, prof.Language)
	if errors.Is(err, weather.ErrCityNotFound) {
		r.sendText(chatID, cityNotFoundText(prof.Language, city))
		return
	}
	if err != nil {
		r.log.Warn("weather fetch failed", zap.String("city", city), zap.Error(err))
		r.sendText(chatID, weatherFailedText(prof.Language))
		return
	}

	if err := r.repo.AddHistory(ctx, chatID, obs.City); err != nil {
		r.log.Warn("history append failed", zap.Error(err))
	}

	text := weather.Render(obs, prof.Language, prof.Features, prof.Timezone, prof.Pressure)
	r.sendWithKeyboard(chatID, text, saveFavoriteKeyboard(prof.Language, obs.City))
}

func (r *Router) handleLocation(ctx context.Context, chatID int64, lat, lon float64) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}

	obs, err := r.weather.CurrentByCoords(ctx, lat, lon, prof.Language)
	if err != nil {
		r.log.Warn("weather by coords failed", zap.Error(err))
		r.sendText(chatID, weatherFailedText(prof.Language))
		return
	}
	if obs.City != "" {
		if err := r.repo.AddHistory(ctx, chatID, obs.City); err != nil {
			r.log.Warn("history append failed", zap.Error(err))
		}
	}

	text := weather.Render(obs, prof.Language, prof.Features, prof.Timezone, prof.Pressure)
	r.sendWithKeyboard(chatID, text, saveFavoriteKeyboard(prof.Language, obs.City))
}

// --- Forecast ---

func (r *Router) handleForecastCommand(ctx context.Context, chatID int64, arg string) {
	if arg != "" {
		r.clearPending(chatID)
		r.showForecast(ctx, chatID, arg)
		return
	}
	r.setPending(chatID, pendingForecastCity, "")
	r.sendText(chatID, askCityText(r.lang(ctx, chatID)))
}

func (r *Router) showForecast(ctx context.Context, chatID int64, city string) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}

	name, entries, err := r.weather.Forecast(ctx, city, prof.Language)
	if errors.Is(err, weather.ErrCityNotFound) {
		r.sendText(chatID, cityNotFoundText(prof.Language, city))
		return
	}
	if err != nil {
		r.log.Warn("forecast fetch failed", zap.String("city", city), zap.Error(err))
		r.sendText(chatID, weatherFailedText(prof.Language))
		return
	}

	loc, err := domain.LoadZone(prof.Timezone)
	if err != nil {
		loc = time.UTC
	}
	days := weather.SummarizeDays(entries, loc)
	if len(days) > 5 {
		days = days[:5]
	}
	r.sendText(chatID, weather.RenderForecast(name, days, prof.Language))
}

// --- Settings ---

func (r *Router) handleSettings(ctx context.Context, chatID int64) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}
	r.sendWithKeyboard(chatID, settingsTitle(prof.Language, prof), settingsKeyboard(prof.Language))
}

// --- Free-form input dispatcher ---

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	p := r.getPending(chatID)
	if p.kind == "" {
		// No pending flow: treat bare text as a weather request, the way most
		// users talk to the bot.
		if text != "" && !strings.HasPrefix(text, "/") {
			r.showWeather(ctx, chatID, text)
		}
		return
	}
	r.clearPending(chatID)

	switch p.kind {
	case pendingWeatherCity:
		r.showWeather(ctx, chatID, text)

	case pendingForecastCity:
		r.showForecast(ctx, chatID, text)

	case pendingRegion:
		lang := r.lang(ctx, chatID)
		if err := r.profiles.SetRegion(ctx, chatID, text); err != nil {
			r.log.Warn("set region failed", zap.Error(err))
			r.sendText(chatID, saveFailedText(lang))
			return
		}
		r.sendText(chatID, savedText(lang))

	case pendingTZ:
		r.saveTimezone(ctx, chatID, text)

	case pendingFavCity:
		r.addFavorite(ctx, chatID, text)

	case pendingNotifAddTZ:
		lang := r.lang(ctx, chatID)
		tz, err := domain.ValidateZone(text)
		if err != nil {
			r.sendText(chatID, invalidTZText(lang))
			return
		}
		r.setPending(chatID, pendingNotifTime, tz)
		r.sendText(chatID, askNotifTimeText(lang))

	case pendingNotifTime:
		r.addNotification(ctx, chatID, text, p.param)

	case pendingNotifNewTime:
		r.changeNotificationTime(ctx, chatID, p.param, text)

	case pendingNotifTZ:
		r.changeNotificationZone(ctx, chatID, p.param, text)
	}
}

func (r *Router) saveTimezone(ctx context.Context, chatID int64, tz string) {
	lang := r.lang(ctx, chatID)
	err := r.profiles.SetTimezone(ctx, chatID, tz)
	switch {
	case errors.Is(err, domain.ErrInvalidTimezone):
		r.sendText(chatID, invalidTZText(lang))
	case err != nil:
		r.log.Warn("set timezone failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
	default:
		r.sendText(chatID, savedText(lang))
	}
}

// --- Callback dispatcher ---

func (r *Router) handleCallback(ctx context.Context, chatID int64, data, cbID string) {
	r.answerCallback(cbID)
	lang := r.lang(ctx, chatID)

	switch {
	case data == "set_lang":
		r.sendWithKeyboard(chatID, tr(lang, "🌐 Выбери язык:", "🌐 Choose a language:"), languageKeyboard())
	case strings.HasPrefix(data, "lang:"):
		newLang := domain.ParseLanguage(strings.TrimPrefix(data, "lang:"))
		if err := r.profiles.SetLanguage(ctx, chatID, newLang); err != nil {
			r.sendText(chatID, saveFailedText(lang))
			return
		}
		r.sendWithKeyboard(chatID, savedText(newLang), mainMenuKeyboard(newLang))

	case data == "set_region":
		r.setPending(chatID, pendingRegion, "")
		r.sendText(chatID, askRegionText(lang))

	case data == "set_tz":
		r.sendWithKeyboard(chatID, askTZText(lang), timezoneKeyboard(lang))
	case data == "tz:custom":
		r.setPending(chatID, pendingTZ, "")
		r.sendText(chatID, askTZText(lang))
	case strings.HasPrefix(data, "tz:"):
		r.saveTimezone(ctx, chatID, strings.TrimPrefix(data, "tz:"))

	case data == "set_pressure":
		r.sendWithKeyboard(chatID, tr(lang, "🔽 Единицы давления:", "🔽 Pressure units:"), pressureKeyboard(lang))
	case strings.HasPrefix(data, "pressure:"):
		unit := domain.ParsePressureUnit(strings.TrimPrefix(data, "pressure:"))
		if err := r.profiles.SetPressureUnit(ctx, chatID, unit); err != nil {
			r.sendText(chatID, saveFailedText(lang))
			return
		}
		r.sendText(chatID, savedText(lang))

	case data == "set_features":
		r.showFeatures(ctx, chatID)
	case strings.HasPrefix(data, "feature:"):
		r.toggleFeature(ctx, chatID, domain.Feature(strings.TrimPrefix(data, "feature:")))

	case data == "notif_add":
		r.sendWithKeyboard(chatID, askNotifTZText(lang), notifTZChoiceKeyboard(lang))
	case data == "notif_add_tz:my":
		r.setPending(chatID, pendingNotifTime, "")
		r.sendText(chatID, askNotifTimeText(lang))
	case data == "notif_add_tz:custom":
		r.setPending(chatID, pendingNotifAddTZ, "")
		r.sendText(chatID, askTZText(lang))
	case strings.HasPrefix(data, "notif_add_tz:"):
		r.setPending(chatID, pendingNotifTime, strings.TrimPrefix(data, "notif_add_tz:"))
		r.sendText(chatID, askNotifTimeText(lang))
	case strings.HasPrefix(data, "notif_time:"):
		r.setPending(chatID, pendingNotifNewTime, strings.TrimPrefix(data, "notif_time:"))
		r.sendText(chatID, askNotifTimeText(lang))
	case strings.HasPrefix(data, "notif_tz:"):
		r.setPending(chatID, pendingNotifTZ, strings.TrimPrefix(data, "notif_tz:"))
		r.sendText(chatID, askTZText(lang))
	case strings.HasPrefix(data, "notif_del:"):
		r.removeNotification(ctx, chatID, strings.TrimPrefix(data, "notif_del:"))
	case data == "notif_clear":
		r.disableAllNotifications(ctx, chatID)

	case data == "fav_add":
		r.setPending(chatID, pendingFavCity, "")
		r.sendText(chatID, askCityText(lang))
	case strings.HasPrefix(data, "fav_save:"):
		r.addFavorite(ctx, chatID, strings.TrimPrefix(data, "fav_save:"))
	case strings.HasPrefix(data, "fav_show:"):
		r.showWeather(ctx, chatID, strings.TrimPrefix(data, "fav_show:"))
	case strings.HasPrefix(data, "fav_del:"):
		r.removeFavorite(ctx, chatID, strings.TrimPrefix(data, "fav_del:"))
	case data == "fav_clear":
		r.clearFavorites(ctx, chatID)

	case strings.HasPrefix(data, "hist_show:"):
		r.showWeather(ctx, chatID, strings.TrimPrefix(data, "hist_show:"))
	case data == "hist_clear":
		r.clearHistory(ctx, chatID)
	}
}

func (r *Router) showFeatures(ctx context.Context, chatID int64) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}
	title := tr(prof.Language,
		"📊 Дополнительные данные в отчёте:",
		"📊 Extra data in the report:")
	r.sendWithKeyboard(chatID, title, featuresKeyboard(prof.Language, prof.Features))
}

func (r *Router) toggleFeature(ctx context.Context, chatID int64, f domain.Feature) {
	lang := r.lang(ctx, chatID)
	if _, err := r.profiles.ToggleFeature(ctx, chatID, f); err != nil {
		r.log.Warn("toggle feature failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.showFeatures(ctx, chatID)
}
