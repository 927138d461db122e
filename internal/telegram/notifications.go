package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

func (r *Router) handleNotifications(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	list, err := r.registry.List(ctx, chatID)
	if err != nil {
		r.log.Error("notification list failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendWithKeyboard(chatID, notificationsTitle(lang, len(list)), notificationsKeyboard(lang, list))
}

// addNotification creates a daily notification at the entered time. The zone
// was chosen in the previous step; empty means the profile's timezone.
func (r *Router) addNotification(ctx context.Context, chatID int64, text, tz string) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}
	lang := prof.Language

	hour, minute, err := domain.ParseClock(text)
	if err != nil {
		r.sendText(chatID, invalidTimeText(lang))
		return
	}

	if tz == "" {
		tz = prof.Timezone
	}
	n, err := r.registry.Add(ctx, chatID, hour, minute, tz)
	if err != nil {
		r.sendText(chatID, notifyErrorText(lang, err))
		r.log.Warn("notification add failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	r.sendText(chatID, notifAddedText(lang, n))
	r.handleNotifications(ctx, chatID)
}

func (r *Router) changeNotificationTime(ctx context.Context, chatID int64, notificationID, text string) {
	lang := r.lang(ctx, chatID)

	hour, minute, err := domain.ParseClock(text)
	if err != nil {
		r.sendText(chatID, invalidTimeText(lang))
		return
	}
	if err := r.registry.UpdateTime(ctx, chatID, notificationID, hour, minute); err != nil {
		r.sendText(chatID, notifyErrorText(lang, err))
		return
	}
	r.sendText(chatID, savedText(lang))
	r.handleNotifications(ctx, chatID)
}

func (r *Router) changeNotificationZone(ctx context.Context, chatID int64, notificationID, tz string) {
	lang := r.lang(ctx, chatID)

	if err := r.registry.UpdateTimezone(ctx, chatID, notificationID, tz); err != nil {
		r.sendText(chatID, notifyErrorText(lang, err))
		return
	}
	r.sendText(chatID, savedText(lang))
	r.handleNotifications(ctx, chatID)
}

func (r *Router) removeNotification(ctx context.Context, chatID int64, notificationID string) {
	lang := r.lang(ctx, chatID)

	removed, err := r.registry.Remove(ctx, chatID, notificationID)
	if err != nil {
		r.log.Warn("notification remove failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	if !removed {
		r.sendText(chatID, tr(lang, "⚠️ Уведомление не найдено", "⚠️ Notification not found"))
	}
	r.handleNotifications(ctx, chatID)
}

func (r *Router) disableAllNotifications(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	if err := r.registry.DisableAll(ctx, chatID); err != nil {
		r.log.Warn("disable all failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendText(chatID, tr(lang, "🔕 Все уведомления отключены", "🔕 All notifications disabled"))
}

// notifyErrorText maps registry errors to user-facing replies.
func notifyErrorText(lang domain.Language, err error) string {
	switch {
	case errors.Is(err, domain.ErrLimitExceeded):
		return notifLimitText(lang)
	case errors.Is(err, domain.ErrAlreadyExists):
		return notifDuplicateText(lang)
	case errors.Is(err, domain.ErrInvalidTimezone):
		return invalidTZText(lang)
	case errors.Is(err, domain.ErrSchedulerUnavailable):
		return notifUnavailableText(lang)
	case errors.Is(err, domain.ErrNotFound):
		return tr(lang, "⚠️ Уведомление не найдено", "⚠️ Notification not found")
	}
	return saveFailedText(lang)
}

// --- Favorites ---

func (r *Router) handleFavorites(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	favs, err := r.repo.ListFavorites(ctx, chatID)
	if err != nil {
		r.log.Error("favorites list failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendWithKeyboard(chatID, favoritesTitle(lang, len(favs)), favoritesKeyboard(lang, favs))
}

// addFavorite resolves the city through the weather API first, so favorites
// hold real, canonical city names.
func (r *Router) addFavorite(ctx context.Context, chatID int64, city string) {
	prof, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		r.log.Error("profile read failed", zap.Error(err))
		return
	}
	lang := prof.Language

	city = strings.TrimSpace(city)
	if city == "" {
		r.sendText(chatID, askCityText(lang))
		return
	}

	obs, err := r.weather.Current(ctx, city, lang)
	if err != nil {
		r.sendText(chatID, cityNotFoundText(lang, city))
		return
	}

	added, err := r.repo.AddFavorite(ctx, chatID, obs.City, obs.Country)
	if err != nil {
		r.log.Warn("favorite add failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	if !added {
		r.sendText(chatID, tr(lang, "⭐ Этот город уже в избранном", "⭐ This city is already in favorites"))
		return
	}
	r.sendText(chatID, tr(lang, "⭐ Добавлено в избранное: ", "⭐ Added to favorites: ")+obs.City)
}

// removeFavorite takes "City|Country", the favorite's storage identity.
func (r *Router) removeFavorite(ctx context.Context, chatID int64, arg string) {
	lang := r.lang(ctx, chatID)
	city, country, _ := strings.Cut(arg, "|")
	if _, err := r.repo.RemoveFavorite(ctx, chatID, city, country); err != nil {
		r.log.Warn("favorite remove failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.handleFavorites(ctx, chatID)
}

func (r *Router) clearFavorites(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	if err := r.repo.ClearFavorites(ctx, chatID); err != nil {
		r.log.Warn("favorites clear failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendText(chatID, tr(lang, "⭐ Избранное очищено", "⭐ Favorites cleared"))
}

// --- History ---

func (r *Router) handleHistory(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	cities, err := r.repo.ListHistory(ctx, chatID)
	if err != nil {
		r.log.Error("history list failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendWithKeyboard(chatID, historyTitle(lang, len(cities)), historyKeyboard(lang, cities))
}

func (r *Router) clearHistory(ctx context.Context, chatID int64) {
	lang := r.lang(ctx, chatID)
	if err := r.repo.ClearHistory(ctx, chatID); err != nil {
		r.log.Warn("history clear failed", zap.Error(err))
		r.sendText(chatID, saveFailedText(lang))
		return
	}
	r.sendText(chatID, tr(lang, "🕓 История очищена", "🕓 History cleared"))
}
