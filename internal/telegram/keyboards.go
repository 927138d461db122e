package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

func mainMenuKeyboard(lang domain.Language) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/weather"),
			tgbotapi.NewKeyboardButton("/forecast"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/notifications"),
			tgbotapi.NewKeyboardButton("/settings"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/favorites"),
			tgbotapi.NewKeyboardButton("/history"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func settingsKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🌐 Язык", "🌐 Language"), "set_lang"),
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🏙 Регион", "🏙 Region"), "set_region"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🕐 Часовой пояс", "🕐 Timezone"), "set_tz"),
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🔽 Давление", "🔽 Pressure"), "set_pressure"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "📊 Доп. данные", "📊 Extra data"), "set_features"),
		),
	)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", "lang:ru"),
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang:en"),
		),
	)
}

func timezoneKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Europe/Moscow", "tz:Europe/Moscow"),
			tgbotapi.NewInlineKeyboardButtonData("Europe/Berlin", "tz:Europe/Berlin"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Asia/Almaty", "tz:Asia/Almaty"),
			tgbotapi.NewInlineKeyboardButtonData("UTC+0", "tz:UTC+0"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "✍️ Другой…", "✍️ Custom…"), "tz:custom"),
		),
	)
}

func pressureKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "мм рт. ст.", "mmHg"), "pressure:mmhg"),
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "гПа", "hPa"), "pressure:hpa"),
		),
	)
}

func featuresKeyboard(lang domain.Language, features domain.FeatureSet) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.AllFeatures()))
	for _, f := range domain.AllFeatures() {
		mark := "☑️"
		if features.Enabled(f) {
			mark = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark+" "+featureName(lang, f), "feature:"+string(f)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func notificationsKeyboard(lang domain.Language, list []domain.Notification) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+2)
	for _, n := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(notificationLine(n), "notif_time:"+n.ID),
			tgbotapi.NewInlineKeyboardButtonData("🌐", "notif_tz:"+n.ID),
			tgbotapi.NewInlineKeyboardButtonData("❌", "notif_del:"+n.ID),
		))
	}
	if len(list) < domain.MaxNotificationsPerUser {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "➕ Добавить", "➕ Add"), "notif_add"),
		))
	}
	if len(list) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🗑 Отключить все", "🗑 Disable all"), "notif_clear"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// notifTZChoiceKeyboard is step one of adding a notification: pick the zone
// the daily time is evaluated in.
func notifTZChoiceKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "⭐ Мой часовой пояс", "⭐ My timezone"), "notif_add_tz:my"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Europe/Moscow", "notif_add_tz:Europe/Moscow"),
			tgbotapi.NewInlineKeyboardButtonData("Europe/Berlin", "notif_add_tz:Europe/Berlin"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Asia/Almaty", "notif_add_tz:Asia/Almaty"),
			tgbotapi.NewInlineKeyboardButtonData("UTC+0", "notif_add_tz:UTC+0"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "✍️ Другой…", "✍️ Custom…"), "notif_add_tz:custom"),
		),
	)
}

func favoritesKeyboard(lang domain.Language, favs []domain.Favorite) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(favs)+1)
	for _, f := range favs {
		label := f.City
		if f.Country != "" {
			label += ", " + f.Country
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌤 "+label, "fav_show:"+f.City),
			tgbotapi.NewInlineKeyboardButtonData("❌", "fav_del:"+f.City+"|"+f.Country),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(tr(lang, "➕ Добавить город", "➕ Add a city"), "fav_add"),
	))
	if len(favs) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🗑 Очистить", "🗑 Clear"), "fav_clear"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func historyKeyboard(lang domain.Language, cities []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cities)+1)
	for _, city := range cities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌤 "+city, "hist_show:"+city),
		))
	}
	if len(cities) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "🗑 Очистить", "🗑 Clear"), "hist_clear"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func saveFavoriteKeyboard(lang domain.Language, city string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr(lang, "⭐ В избранное", "⭐ Add to favorites"), "fav_save:"+city),
		),
	)
}
