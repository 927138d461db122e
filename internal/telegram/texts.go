package telegram

import (
	"fmt"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// tr picks the variant for the user's language.
func tr(lang domain.Language, ru, en string) string {
	if lang == domain.LangRU {
		return ru
	}
	return en
}

func startText(lang domain.Language) string {
	return tr(lang,
		"👋 Привет! Я погодный бот.\n\n"+
			"Пришли название города или геолокацию, и я расскажу о погоде.\n"+
			"Настрой ежедневные уведомления в /notifications.\n\n"+
			"Команды: /weather /forecast /settings /notifications /favorites /history /help",
		"👋 Hi! I am a weather bot.\n\n"+
			"Send a city name or your location and I will tell you the weather.\n"+
			"Set up daily notifications in /notifications.\n\n"+
			"Commands: /weather /forecast /settings /notifications /favorites /history /help")
}

func helpText(lang domain.Language) string {
	return tr(lang,
		"ℹ️ Команды:\n"+
			"/weather — погода в городе\n"+
			"/forecast — прогноз на 5 дней\n"+
			"/settings — язык, регион, часовой пояс, единицы\n"+
			"/notifications — ежедневные уведомления о погоде\n"+
			"/favorites — избранные города\n"+
			"/history — последние запросы",
		"ℹ️ Commands:\n"+
			"/weather — current weather in a city\n"+
			"/forecast — 5-day forecast\n"+
			"/settings — language, region, timezone, units\n"+
			"/notifications — daily weather notifications\n"+
			"/favorites — favorite cities\n"+
			"/history — recent lookups")
}

func askCityText(lang domain.Language) string {
	return tr(lang,
		"🌍 Введи название города или пришли геолокацию:",
		"🌍 Enter a city name or share your location:")
}

func cityNotFoundText(lang domain.Language, city string) string {
	return tr(lang,
		fmt.Sprintf("🌍 Город %s не найден", city),
		fmt.Sprintf("🌍 City %s not found", city))
}

func weatherFailedText(lang domain.Language) string {
	return tr(lang,
		"⚠️ Не удалось получить погоду, попробуй позже",
		"⚠️ Could not fetch the weather, try again later")
}

func savedText(lang domain.Language) string {
	return tr(lang, "✅ Сохранено", "✅ Saved")
}

func saveFailedText(lang domain.Language) string {
	return tr(lang, "⚠️ Не удалось сохранить", "⚠️ Could not save")
}

func settingsTitle(lang domain.Language, prof *domain.Profile) string {
	unit := tr(lang, "мм рт. ст.", "mmHg")
	if prof.Pressure == domain.PressureHPa {
		unit = tr(lang, "гПа", "hPa")
	}
	return tr(lang,
		fmt.Sprintf("⚙️ Настройки:\n\n• Язык: русский\n• Регион: %s\n• Часовой пояс: %s\n• Давление: %s",
			prof.Region, prof.Timezone, unit),
		fmt.Sprintf("⚙️ Settings:\n\n• Language: English\n• Region: %s\n• Timezone: %s\n• Pressure: %s",
			prof.Region, prof.Timezone, unit))
}

func askRegionText(lang domain.Language) string {
	return tr(lang,
		"🏙 Введи свой город (он используется в уведомлениях):",
		"🏙 Enter your home city (it is used in notifications):")
}

func askTZText(lang domain.Language) string {
	return tr(lang,
		"🕐 Введи часовой пояс: Region/City или UTC±N",
		"🕐 Enter a timezone: Region/City or UTC±N")
}

func invalidTZText(lang domain.Language) string {
	return tr(lang,
		"⚠️ Неизвестный часовой пояс. Примеры: Europe/Moscow, UTC+3",
		"⚠️ Unknown timezone. Examples: Europe/Moscow, UTC+3")
}

func featureName(lang domain.Language, f domain.Feature) string {
	switch f {
	case domain.FeatureCloudiness:
		return tr(lang, "☁️ Облачность", "☁️ Cloudiness")
	case domain.FeatureWindDirection:
		return tr(lang, "🧭 Направление ветра", "🧭 Wind direction")
	case domain.FeatureWindGust:
		return tr(lang, "💨 Порывы ветра", "💨 Wind gust")
	case domain.FeatureSunriseSunset:
		return tr(lang, "🌅 Восход и закат", "🌅 Sunrise and sunset")
	}
	return string(f)
}

func notificationsTitle(lang domain.Language, n int) string {
	if n == 0 {
		return tr(lang,
			"🔔 У тебя нет уведомлений.\nДобавь ежедневное уведомление о погоде:",
			"🔔 You have no notifications.\nAdd a daily weather notification:")
	}
	return tr(lang,
		fmt.Sprintf("🔔 Твои уведомления (%d из %d):", n, domain.MaxNotificationsPerUser),
		fmt.Sprintf("🔔 Your notifications (%d of %d):", n, domain.MaxNotificationsPerUser))
}

func notificationLine(n domain.Notification) string {
	return fmt.Sprintf("⏰ %s (%s) — %s", domain.FormatClock(n.Hour, n.Minute), domain.UTCOffset(n.Timezone), n.Region)
}

func askNotifTZText(lang domain.Language) string {
	return tr(lang,
		"🕐 В каком часовом поясе присылать уведомление?",
		"🕐 Which timezone should the notification use?")
}

func askNotifTimeText(lang domain.Language) string {
	return tr(lang,
		"🕐 Введи время уведомления в формате ЧЧ:ММ, например 08:30",
		"🕐 Enter the notification time as HH:MM, for example 08:30")
}

func invalidTimeText(lang domain.Language) string {
	return tr(lang,
		"⚠️ Неверный формат времени. Пример: 08:30",
		"⚠️ Invalid time format. Example: 08:30")
}

func notifLimitText(lang domain.Language) string {
	return tr(lang,
		fmt.Sprintf("⚠️ Достигнут лимит: не больше %d уведомлений", domain.MaxNotificationsPerUser),
		fmt.Sprintf("⚠️ Limit reached: at most %d notifications", domain.MaxNotificationsPerUser))
}

func notifDuplicateText(lang domain.Language) string {
	return tr(lang,
		"⚠️ Уведомление на это время уже есть",
		"⚠️ A notification at this time already exists")
}

func notifUnavailableText(lang domain.Language) string {
	return tr(lang,
		"⚠️ Планировщик недоступен, попробуй позже",
		"⚠️ The scheduler is unavailable, try again later")
}

func notifAddedText(lang domain.Language, n domain.Notification) string {
	return tr(lang,
		fmt.Sprintf("✅ Уведомление добавлено: %s", notificationLine(n)),
		fmt.Sprintf("✅ Notification added: %s", notificationLine(n)))
}

func favoritesTitle(lang domain.Language, n int) string {
	if n == 0 {
		return tr(lang,
			"⭐ Список избранного пуст.",
			"⭐ Your favorites list is empty.")
	}
	return tr(lang, "⭐ Избранные города:", "⭐ Favorite cities:")
}

func historyTitle(lang domain.Language, n int) string {
	if n == 0 {
		return tr(lang,
			"🕓 История запросов пуста.",
			"🕓 Your lookup history is empty.")
	}
	return tr(lang, "🕓 Последние запросы:", "🕓 Recent lookups:")
}
