package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aadvantures228-boop/Weather-Main/internal/notify"
	"github.com/aadvantures228-boop/Weather-Main/internal/store"
	"github.com/aadvantures228-boop/Weather-Main/internal/users"
	"github.com/aadvantures228-boop/Weather-Main/internal/weather"
)

// Pending input kinds used in conversational flows.
const (
	pendingWeatherCity  = "await_weather_city"
	pendingForecastCity = "await_forecast_city"
	pendingRegion       = "await_region"
	pendingTZ           = "await_tz"
	pendingFavCity      = "await_fav_city"
	pendingNotifTime    = "await_notif_time"   // param: chosen timezone ("" = profile's)
	pendingNotifAddTZ   = "await_notif_add_tz" // manual timezone for a new notification
	pendingNotifNewTime = "await_notif_new_time" // param: notification id
	pendingNotifTZ      = "await_notif_tz"       // param: notification id
)

// pending is one awaited free-form input; param carries flow context such as
// the notification id being edited.
type pending struct {
	kind  string
	param string
}

// Router wires Telegram updates to handlers and holds the in-memory
// conversational state. It also implements notify.Sender so scheduled
// notifications go out through the same rate-limited path as replies.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	profiles *users.Profiles
	registry *notify.Registry
	weather  *weather.Client
	repo     store.Repo

	limiter *rate.Limiter

	mu    sync.RWMutex
	state map[int64]pending // chatID -> awaited input
}

func NewRouter(
	bot *tgbotapi.BotAPI,
	profiles *users.Profiles,
	registry *notify.Registry,
	wc *weather.Client,
	repo store.Repo,
	log *zap.Logger,
) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		profiles: profiles,
		registry: registry,
		weather:  wc,
		repo:     repo,
		// Telegram allows ~30 messages per second bot-wide.
		limiter: rate.NewLimiter(rate.Every(40*time.Millisecond), 25),
		state:   make(map[int64]pending),
	}
}

func (r *Router) setPending(chatID int64, kind, param string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = pending{kind: kind, param: param}
}

func (r *Router) getPending(chatID int64) pending {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID

		if msg.Location != nil {
			r.clearPending(chatID)
			r.handleLocation(ctx, chatID, msg.Location.Latitude, msg.Location.Longitude)
			return
		}

		text := strings.TrimSpace(msg.Text)
		switch {
		case strings.HasPrefix(text, "/start"):
			r.clearPending(chatID)
			r.handleStart(ctx, chatID)
		case strings.HasPrefix(text, "/help"):
			r.clearPending(chatID)
			r.handleHelp(ctx, chatID)
		case strings.HasPrefix(text, "/weather"):
			r.handleWeatherCommand(ctx, chatID, strings.TrimSpace(strings.TrimPrefix(text, "/weather")))
		case strings.HasPrefix(text, "/forecast"):
			r.handleForecastCommand(ctx, chatID, strings.TrimSpace(strings.TrimPrefix(text, "/forecast")))
		case strings.HasPrefix(text, "/settings"):
			r.clearPending(chatID)
			r.handleSettings(ctx, chatID)
		case strings.HasPrefix(text, "/notifications"):
			r.clearPending(chatID)
			r.handleNotifications(ctx, chatID)
		case strings.HasPrefix(text, "/favorites"):
			r.clearPending(chatID)
			r.handleFavorites(ctx, chatID)
		case strings.HasPrefix(text, "/history"):
			r.clearPending(chatID)
			r.handleHistory(ctx, chatID)
		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		r.handleCallback(ctx, cb.Message.Chat.ID, cb.Data, cb.ID)
	}
}

// SendMessage sends a plain text message through the shared rate limiter.
// This makes Router satisfy notify.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	if err := r.limiter.Wait(context.Background()); err != nil {
		return err
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) sendText(chatID int64, text string) {
	if err := r.SendMessage(chatID, text); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb any) {
	if err := r.limiter.Wait(context.Background()); err != nil {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) answerCallback(id string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, ""))
}
