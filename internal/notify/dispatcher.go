package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
	"github.com/aadvantures228-boop/Weather-Main/internal/scheduler"
)

// Fetcher is the weather collaborator: it turns a region plus display
// preferences into a ready-to-send report.
type Fetcher interface {
	Report(ctx context.Context, region string, lang domain.Language, features domain.FeatureSet, tz string, unit domain.PressureUnit) (string, error)
}

// Sender is the transport collaborator.
type Sender interface {
	SendMessage(userID int64, text string) error
}

// ProfileSource supplies the live profile at fire time.
type ProfileSource interface {
	Get(ctx context.Context, userID int64) (*domain.Profile, error)
}

// Dispatcher runs on each timer firing. Every step is isolated: a failure is
// logged and ends that firing only, never the scheduler or other users'
// timers.
type Dispatcher struct {
	registry *Registry
	profiles ProfileSource
	fetcher  Fetcher
	sender   Sender
	log      *zap.Logger
}

func NewDispatcher(registry *Registry, profiles ProfileSource, fetcher Fetcher, sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		profiles: profiles,
		fetcher:  fetcher,
		sender:   sender,
		log:      log,
	}
}

// Fire satisfies scheduler.Job.
func (d *Dispatcher) Fire(key scheduler.Key) {
	ctx := context.Background()
	log := d.log.With(
		zap.Int64("user_id", key.UserID),
		zap.String("notification_id", key.NotificationID),
	)

	rec, ok, err := d.registry.Get(ctx, key.UserID, key.NotificationID)
	if err != nil {
		log.Error("notification lookup failed", zap.Error(err))
		return
	}
	if !ok {
		// Deleted while the firing was in flight.
		log.Info("notification gone, skipping firing")
		return
	}

	// Language, features and pressure unit are read live; region and timezone
	// come from the record snapshot. The user lock is already released here,
	// before any network call.
	prof, err := d.profiles.Get(ctx, key.UserID)
	if err != nil {
		log.Error("profile lookup failed", zap.Error(err))
		return
	}

	text, err := d.fetcher.Report(ctx, rec.Region, prof.Language, prof.Features, rec.Timezone, prof.Pressure)
	if err != nil {
		log.Error("weather fetch failed", zap.Error(err), zap.String("region", rec.Region))
		return
	}

	if err := d.sender.SendMessage(key.UserID, "🔔 "+rec.Region+"\n\n"+text); err != nil {
		// Delivery failures (user blocked the bot etc.) are swallowed.
		log.Error("notification send failed", zap.Error(err))
		return
	}
	log.Info("notification delivered", zap.String("region", rec.Region))
}
