package notify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
	"github.com/aadvantures228-boop/Weather-Main/internal/scheduler"
	"github.com/aadvantures228-boop/Weather-Main/internal/store"
)

// RegionSource supplies the owner's current home region when a notification is
// created.
type RegionSource interface {
	Region(ctx context.Context, userID int64) (string, error)
}

// Registry owns per-user notification lists and keeps them consistent with the
// scheduler: every stored record has exactly one armed timer and every timer
// has a record. All mutations for one user are serialized by that user's lock;
// different users never contend.
type Registry struct {
	repo    store.Repo
	sched   *scheduler.Scheduler
	regions RegionSource
	log     *zap.Logger

	fire scheduler.Job // set once via Bind before any Add/Restore

	mu    sync.Mutex
	users map[int64]*userState
}

// userState is the write-through cache of one user's notifications. Its mutex
// is the per-user serialization point.
type userState struct {
	mu     sync.Mutex
	loaded bool
	list   []domain.Notification
}

func NewRegistry(repo store.Repo, sched *scheduler.Scheduler, regions RegionSource, log *zap.Logger) *Registry {
	return &Registry{
		repo:    repo,
		sched:   sched,
		regions: regions,
		log:     log,
		users:   make(map[int64]*userState),
	}
}

// Bind wires the firing callback. Until a callback is bound, Add and Restore
// fail with domain.ErrSchedulerUnavailable so no record can exist without a
// working timer behind it.
func (r *Registry) Bind(job scheduler.Job) {
	r.fire = job
}

func (r *Registry) state(userID int64) *userState {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.users[userID]
	if !ok {
		st = &userState{}
		r.users[userID] = st
	}
	return st
}

// load fills the cache from storage; callers hold st.mu.
func (r *Registry) load(ctx context.Context, st *userState, userID int64) error {
	if st.loaded {
		return nil
	}
	list, err := r.repo.ListNotifications(ctx, userID)
	if err != nil {
		return err
	}
	st.list = list
	st.loaded = true
	return nil
}

// List returns the user's notifications in creation order.
func (r *Registry) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return nil, err
	}
	out := make([]domain.Notification, len(st.list))
	copy(out, st.list)
	return out, nil
}

// Get returns a snapshot of one notification. Used by the dispatcher at fire
// time; the snapshot is taken under the user lock and the lock is released
// before any network call.
func (r *Registry) Get(ctx context.Context, userID int64, notificationID string) (domain.Notification, bool, error) {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return domain.Notification{}, false, err
	}
	for _, n := range st.list {
		if n.ID == notificationID {
			return n, true, nil
		}
	}
	return domain.Notification{}, false, nil
}

// Add validates, persists and arms a new daily notification. The user's
// current region is snapshotted into the record.
func (r *Registry) Add(ctx context.Context, userID int64, hour, minute int, tz string) (domain.Notification, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return domain.Notification{}, fmt.Errorf("time out of range: %02d:%02d", hour, minute)
	}

	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return domain.Notification{}, err
	}

	if len(st.list) >= domain.MaxNotificationsPerUser {
		return domain.Notification{}, domain.ErrLimitExceeded
	}
	for _, n := range st.list {
		if n.SameSlot(hour, minute, tz) {
			return domain.Notification{}, domain.ErrAlreadyExists
		}
	}
	if r.sched == nil || r.fire == nil {
		return domain.Notification{}, domain.ErrSchedulerUnavailable
	}

	region, err := r.regions.Region(ctx, userID)
	if err != nil {
		return domain.Notification{}, err
	}

	n := domain.Notification{
		ID:       domain.NewNotificationID(),
		Hour:     hour,
		Minute:   minute,
		Timezone: tz,
		Region:   region,
	}
	key := scheduler.Key{UserID: userID, NotificationID: n.ID}

	// Arm first: this validates the timezone and the scheduler being alive.
	if err := r.sched.Schedule(key, hour, minute, tz, r.fire); err != nil {
		return domain.Notification{}, err
	}
	if err := r.repo.InsertNotification(ctx, userID, n); err != nil {
		r.sched.Cancel(key)
		return domain.Notification{}, err
	}
	st.list = append(st.list, n)

	r.log.Info("notification added",
		zap.Int64("user_id", userID),
		zap.String("notification_id", n.ID),
		zap.String("at", domain.FormatClock(hour, minute)),
		zap.String("tz", tz),
		zap.String("region", region),
	)
	return n, nil
}

// Remove cancels the timer and deletes the record. Returns true if a record
// existed.
func (r *Registry) Remove(ctx context.Context, userID int64, notificationID string) (bool, error) {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return false, err
	}

	idx := indexOf(st.list, notificationID)
	if idx < 0 {
		return false, nil
	}
	n := st.list[idx]
	key := scheduler.Key{UserID: userID, NotificationID: notificationID}

	r.sched.Cancel(key)
	if err := r.repo.DeleteNotification(ctx, userID, notificationID); err != nil {
		// Keep the record armed rather than stranding it timer-less.
		if rearm := r.sched.Schedule(key, n.Hour, n.Minute, n.Timezone, r.fire); rearm != nil {
			r.log.Error("re-arm after failed delete", zap.Error(rearm), zap.String("notification_id", notificationID))
		}
		return false, err
	}
	st.list = append(st.list[:idx], st.list[idx+1:]...)

	r.log.Info("notification removed", zap.Int64("user_id", userID), zap.String("notification_id", notificationID))
	return true, nil
}

// UpdateTime moves an existing notification to a new hour:minute. Cancel and
// re-arm happen under the user lock, so a concurrent firing cannot interleave
// with the edit.
func (r *Registry) UpdateTime(ctx context.Context, userID int64, notificationID string, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("time out of range: %02d:%02d", hour, minute)
	}
	return r.update(ctx, userID, notificationID, func(n domain.Notification) domain.Notification {
		n.Hour, n.Minute = hour, minute
		return n
	})
}

// UpdateTimezone moves an existing notification to a new zone.
func (r *Registry) UpdateTimezone(ctx context.Context, userID int64, notificationID, tz string) error {
	tz, err := domain.ValidateZone(tz)
	if err != nil {
		return err
	}
	return r.update(ctx, userID, notificationID, func(n domain.Notification) domain.Notification {
		n.Timezone = tz
		return n
	})
}

func (r *Registry) update(ctx context.Context, userID int64, notificationID string, apply func(domain.Notification) domain.Notification) error {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return err
	}

	idx := indexOf(st.list, notificationID)
	if idx < 0 {
		return domain.ErrNotFound
	}
	old := st.list[idx]
	updated := apply(old)

	for i, n := range st.list {
		if i != idx && n.SameSlot(updated.Hour, updated.Minute, updated.Timezone) {
			return domain.ErrAlreadyExists
		}
	}
	if r.sched == nil || r.fire == nil {
		return domain.ErrSchedulerUnavailable
	}

	key := scheduler.Key{UserID: userID, NotificationID: notificationID}

	// Schedule replaces the old timer atomically inside the scheduler.
	if err := r.sched.Schedule(key, updated.Hour, updated.Minute, updated.Timezone, r.fire); err != nil {
		return err
	}
	if err := r.repo.UpdateNotification(ctx, userID, updated); err != nil {
		if rearm := r.sched.Schedule(key, old.Hour, old.Minute, old.Timezone, r.fire); rearm != nil {
			r.log.Error("restore timer after failed update", zap.Error(rearm), zap.String("notification_id", notificationID))
		}
		return err
	}
	st.list[idx] = updated

	r.log.Info("notification updated",
		zap.Int64("user_id", userID),
		zap.String("notification_id", notificationID),
		zap.String("at", domain.FormatClock(updated.Hour, updated.Minute)),
		zap.String("tz", updated.Timezone),
	)
	return nil
}

// DisableAll cancels every timer of the user and empties the list.
func (r *Registry) DisableAll(ctx context.Context, userID int64) error {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return err
	}

	r.sched.CancelAllFor(userID)
	if err := r.repo.DeleteAllNotifications(ctx, userID); err != nil {
		return err
	}
	st.list = nil

	r.log.Info("all notifications disabled", zap.Int64("user_id", userID))
	return nil
}

// SyncRegion pushes a new home region into every record of the user. Called
// from the profile layer's SetRegion; satisfies users.RegionListener.
func (r *Registry) SyncRegion(ctx context.Context, userID int64, region string) error {
	st := r.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := r.load(ctx, st, userID); err != nil {
		return err
	}

	if err := r.repo.UpdateNotificationsRegion(ctx, userID, region); err != nil {
		return err
	}
	for i := range st.list {
		st.list[i].Region = region
	}
	return nil
}

// Restore re-arms a timer for every persisted notification. Called once at
// startup, before updates are consumed. Records whose timezone no longer
// resolves are dropped rather than left timer-less.
func (r *Registry) Restore(ctx context.Context) error {
	if r.sched == nil || r.fire == nil {
		return domain.ErrSchedulerUnavailable
	}

	all, err := r.repo.ListAllNotifications(ctx)
	if err != nil {
		return err
	}

	restored := 0
	for userID, list := range all {
		st := r.state(userID)
		st.mu.Lock()
		kept := make([]domain.Notification, 0, len(list))
		for _, n := range list {
			key := scheduler.Key{UserID: userID, NotificationID: n.ID}
			if err := r.sched.Schedule(key, n.Hour, n.Minute, n.Timezone, r.fire); err != nil {
				r.log.Warn("dropping unrestorable notification",
					zap.Error(err),
					zap.Int64("user_id", userID),
					zap.String("notification_id", n.ID),
					zap.String("tz", n.Timezone),
				)
				if delErr := r.repo.DeleteNotification(ctx, userID, n.ID); delErr != nil {
					r.log.Error("delete unrestorable notification", zap.Error(delErr))
				}
				continue
			}
			kept = append(kept, n)
			restored++
		}
		st.list = kept
		st.loaded = true
		st.mu.Unlock()
	}

	r.log.Info("notifications restored", zap.Int("count", restored))
	return nil
}

func indexOf(list []domain.Notification, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}
