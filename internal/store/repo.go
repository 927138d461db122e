package store

import (
	"context"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// Repo defines storage operations for profiles, notifications, favorites and
// search history.
type Repo interface {
	// Profiles. GetProfile creates a default row on first access.
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	SetLanguage(ctx context.Context, userID int64, lang domain.Language) error
	SetRegion(ctx context.Context, userID int64, region string) error
	SetTimezone(ctx context.Context, userID int64, tz string) error
	SetPressureUnit(ctx context.Context, userID int64, unit domain.PressureUnit) error
	SetFeatures(ctx context.Context, userID int64, features domain.FeatureSet) error

	// Notifications, ordered by creation.
	ListNotifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	ListAllNotifications(ctx context.Context) (map[int64][]domain.Notification, error)
	InsertNotification(ctx context.Context, userID int64, n domain.Notification) error
	UpdateNotification(ctx context.Context, userID int64, n domain.Notification) error
	UpdateNotificationsRegion(ctx context.Context, userID int64, region string) error
	DeleteNotification(ctx context.Context, userID int64, notificationID string) error
	DeleteAllNotifications(ctx context.Context, userID int64) error

	// Favorites, deduplicated by domain.FavoriteKey.
	ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, userID int64, city, country string) (bool, error)
	RemoveFavorite(ctx context.Context, userID int64, city, country string) (bool, error)
	ClearFavorites(ctx context.Context, userID int64) error

	// Search history, most recent first, capped at domain.MaxHistoryItems.
	ListHistory(ctx context.Context, userID int64) ([]string, error)
	AddHistory(ctx context.Context, userID int64, city string) error
	ClearHistory(ctx context.Context, userID int64) error

	Close() error
}
