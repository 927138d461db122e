package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// ensureUser inserts a default profile row if the user has none.
func (r *SQLiteRepo) ensureUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (user_id, created_at) VALUES (?, ?)`,
		userID, time.Now().UTC().Unix(),
	)
	return err
}

// GetProfile returns a user's settings, creating the default row on first
// access.
func (r *SQLiteRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if err := r.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT lang, region, timezone, pressure_unit, created_at
		FROM users
		WHERE user_id = ?`,
		userID,
	)

	var (
		lang      string
		region    string
		tz        string
		pressure  string
		createdAt int64
	)
	if err := row.Scan(&lang, &region, &tz, &pressure, &createdAt); err != nil {
		return nil, err
	}

	features, err := r.loadFeatures(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{
		UserID:    userID,
		Language:  domain.ParseLanguage(lang),
		Region:    region,
		Timezone:  tz,
		Pressure:  domain.ParsePressureUnit(pressure),
		Features:  features,
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}, nil
}

func (r *SQLiteRepo) loadFeatures(ctx context.Context, userID int64) (domain.FeatureSet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT feature_name FROM features WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	features := domain.FeatureSet{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		features[domain.Feature(name)] = true
	}
	return features, rows.Err()
}

// setUserField upserts a single profile column; missing rows get defaults for
// the rest.
func (r *SQLiteRepo) setUserField(ctx context.Context, userID int64, column string, value any) error {
	query := fmt.Sprintf(`
		INSERT INTO users (user_id, %[1]s, created_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET %[1]s = excluded.%[1]s`, column)
	_, err := r.db.ExecContext(ctx, query, userID, value, time.Now().UTC().Unix())
	return err
}

func (r *SQLiteRepo) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	return r.setUserField(ctx, userID, "lang", string(lang))
}

func (r *SQLiteRepo) SetRegion(ctx context.Context, userID int64, region string) error {
	return r.setUserField(ctx, userID, "region", region)
}

func (r *SQLiteRepo) SetTimezone(ctx context.Context, userID int64, tz string) error {
	return r.setUserField(ctx, userID, "timezone", tz)
}

func (r *SQLiteRepo) SetPressureUnit(ctx context.Context, userID int64, unit domain.PressureUnit) error {
	return r.setUserField(ctx, userID, "pressure_unit", string(unit))
}

// SetFeatures replaces the user's enabled-feature rows.
func (r *SQLiteRepo) SetFeatures(ctx context.Context, userID int64, features domain.FeatureSet) error {
	if err := r.ensureUser(ctx, userID); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM features WHERE user_id = ?`, userID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for f, on := range features {
		if !on {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO features (user_id, feature_name) VALUES (?, ?)`,
			userID, string(f),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ListNotifications returns the user's notifications in creation order.
func (r *SQLiteRepo) ListNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT notification_id, hour, minute, timezone, region
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Hour, &n.Minute, &n.Timezone, &n.Region); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

// ListAllNotifications returns every stored notification grouped by owner, for
// re-arming timers at startup.
func (r *SQLiteRepo) ListAllNotifications(ctx context.Context) (map[int64][]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, notification_id, hour, minute, timezone, region
		FROM notifications
		ORDER BY created_at ASC, rowid ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[int64][]domain.Notification)
	for rows.Next() {
		var (
			userID int64
			n      domain.Notification
		)
		if err := rows.Scan(&userID, &n.ID, &n.Hour, &n.Minute, &n.Timezone, &n.Region); err != nil {
			return nil, err
		}
		res[userID] = append(res[userID], n)
	}
	return res, rows.Err()
}

func (r *SQLiteRepo) InsertNotification(ctx context.Context, userID int64, n domain.Notification) error {
	if err := r.ensureUser(ctx, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (user_id, notification_id, hour, minute, timezone, region, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, n.ID, n.Hour, n.Minute, n.Timezone, n.Region, time.Now().UTC().UnixNano(),
	)
	return err
}

func (r *SQLiteRepo) UpdateNotification(ctx context.Context, userID int64, n domain.Notification) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET hour = ?, minute = ?, timezone = ?, region = ?
		WHERE user_id = ? AND notification_id = ?`,
		n.Hour, n.Minute, n.Timezone, n.Region, userID, n.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) UpdateNotificationsRegion(ctx context.Context, userID int64, region string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET region = ? WHERE user_id = ?`,
		region, userID,
	)
	return err
}

func (r *SQLiteRepo) DeleteNotification(ctx context.Context, userID int64, notificationID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE user_id = ? AND notification_id = ?`,
		userID, notificationID,
	)
	return err
}

func (r *SQLiteRepo) DeleteAllNotifications(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE user_id = ?`,
		userID,
	)
	return err
}

// ListFavorites returns the user's saved cities in the order they were added.
func (r *SQLiteRepo) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT city_name, country
		FROM favorites
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.City, &f.Country); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

// AddFavorite saves a city; returns false if it was already saved.
func (r *SQLiteRepo) AddFavorite(ctx context.Context, userID int64, city, country string) (bool, error) {
	if err := r.ensureUser(ctx, userID); err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO favorites (user_id, fav_key, city_name, country, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, domain.FavoriteKey(city, country), city, country, time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// RemoveFavorite deletes a saved city; returns false if it was not saved.
func (r *SQLiteRepo) RemoveFavorite(ctx context.Context, userID int64, city, country string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = ? AND fav_key = ?`,
		userID, domain.FavoriteKey(city, country),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *SQLiteRepo) ClearFavorites(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = ?`,
		userID,
	)
	return err
}

// ListHistory returns recent searches, most recent first.
func (r *SQLiteRepo) ListHistory(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT city_name
		FROM history
		WHERE user_id = ?
		ORDER BY searched_at DESC
		LIMIT ?`,
		userID, domain.MaxHistoryItems,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		res = append(res, city)
	}
	return res, rows.Err()
}

// AddHistory records a search, moving repeats to the front and trimming the
// list to domain.MaxHistoryItems.
func (r *SQLiteRepo) AddHistory(ctx context.Context, userID int64, city string) error {
	if err := r.ensureUser(ctx, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (user_id, city_name, searched_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id, city_name) DO UPDATE SET searched_at = excluded.searched_at`,
		userID, city, time.Now().UTC().UnixNano(),
	)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM history
		WHERE user_id = ? AND city_name NOT IN (
			SELECT city_name FROM history
			WHERE user_id = ?
			ORDER BY searched_at DESC
			LIMIT ?
		)`,
		userID, userID, domain.MaxHistoryItems,
	)
	return err
}

func (r *SQLiteRepo) ClearHistory(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM history WHERE user_id = ?`,
		userID,
	)
	return err
}

var _ Repo = (*SQLiteRepo)(nil)
