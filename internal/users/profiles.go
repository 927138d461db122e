package users

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
	"github.com/aadvantures228-boop/Weather-Main/internal/store"
)

// RegionListener is notified after a user's home region changes, so state that
// caches the region (notification records) stays in sync.
type RegionListener interface {
	SyncRegion(ctx context.Context, userID int64, region string) error
}

// Profiles reads and mutates per-user settings. Profiles are created lazily
// with defaults on first access and live for the lifetime of the database.
type Profiles struct {
	repo     store.Repo
	log      *zap.Logger
	onRegion RegionListener
}

func New(repo store.Repo, log *zap.Logger) *Profiles {
	return &Profiles{repo: repo, log: log}
}

// OnRegionChange registers the listener invoked from SetRegion.
func (p *Profiles) OnRegionChange(l RegionListener) {
	p.onRegion = l
}

func (p *Profiles) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return p.repo.GetProfile(ctx, userID)
}

// Region returns the user's current home region.
func (p *Profiles) Region(ctx context.Context, userID int64) (string, error) {
	prof, err := p.repo.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return prof.Region, nil
}

func (p *Profiles) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	if err := p.repo.SetLanguage(ctx, userID, lang); err != nil {
		return err
	}
	p.log.Info("language updated", zap.Int64("user_id", userID), zap.String("lang", string(lang)))
	return nil
}

// SetRegion is the single entry point for region changes. Besides the profile
// row it pushes the new region into every existing notification record of the
// user; the dispatcher reads the record copy at fire time, so skipping the
// sync would strand notifications on a stale region.
func (p *Profiles) SetRegion(ctx context.Context, userID int64, region string) error {
	region = strings.TrimSpace(region)
	if region == "" {
		return errors.New("empty region")
	}
	if err := p.repo.SetRegion(ctx, userID, region); err != nil {
		return err
	}
	if p.onRegion != nil {
		if err := p.onRegion.SyncRegion(ctx, userID, region); err != nil {
			return err
		}
	}
	p.log.Info("region updated", zap.Int64("user_id", userID), zap.String("region", region))
	return nil
}

func (p *Profiles) SetTimezone(ctx context.Context, userID int64, tz string) error {
	tz, err := domain.ValidateZone(tz)
	if err != nil {
		return err
	}
	if err := p.repo.SetTimezone(ctx, userID, tz); err != nil {
		return err
	}
	p.log.Info("timezone updated", zap.Int64("user_id", userID), zap.String("tz", tz))
	return nil
}

func (p *Profiles) SetPressureUnit(ctx context.Context, userID int64, unit domain.PressureUnit) error {
	if err := p.repo.SetPressureUnit(ctx, userID, unit); err != nil {
		return err
	}
	p.log.Info("pressure unit updated", zap.Int64("user_id", userID), zap.String("unit", string(unit)))
	return nil
}

// ToggleFeature flips one report feature and returns its new state.
func (p *Profiles) ToggleFeature(ctx context.Context, userID int64, f domain.Feature) (bool, error) {
	if !domain.KnownFeature(f) {
		return false, errors.New("unknown feature: " + string(f))
	}
	prof, err := p.repo.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	features := prof.Features.Clone()
	features[f] = !features[f]
	if err := p.repo.SetFeatures(ctx, userID, features); err != nil {
		return false, err
	}
	return features[f], nil
}
