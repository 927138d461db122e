package users

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
	"github.com/aadvantures228-boop/Weather-Main/internal/store"
)

type recordingListener struct {
	userID int64
	region string
	calls  int
}

func (l *recordingListener) SyncRegion(_ context.Context, userID int64, region string) error {
	l.userID, l.region = userID, region
	l.calls++
	return nil
}

func newProfiles(t *testing.T) *Profiles {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return New(repo, zap.NewNop())
}

func TestSetRegion_NotifiesListener(t *testing.T) {
	p := newProfiles(t)
	var l recordingListener
	p.OnRegionChange(&l)

	if err := p.SetRegion(context.Background(), 42, "Paris"); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	if l.calls != 1 || l.userID != 42 || l.region != "Paris" {
		t.Fatalf("listener not synced: %+v", l)
	}

	region, err := p.Region(context.Background(), 42)
	if err != nil || region != "Paris" {
		t.Fatalf("Region = %q, %v", region, err)
	}
}

func TestSetRegion_RejectsEmpty(t *testing.T) {
	p := newProfiles(t)
	if err := p.SetRegion(context.Background(), 1, "   "); err == nil {
		t.Fatal("want error for empty region")
	}
}

func TestSetTimezone_Validates(t *testing.T) {
	p := newProfiles(t)
	ctx := context.Background()

	if err := p.SetTimezone(ctx, 1, " Europe/Moscow "); err != nil {
		t.Fatalf("SetTimezone: %v", err)
	}
	prof, _ := p.Get(ctx, 1)
	if prof.Timezone != "Europe/Moscow" {
		t.Fatalf("timezone = %q", prof.Timezone)
	}

	if err := p.SetTimezone(ctx, 1, "Atlantis/Central"); !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Fatalf("want ErrInvalidTimezone, got %v", err)
	}
}

func TestToggleFeature(t *testing.T) {
	p := newProfiles(t)
	ctx := context.Background()

	on, err := p.ToggleFeature(ctx, 1, domain.FeatureCloudiness)
	if err != nil || !on {
		t.Fatalf("first toggle: %v %v", on, err)
	}
	on, err = p.ToggleFeature(ctx, 1, domain.FeatureCloudiness)
	if err != nil || on {
		t.Fatalf("second toggle: %v %v", on, err)
	}
	if _, err := p.ToggleFeature(ctx, 1, domain.Feature("bogus")); err == nil {
		t.Fatal("want error for unknown feature")
	}
}
