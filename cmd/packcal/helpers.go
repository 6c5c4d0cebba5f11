package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/config"
	"github.com/Veraticus/packcal/internal/dataset"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/Veraticus/packcal/internal/service"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/Veraticus/packcal/internal/storage"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// nowFunc is the clock every command reads once per invocation.
var nowFunc = time.Now

// initStorage opens the purchase log database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// session is everything a read command needs, loaded once.
type session struct {
	now       time.Time
	store     service.Storage
	merged    *model.Dataset
	override  *model.Dataset
	anchor    stateday.Anchor
	purchases []model.PurchaseRecord
}

// openSession opens storage and loads the merged dataset, anchor and
// purchase log. Callers must close the returned session.
func openSession(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	s := &session{now: nowFunc(), store: store}

	s.merged, s.override, err = loadMerged(ctx, cmd.ErrOrStderr(), store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	s.anchor, err = loadAnchor(ctx, store, s.now)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	s.purchases, err = store.ListPurchases(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	return s, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// loadMerged loads the base dataset and overlays the stored override. Load
// problems are printed as warnings to w; they never fail the command.
func loadMerged(ctx context.Context, w io.Writer, store service.OverrideStore) (*model.Dataset, *model.Dataset, error) {
	base := dataset.Empty()

	cfg, err := config.LoadDatasetConfig()
	switch {
	case errors.Is(err, common.ErrMissingConfig):
		common.LogDebug("no dataset source configured, using local edits only", nil)
	case err != nil:
		return nil, nil, err
	default:
		res := dataset.NewLoader(cfg.Source, cfg.Timeout).Load(ctx)
		for _, advisory := range res.Advisories {
			slog.Warn("dataset advisory", "source", res.Source, "advisory", advisory)
			fmt.Fprintln(w, cli.FormatWarning(advisory))
		}
		base = res.Dataset
	}

	override, err := store.GetOverride(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load override: %w", err)
	}

	return dataset.Merge(base, override), override, nil
}

// loadAnchor returns the stored anchor, or the default lookback anchor.
func loadAnchor(ctx context.Context, store service.SettingsStore, now time.Time) (stateday.Anchor, error) {
	anchor, ok, err := store.GetAnchor(ctx, now)
	if err != nil {
		return stateday.Anchor{}, fmt.Errorf("failed to load anchor: %w", err)
	}
	if !ok {
		return stateday.DefaultAnchor(now), nil
	}
	return anchor, nil
}

// parseLocalDate parses a YYYY-MM-DD display date in the local zone. Empty
// means today.
func parseLocalDate(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return calendar.AddDaysLocal(now.Local(), 0), nil
	}
	t, err := time.ParseInLocation(calendar.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("Invalid date %q (expected YYYY-MM-DD).", s), common.ErrInvalidInput)
	}
	return t, nil
}

// viewState builds the calendar state from the shared flags.
func viewState(s *session, date time.Time, mode view.Mode, category string) view.State {
	return view.NewState(s.now.Local(), s.anchor).
		WithCategory(category).
		Select(date).
		WithMode(mode)
}

// defaultCategory returns the configured category filter.
func defaultCategory() string {
	return viper.GetString("calendar.category")
}
