package cli

import (
	"errors"

	"github.com/llehouerou/songbrowser/internal/config"
	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/library"
	"github.com/llehouerou/songbrowser/internal/playstats"
	"github.com/llehouerou/songbrowser/internal/state"
)

// app bundles what every command needs.
type app struct {
	cfg   *config.Config
	state *state.Manager
	stats *playstats.Stats
	lib   *library.Library
}

func openApp(opts *options) (*app, error) {
	var cfg *config.Config
	var err error
	if opts.config != "" {
		cfg, err = config.LoadFile(opts.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, failed(errmsg.OpConfigLoad, err)
	}

	statsPath, err := cfg.StatsPath()
	if err != nil {
		return nil, failed(errmsg.OpStatsLoad, err)
	}
	stats, err := playstats.Load(statsPath)
	if err != nil {
		return nil, failedWith(errmsg.OpStatsLoad, statsPath, err)
	}

	st, err := state.Open(cfg.Database)
	if err != nil {
		return nil, failed(errmsg.OpInitialize, err)
	}

	lib := library.New(st.DB(), stats)
	if err := lib.SetExcludes(cfg.Exclude); err != nil {
		st.Close()
		return nil, failed(errmsg.OpConfigLoad, err)
	}
	if err := lib.MigrateSongDirs(cfg.SongDirs); err != nil {
		st.Close()
		return nil, failed(errmsg.OpInitialize, err)
	}

	return &app{cfg: cfg, state: st, stats: stats, lib: lib}, nil
}

// close flushes pending saves and closes the database.
func (a *app) close() error {
	if err := a.state.Close(); err != nil {
		return failed(errmsg.OpSettingsSave, err)
	}
	return nil
}

// run opens the app, calls fn and always closes it again.
func run(opts *options, fn func(a *app) error) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	return errors.Join(fn(a), a.close())
}
