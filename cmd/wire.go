package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/openfeed/app"
	"github.com/CrestNiraj12/openfeed/infra/auth"
	"github.com/CrestNiraj12/openfeed/infra/config"
	"github.com/CrestNiraj12/openfeed/infra/mastodon"
	"github.com/CrestNiraj12/openfeed/timeline"
)

// newFetcher builds the page fetcher for cfg. Tests swap it for a fake.
var newFetcher = func(cfg config.Config) (app.PageFetcher, error) {
	var tp auth.TokenProvider = auth.NewFileTokenProvider(cfg.TokenPath)
	if cfg.Token != "" {
		tp = auth.StaticToken(cfg.Token)
	}

	client := mastodon.NewClient(cfg.InstanceURL, tp, cfg.RequestTimeout)
	if cfg.Hashtag != "" {
		return mastodon.NewTagTimeline(client, cfg.Hashtag), nil
	}
	return mastodon.NewHomeTimeline(client), nil
}

type deps struct {
	cfg     config.Config
	fetcher app.PageFetcher
	logger  *log.Logger
	logFile *os.File
}

func wireDeps(configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &deps{cfg: cfg, logger: log.New(io.Discard, "", 0)}
	if cfg.LogFile != "" {
		// The terminal belongs to the UI, so logs go to a file.
		f, err := tea.LogToFile(cfg.LogFile, "openfeed")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		d.logFile = f
		d.logger = log.Default()
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("wire fetcher: %w", err)
	}
	d.fetcher = fetcher
	return d, nil
}

func (d *deps) close() {
	if d.logFile != nil {
		_ = d.logFile.Close()
	}
}

func (d *deps) cursor() timeline.Cursor {
	return timeline.Cursor{
		RefreshCount: d.cfg.RefreshPageSize,
		OlderCount:   d.cfg.OlderPageSize,
	}
}

func (d *deps) sourceLabel() string {
	if d.cfg.Hashtag != "" {
		return "#" + d.cfg.Hashtag
	}
	return "home"
}

// loadStore restores the saved timeline. An unreadable snapshot is logged and
// the session starts empty.
func (d *deps) loadStore() *timeline.Store {
	blob, err := config.LoadSnapshot(d.cfg.SnapshotPath)
	if err != nil {
		d.logger.Printf("snapshot: %v", err)
		return timeline.NewStore(nil)
	}
	items, err := timeline.DecodeSnapshot(blob)
	if err != nil {
		d.logger.Printf("snapshot: discarding %s: %v", d.cfg.SnapshotPath, err)
		return timeline.NewStore(nil)
	}
	d.logger.Printf("snapshot: restored %d items", len(items))
	return timeline.NewStore(items)
}

func (d *deps) saveStore(store *timeline.Store) error {
	blob, err := timeline.EncodeSnapshot(store.Snapshot())
	if err != nil {
		return err
	}
	if err := config.SaveSnapshot(d.cfg.SnapshotPath, blob); err != nil {
		return err
	}
	d.logger.Printf("snapshot: saved %d items", store.Len())
	return nil
}
