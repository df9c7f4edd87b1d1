package main

import (
	"flag"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/td0m/stuff/internal/config"
	"github.com/td0m/stuff/internal/logger"
	"github.com/td0m/stuff/internal/ui"
	"github.com/td0m/stuff/pkg/persist"
	"github.com/td0m/stuff/pkg/task"
	"github.com/td0m/stuff/pkg/view"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	check(err)
	check(os.MkdirAll(cfg.DataDir, 0o755))

	log, err := logger.New(cfg.Development, cfg.LogFile)
	check(err)
	defer log.Sync()

	var kv persist.KV
	switch cfg.Backend {
	case "sqlite":
		db, err := persist.InSQLite(filepath.Join(cfg.DataDir, "stuff.db"))
		check(err)
		defer db.Close()
		kv = db
	default:
		dir, err := persist.InDir(cfg.DataDir)
		check(err)
		kv = dir
	}

	store := task.NewStore(log)
	check(persist.LoadStore(kv, store))

	prefs, err := ui.LoadPrefs(kv)
	check(err)
	if cfg.DefaultView != "" {
		prefs.DefaultView = cfg.DefaultView
	}
	var saved string
	if found, err := kv.Load(persist.KeyView, &saved); err == nil && found {
		prefs.DefaultView = saved
	}
	if prefs.DefaultView == "" {
		prefs.DefaultView = string(view.Inbox)
	}

	log.Info("starting",
		zap.String("backend", cfg.Backend),
		zap.String("dataDir", cfg.DataDir),
		zap.Int("tasks", len(store.Tasks)))

	a := ui.NewApp(store, kv, prefs, log)
	p := tea.NewProgram(a)
	p.EnterAltScreen()
	defer p.ExitAltScreen()
	check(p.Start())
}
