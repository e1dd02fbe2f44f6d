package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfalcao/metacompra/internal/config"
	"github.com/dfalcao/metacompra/internal/database"
	"github.com/dfalcao/metacompra/internal/database/repository"
	"github.com/dfalcao/metacompra/internal/imaging"
	"github.com/dfalcao/metacompra/internal/logging"
	"github.com/dfalcao/metacompra/internal/service"
	"github.com/dfalcao/metacompra/internal/tui"
)

func main() {
	logging.Setup()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatal("config", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		fatal("mkdir db dir", err)
	}

	// migration failures are fatal at startup
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		fatal("migrate", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fatal("open db", err)
	}
	defer db.Close()

	itemRepo := repository.NewItemRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	if err := settingsRepo.Ensure(ctx); err != nil {
		fatal("ensure settings", err)
	}

	items := &service.ItemService{Items: itemRepo, Codec: imaging.New()}
	forecast := &service.ForecastService{Items: itemRepo}

	app := tui.New(ctx, cfg,
		tui.Repos{Items: itemRepo, Settings: settingsRepo},
		tui.Services{Items: items, Forecast: forecast},
	)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fatal("run", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
