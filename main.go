package main

import (
	"embed"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"glossa/internal/config"
	"glossa/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.WithField("error", err).Fatal("invalid configuration")
	}
	config.ConfigureLogger(cfg.LogLevel)

	repo, closeRepo, err := openSettingsRepository(cfg)
	if err != nil {
		log.WithField("error", err).Fatal("failed to open settings storage")
	}

	vault, err := openSecretVault(cfg)
	if err != nil {
		_ = closeRepo()
		log.WithField("error", err).Fatal("failed to open secret vault")
	}

	svc := services.NewServices(repo, vault, log.StandardLogger())
	app := NewApp(svc.Settings, closeRepo)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Glossa",
		Width:  720,
		Height: 560,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Glossa",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.WithField("error", err).Error("wails run failed")
	}
}
