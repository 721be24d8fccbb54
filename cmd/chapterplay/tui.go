package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/config"
	"github.com/hazadus/go-chapterplay/internal/media/beepaudio"
	"github.com/hazadus/go-chapterplay/internal/player"
	"github.com/hazadus/go-chapterplay/internal/storage"
	"github.com/hazadus/go-chapterplay/internal/tui"
	"github.com/hazadus/go-chapterplay/internal/tui/tracklist"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface with chapters and players.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI(ctx)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context) error {
	cat, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}

	// Экран занят TUI, поэтому логи пишутся в файл
	log, closeLog := app.fileLogger()
	defer closeLog()

	backend := beepaudio.NewBackend(beepaudio.WithLogger(log))
	defer backend.Close()

	coord := player.NewCoordinator(backend, app.Config.PlaybackDir(), log)
	if err := coord.AttachAll(cat.Tracks()); err != nil {
		_ = coord.Close()
		return err
	}

	tuiApp := tui.NewApp(cat, coord, backend.Events(), tracklist.Options{
		SeekStep: app.Config.SeekStep,
		Logger:   log,
	})
	return tuiApp.Run()
}

// loadCatalog строит каталог из каталога воспроизведения.
// Для источника s3 перед этим скачиваются недостающие файлы.
func (app *Application) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if app.Config.Source == config.SourceS3 {
		bucket, err := app.newBucket()
		if err != nil {
			return nil, err
		}
		fmt.Printf("🔄 Синхронизация с бакетом %s...\n", app.Config.AwsBucketName)
		if _, err := storage.Sync(ctx, bucket, app.Config.CacheDir, nil); err != nil {
			return nil, err
		}
	}
	return catalog.Load(app.Config.PlaybackDir())
}
