package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/config"
)

// createRemoveCommand создает команду remove с привязкой к экземпляру приложения
func (app *Application) createRemoveCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [key]",
		Short: "Remove a track by its key",
		Long:  `Remove a track, e.g. "2-01", from S3 storage or from the local audio directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.removeTrack(ctx, args[0])
		},
	}
}

func (app *Application) removeTrack(ctx context.Context, key string) error {
	cat, err := app.catalogNames(ctx)
	if err != nil {
		return err
	}

	track, err := cat.Lookup(key)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Удаляем трек: %s (%s)\n", track.Key(), track.SourceID)

	if app.Config.Source == config.SourceS3 {
		bucket, err := app.newBucket()
		if err != nil {
			return err
		}
		if err := bucket.Delete(ctx, track.SourceID); err != nil {
			return err
		}
		fmt.Println("✅ Файл удален из S3")

		// Копия в кэше больше не нужна
		cached := filepath.Join(app.Config.CacheDir, track.SourceID)
		if err := os.Remove(cached); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("⚠️  Предупреждение: не удалось удалить копию из кэша: %v\n", err)
		}
		return nil
	}

	if err := os.Remove(filepath.Join(app.Config.AudioDir, track.SourceID)); err != nil {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}
	fmt.Println("✅ Файл удален")
	return nil
}
