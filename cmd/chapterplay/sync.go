package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/config"
	"github.com/hazadus/go-chapterplay/internal/storage"
)

// createSyncCommand создает команду sync с привязкой к экземпляру приложения
func (app *Application) createSyncCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download tracks from S3 storage into the cache",
		Long:  `Download every track of the configured bucket into the cache directory. Files already present are skipped.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.syncBucket(ctx)
		},
	}
}

func (app *Application) syncBucket(ctx context.Context) error {
	if app.Config.Source != config.SourceS3 {
		return fmt.Errorf("синхронизация доступна только для источника %q", config.SourceS3)
	}

	bucket, err := app.newBucket()
	if err != nil {
		return err
	}

	fmt.Printf("🔄 Синхронизация с бакетом %s\n", app.Config.AwsBucketName)
	fmt.Printf("   Каталог: %s\n", app.Config.CacheDir)
	fmt.Println()

	res, err := storage.Sync(ctx, bucket, app.Config.CacheDir, func(name string) {
		fmt.Printf("📥 %s\n", name)
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Скачано: %d, уже было: %d, пропущено: %d\n",
		len(res.Downloaded), res.Skipped, res.Ignored)
	return nil
}
