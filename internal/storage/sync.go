package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazadus/go-chapterplay/internal/catalog"
)

// SyncResult - итог синхронизации
type SyncResult struct {
	Downloaded []string
	Skipped    int // Уже скачанные файлы
	Ignored    int // Объекты с именами, которые не являются треками
}

// Sync скачивает все треки бакета в каталог dir.
// Объекты с некорректными именами пропускаются так же, как их пропускает каталог.
func Sync(ctx context.Context, bucket *Bucket, dir string, onFile func(name string)) (SyncResult, error) {
	var res SyncResult

	objects, err := bucket.List(ctx)
	if err != nil {
		return res, err
	}

	for _, obj := range objects {
		if _, ok := catalog.ParseName(obj.Name); !ok {
			res.Ignored++
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		downloaded, err := bucket.Download(ctx, obj, dir)
		if err != nil {
			return res, fmt.Errorf("синхронизация прервана: %w", err)
		}
		if !downloaded {
			res.Skipped++
			continue
		}
		res.Downloaded = append(res.Downloaded, obj.Name)
		if onFile != nil {
			onFile(obj.Name)
		}
	}

	bucket.logger.Info("синхронизация завершена",
		slog.Int("downloaded", len(res.Downloaded)),
		slog.Int("skipped", res.Skipped),
		slog.Int("ignored", res.Ignored))
	return res, nil
}
