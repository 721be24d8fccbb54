package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/config"
	"github.com/hazadus/go-chapterplay/internal/uploader"
	"github.com/hazadus/go-chapterplay/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	var chapter, number int
	cmd := &cobra.Command{
		Use:   "add [file path]",
		Short: "Add an audio file as a chapter track",
		Long:  `Add an mp3 or wav file as track N of chapter M. The file is stored as "<chapter>-<NN>.<ext>".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки (10 минут)
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.addTrack(uploadCtx, args[0], chapter, number)
		},
	}
	cmd.Flags().IntVarP(&chapter, "chapter", "c", 0, "chapter number (1 and above)")
	cmd.Flags().IntVarP(&number, "track", "t", 0, "track number inside the chapter (1 and above)")
	_ = cmd.MarkFlagRequired("chapter")
	_ = cmd.MarkFlagRequired("track")
	return cmd
}

// destination выбирает хранилище по источнику из конфигурации
func (app *Application) destination() (uploader.Destination, string, error) {
	if app.Config.Source == config.SourceS3 {
		bucket, err := app.newBucket()
		if err != nil {
			return nil, "", err
		}
		return bucket, "бакет " + app.Config.AwsBucketName, nil
	}
	return uploader.LocalDir(app.Config.AudioDir), "каталог " + app.Config.AudioDir, nil
}

// addTrack загружает файл с отображением прогресса
func (app *Application) addTrack(ctx context.Context, filePath string, chapter, number int) error {
	name, err := uploader.CanonicalName(chapter, number, filepath.Ext(filePath))
	if err != nil {
		return err
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("файл не найден: %s", filePath)
	}
	fileSize := stat.Size()

	dest, where, err := app.destination()
	if err != nil {
		return err
	}

	// Отображаем информацию о загрузке
	fmt.Printf("📤 Добавляем трек %s:\n", name)
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(fileSize))
	fmt.Printf("   Куда: %s\n", where)
	fmt.Println()

	// Создаем канал для отслеживания прогресса
	progressChan := make(chan int64, 16)
	progressDone := make(chan struct{})

	// Запускаем горутину для отображения прогресса
	go func() {
		defer close(progressDone)
		startTime := time.Now()

		for progress := range progressChan {
			if progress <= 0 || fileSize == 0 {
				continue
			}
			elapsed := time.Since(startTime)
			percentage := float64(progress) / float64(fileSize) * 100

			// Вычисляем скорость загрузки
			var speed float64
			if elapsed > 0 {
				speed = float64(progress) / elapsed.Seconds()
			}

			fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s",
				percentage,
				utils.FormatFileSize(int64(speed)),
				utils.FormatDuration(elapsed))
		}
	}()

	service := uploader.NewService(dest)
	result, err := service.Add(ctx, filePath, chapter, number, func(bytesRead int64) {
		select {
		case progressChan <- bytesRead:
		default:
		}
	})

	// Закрываем канал прогресса и ждем вывода последней строки
	close(progressChan)
	<-progressDone

	if err != nil {
		fmt.Println()
		return err
	}

	app.Logger.Info("трек добавлен", "track", result.Track.Key(), "location", result.Location)

	fmt.Printf("\n✅ Трек %s добавлен!\n", result.Track.Key())
	fmt.Printf("   Длительность: %s\n", utils.FormatDuration(result.Info.Duration))
	if label := result.Info.Tags.Label(); label != "" {
		fmt.Printf("   Теги: %s\n", label)
	}
	fmt.Printf("   Расположение: %s\n", result.Location)
	return nil
}
