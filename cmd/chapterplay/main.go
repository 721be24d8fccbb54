package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-chapterplay/internal/config"
	"github.com/hazadus/go-chapterplay/internal/logger"
	"github.com/hazadus/go-chapterplay/internal/storage"
)

const (
	defaultConfigPath = "~/.chapterplay"
)

// Application содержит зависимости, общие для всех команд
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	configPath string
}

// NewApplication создает приложение, конфигурация загружается перед запуском команды
func NewApplication() *Application {
	return &Application{configPath: defaultConfigPath}
}

// loadConfig загружает конфигурацию, если она еще не задана
func (app *Application) loadConfig() error {
	if app.Config == nil {
		cfg, err := config.LoadConfig(app.configPath)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		app.Config = cfg
	}
	if err := app.Config.Validate(); err != nil {
		return err
	}
	if app.Logger == nil {
		app.Logger = logger.NewLogger(logger.DefaultConfig(app.Config.LogLevel))
	}
	return nil
}

// fileLogger перенаправляет логи в файл на время работы TUI.
// Возвращает функцию, закрывающую файл.
func (app *Application) fileLogger() (*slog.Logger, func()) {
	var out io.Writer = io.Discard
	closeFn := func() {}

	f, err := os.OpenFile(app.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		out = f
		closeFn = func() { _ = f.Close() }
	}

	cfg := logger.DefaultConfig(app.Config.LogLevel)
	cfg.Output = out
	return logger.NewLogger(cfg), closeFn
}

// newBucket создает клиент бакета из конфигурации
func (app *Application) newBucket() (*storage.Bucket, error) {
	bucket, err := storage.NewBucket(storage.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
		Prefix:     app.Config.AwsPrefix,
	}, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}
	return bucket, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApplication()
	rootCmd := app.createRootCommand(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("❌", err)
		stop()
		os.Exit(1)
	}
}
