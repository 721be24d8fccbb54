// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Источники аудиофайлов
const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

// Значения по умолчанию
const (
	DefaultAudioDir = "./audio"
	DefaultCacheDir = "~/.cache/chapterplay"
	DefaultLogFile  = "~/.chapterplay.log"
	DefaultSeekStep = 5.0
)

// Config структура для хранения конфигурации приложения
type Config struct {
	AudioDir      string  `yaml:"audio_dir"`
	Source        string  `yaml:"source"`
	AwsBucketName string  `yaml:"aws_bucket_name"`
	AwsAccessKey  string  `yaml:"aws_access_key"`
	AwsSecretKey  string  `yaml:"aws_secret_key"`
	AwsRegion     string  `yaml:"aws_region"`
	AwsEndpoint   string  `yaml:"aws_endpoint"`
	AwsPrefix     string  `yaml:"aws_prefix"`
	CacheDir      string  `yaml:"cache_dir"`
	LogLevel      string  `yaml:"log_level"`
	LogFile       string  `yaml:"log_file"`
	SeekStep      float64 `yaml:"seek_step"` // Шаг перемотки в секундах
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не является ошибкой: возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := expandHome(filePath, home)

	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Работаем со значениями по умолчанию
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults(home)

	return config, nil
}

// applyEnv переопределяет параметры AWS переменными окружения
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"AWS_BUCKET_NAME": &c.AwsBucketName,
		"AWS_ACCESS_KEY":  &c.AwsAccessKey,
		"AWS_SECRET_KEY":  &c.AwsSecretKey,
		"AWS_REGION":      &c.AwsRegion,
		"AWS_ENDPOINT":    &c.AwsEndpoint,
	}
	for name, field := range overrides {
		if value := os.Getenv(name); value != "" {
			*field = value
		}
	}
}

func (c *Config) applyDefaults(home string) {
	if c.AudioDir == "" {
		c.AudioDir = DefaultAudioDir
	}
	if c.Source == "" {
		c.Source = SourceLocal
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.SeekStep <= 0 {
		c.SeekStep = DefaultSeekStep
	}

	// Раскрываем тильду в путях
	c.AudioDir = expandHome(c.AudioDir, home)
	c.CacheDir = expandHome(c.CacheDir, home)
	c.LogFile = expandHome(c.LogFile, home)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Source {
	case SourceLocal:
		return nil
	case SourceS3:
		if c.AwsBucketName == "" {
			return fmt.Errorf("для источника %q необходимо указать aws_bucket_name", SourceS3)
		}
		return nil
	default:
		return fmt.Errorf("неизвестный источник аудио: %q", c.Source)
	}
}

// PlaybackDir возвращает каталог, из которого воспроизводятся файлы
func (c *Config) PlaybackDir() string {
	if c.Source == SourceS3 {
		return c.CacheDir
	}
	return c.AudioDir
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~") {
		return strings.Replace(path, "~", home, 1)
	}
	return path
}
