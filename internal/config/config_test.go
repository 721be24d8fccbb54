package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, value any) string {
	t.Helper()

	data, err := yaml.Marshal(value)
	require.NoError(t, err, "Ошибка сериализации конфигурации")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644), "Ошибка записи файла конфигурации")
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, Config{
		AudioDir:      "~/audiobook",
		Source:        SourceS3,
		AwsBucketName: "test-bucket",
		AwsAccessKey:  "test-access-key",
		AwsSecretKey:  "test-secret-key",
		AwsRegion:     "us-east-1",
		AwsEndpoint:   "https://s3.amazonaws.com",
		AwsPrefix:     "audio/",
		CacheDir:      "/tmp/chapterplay",
		LogLevel:      "debug",
		SeekStep:      10,
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "audiobook"), cfg.AudioDir)
	assert.Equal(t, SourceS3, cfg.Source)
	assert.Equal(t, "test-bucket", cfg.AwsBucketName)
	assert.Equal(t, "audio/", cfg.AwsPrefix)
	assert.Equal(t, "/tmp/chapterplay", cfg.CacheDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10.0, cfg.SeekStep)
	assert.Equal(t, "/tmp/chapterplay", cfg.PlaybackDir())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, DefaultAudioDir, cfg.AudioDir)
	assert.Equal(t, SourceLocal, cfg.Source)
	assert.Equal(t, filepath.Join(home, ".cache/chapterplay"), cfg.CacheDir)
	assert.Equal(t, DefaultSeekStep, cfg.SeekStep)
	assert.Equal(t, DefaultAudioDir, cfg.PlaybackDir())
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio_dir: [unterminated"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestEnvVarOverride(t *testing.T) {
	path := writeConfig(t, map[string]string{
		"aws_bucket_name": "default-bucket",
		"aws_access_key":  "default-key",
	})

	t.Setenv("AWS_BUCKET_NAME", "env-bucket")
	t.Setenv("AWS_ACCESS_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-bucket", cfg.AwsBucketName)
	assert.Equal(t, "env-key", cfg.AwsAccessKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"локальный источник", Config{Source: SourceLocal}, false},
		{"s3 с бакетом", Config{Source: SourceS3, AwsBucketName: "b"}, false},
		{"s3 без бакета", Config{Source: SourceS3}, true},
		{"неизвестный источник", Config{Source: "ftp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
