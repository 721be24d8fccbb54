// Package storage хранит аудиофайлы глав в бакете S3
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ErrNoBucket возвращается, если имя бакета не задано
var ErrNoBucket = errors.New("не задано имя бакета S3")

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
	Prefix     string // Общий префикс ключей треков, например "audio/"
}

// Object - объект бакета, имя указано без префикса
type Object struct {
	Name string
	Size int64
}

type objectAPI interface {
	ListObjectsV2PagesWithContext(ctx aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, opts ...request.Option) error
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

type uploadAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type downloadAPI interface {
	DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*s3manager.Downloader)) (int64, error)
}

// Bucket - бакет с треками
type Bucket struct {
	client     objectAPI
	uploader   uploadAPI
	downloader downloadAPI
	config     Config
	logger     *slog.Logger
}

// NewBucket создает клиент бакета
func NewBucket(config Config, logger *slog.Logger) (*Bucket, error) {
	if config.BucketName == "" {
		return nil, ErrNoBucket
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return newBucket(config, s3.New(sess), s3manager.NewUploader(sess), s3manager.NewDownloader(sess), logger), nil
}

func newBucket(config Config, client objectAPI, up uploadAPI, down downloadAPI, logger *slog.Logger) *Bucket {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bucket{
		client:     client,
		uploader:   up,
		downloader: down,
		config:     config,
		logger:     logger.With(slog.String("bucket", config.BucketName)),
	}
}

// Key возвращает полный ключ объекта для имени файла
func (b *Bucket) Key(name string) string {
	return path.Join(b.config.Prefix, name)
}

// URL возвращает адрес объекта
func (b *Bucket) URL(name string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(b.config.Endpoint, "/"), b.config.BucketName, b.Key(name))
}

// List возвращает объекты, лежащие непосредственно под префиксом
func (b *Bucket) List(ctx context.Context) ([]Object, error) {
	prefix := b.config.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var objects []Object
	err := b.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.config.BucketName),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.StringValue(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			objects = append(objects, Object{Name: name, Size: aws.Int64Value(obj.Size)})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка объектов: %w", err)
	}

	b.logger.Debug("получен список объектов", slog.Int("count", len(objects)))
	return objects, nil
}

// ListNames возвращает имена файлов в бакете
func (b *Bucket) ListNames(ctx context.Context) ([]string, error) {
	objects, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(objects))
	for i, obj := range objects {
		names[i] = obj.Name
	}
	return names, nil
}

// Download скачивает объект в каталог dir. Файл того же размера не скачивается повторно.
// Возвращает true, если файл был скачан.
func (b *Bucket) Download(ctx context.Context, obj Object, dir string) (bool, error) {
	target := filepath.Join(dir, obj.Name)
	if info, err := os.Stat(target); err == nil && info.Size() == obj.Size {
		return false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("ошибка создания каталога: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+obj.Name+".*")
	if err != nil {
		return false, fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = b.downloader.DownloadWithContext(ctx, tmp, &s3.GetObjectInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(b.Key(obj.Name)),
	})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, fmt.Errorf("ошибка скачивания %s: %w", obj.Name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return false, fmt.Errorf("ошибка сохранения %s: %w", obj.Name, err)
	}
	b.logger.Debug("файл скачан", slog.String("name", obj.Name), slog.Int64("size", obj.Size))
	return true, nil
}

// Upload загружает содержимое reader под именем name и возвращает URL объекта
func (b *Bucket) Upload(ctx context.Context, reader io.Reader, name string) (string, error) {
	_, err := b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(b.Key(name)),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}
	return b.URL(name), nil
}

// Delete удаляет объект из бакета
func (b *Bucket) Delete(ctx context.Context, name string) error {
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(b.Key(name)),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}
