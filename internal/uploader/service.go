// Package uploader добавляет аудиофайлы в хранилище глав под каноническими именами
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/metadata"
)

// ErrInvalidPosition возвращается для номеров главы или трека меньше единицы
var ErrInvalidPosition = errors.New("номера главы и трека должны быть положительными")

// Destination принимает содержимое файла и сохраняет его под именем name
type Destination interface {
	Upload(ctx context.Context, reader io.Reader, name string) (string, error)
}

// Inspector читает информацию об аудиофайле
type Inspector interface {
	Read(filePath string) (metadata.Info, error)
}

// Service управляет процессом загрузки файлов
type Service struct {
	destination Destination
	inspector   Inspector
}

// NewService создает новый сервис загрузки
func NewService(destination Destination) *Service {
	return &Service{
		destination: destination,
		inspector:   metadata.NewExtractor(),
	}
}

// Result содержит результат загрузки
type Result struct {
	Track    catalog.Track
	Location string // URL объекта или путь к файлу
	Info     metadata.Info
}

// CanonicalName возвращает имя файла трека вида "<глава>-<NN>.<ext>"
func CanonicalName(chapter, number int, ext string) (string, error) {
	if chapter < 1 || number < 1 {
		return "", fmt.Errorf("%w: %d-%d", ErrInvalidPosition, chapter, number)
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	name := fmt.Sprintf("%d-%02d.%s", chapter, number, ext)
	if _, ok := catalog.ParseName(name); !ok {
		return "", fmt.Errorf("%w: .%s", media.ErrUnsupportedFormat, ext)
	}
	return name, nil
}

// Add загружает файл как трек number главы chapter
func (s *Service) Add(ctx context.Context, filePath string, chapter, number int, progressCallback func(int64)) (*Result, error) {
	name, err := CanonicalName(chapter, number, filepath.Ext(filePath))
	if err != nil {
		return nil, err
	}

	// Проверяем существование файла
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("файл не найден: %s", filePath)
	}

	// Файл должен декодироваться, иначе плеер не сможет его воспроизвести
	info, err := s.inspector.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       info.Size,
			OnProgress: progressCallback,
		}
	}

	location, err := s.destination.Upload(ctx, reader, name)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки %s: %w", name, err)
	}

	track, _ := catalog.ParseName(name)
	return &Result{Track: track, Location: location, Info: info}, nil
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}
