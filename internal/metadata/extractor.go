// Package metadata извлекает теги и длительность из аудиофайлов
package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/hazadus/go-chapterplay/internal/media"
)

// Tags хранит теги трека. Пустые поля означают отсутствие тега.
type Tags struct {
	Artist string
	Title  string
	Album  string
}

// Info содержит информацию о файле трека
type Info struct {
	Tags
	Size     int64
	Duration time.Duration
}

// Label возвращает "Artist - Title" или пустую строку, если тегов нет
func (t Tags) Label() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	default:
		return t.Title
	}
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// TagsFromReader читает теги. Файл без тегов не является ошибкой.
func (e *Extractor) TagsFromReader(reader io.ReadSeeker) (Tags, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Tags{}, fmt.Errorf("ошибка позиционирования: %w", err)
	}

	m, err := tag.ReadFrom(reader)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Tags{}, nil
	}
	if err != nil {
		return Tags{}, fmt.Errorf("ошибка чтения тегов: %w", err)
	}

	return Tags{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}, nil
}

// Duration декодирует файл и возвращает его длительность
func (e *Extractor) Duration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	default:
		return 0, fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, filePath)
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Read собирает теги, размер и длительность файла.
// Нечитаемые теги не мешают получить остальную информацию.
func (e *Extractor) Read(filePath string) (Info, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return Info{}, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	info := Info{Size: stat.Size()}

	if file, err := os.Open(filePath); err == nil {
		info.Tags, _ = e.TagsFromReader(file)
		file.Close()
	}

	info.Duration, err = e.Duration(filePath)
	if err != nil {
		return info, fmt.Errorf("ошибка получения длительности: %w", err)
	}
	return info, nil
}
