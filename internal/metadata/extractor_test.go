package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/hazadus/go-chapterplay/internal/media"
)

// writeSilence создает wav файл с тишиной длительностью в одну секунду
func writeSilence(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Take(8000, beep.Silence(-1)), format); err != nil {
		t.Fatalf("Ошибка записи wav: %v", err)
	}
}

func TestTagsFromReaderWithoutTags(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "1-01.mp3")

	err := os.WriteFile(testFilePath, []byte("fake mp3 content for testing"), 0644)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	file, err := os.Open(testFilePath)
	if err != nil {
		t.Fatalf("Ошибка открытия файла: %v", err)
	}
	defer file.Close()

	tags, err := NewExtractor().TagsFromReader(file)
	if err != nil {
		t.Fatalf("Файл без тегов не должен давать ошибку: %v", err)
	}
	if tags != (Tags{}) {
		t.Errorf("Ожидались пустые теги, получено: %+v", tags)
	}
	if tags.Label() != "" {
		t.Errorf("Ожидалась пустая подпись, получено: %q", tags.Label())
	}
}

func TestTagsLabel(t *testing.T) {
	tests := []struct {
		tags     Tags
		expected string
	}{
		{Tags{Artist: "Автор", Title: "Глава первая"}, "Автор - Глава первая"},
		{Tags{Title: "Глава первая"}, "Глава первая"},
		{Tags{Artist: "Автор"}, ""},
	}

	for _, tt := range tests {
		if got := tt.tags.Label(); got != tt.expected {
			t.Errorf("Label(%+v) = %q, ожидалось %q", tt.tags, got, tt.expected)
		}
	}
}

func TestReadWav(t *testing.T) {
	testFilePath := filepath.Join(t.TempDir(), "2-01.wav")
	writeSilence(t, testFilePath)

	info, err := NewExtractor().Read(testFilePath)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if info.Duration != time.Second {
		t.Errorf("Ожидалась длительность 1s, получено: %v", info.Duration)
	}
	if info.Size <= 0 {
		t.Errorf("Ожидался положительный размер, получено: %d", info.Size)
	}
}

func TestReadCorruptedFile(t *testing.T) {
	testFilePath := filepath.Join(t.TempDir(), "1-01.mp3")

	err := os.WriteFile(testFilePath, []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD}, 0644)
	if err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	info, err := NewExtractor().Read(testFilePath)
	if err == nil {
		t.Fatal("Ожидалась ошибка для некорректного MP3 файла")
	}
	if !strings.Contains(err.Error(), "ошибка получения длительности") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
	if info.Size != 7 {
		t.Errorf("Размер должен быть известен даже при ошибке, получено: %d", info.Size)
	}
}

func TestReadNonExistentFile(t *testing.T) {
	_, err := NewExtractor().Read("/non/existent/1-01.mp3")
	if err == nil {
		t.Fatal("Ожидалась ошибка для несуществующего файла")
	}
	if !strings.Contains(err.Error(), "ошибка получения информации о файле") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestDurationUnsupportedFormat(t *testing.T) {
	testFilePath := filepath.Join(t.TempDir(), "1-01.flac")
	if err := os.WriteFile(testFilePath, []byte("flac"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	_, err := NewExtractor().Duration(testFilePath)
	if !errors.Is(err, media.ErrUnsupportedFormat) {
		t.Errorf("Ожидалась ErrUnsupportedFormat, получено: %v", err)
	}
}
