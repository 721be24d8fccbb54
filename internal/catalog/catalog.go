// Package catalog разбирает имена аудиофайлов и группирует треки по главам
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrTrackNotFound возвращается, если трек с указанным ключом отсутствует в каталоге
var ErrTrackNotFound = errors.New("трек не найден")

// Поддерживаемые расширения медиафайлов
var Extensions = []string{".mp3", ".wav"}

var namePattern = regexp.MustCompile(`(?i)^([1-9]\d*)-(\d{2,})\.(mp3|wav)$`)

// Track описывает один трек главы. После разбора не изменяется.
type Track struct {
	Chapter  int
	Number   int
	SourceID string // Исходное имя файла
}

// Key возвращает канонический ключ трека вида "<глава>-<NN>"
func (t Track) Key() string {
	return fmt.Sprintf("%d-%02d", t.Chapter, t.Number)
}

// SearchKey возвращает ключ, по которому выполняется поиск
func (t Track) SearchKey() string {
	return t.Key()
}

// Name возвращает подпись трека для отображения
func (t Track) Name() string {
	return fmt.Sprintf("Track %02d", t.Number)
}

// Ext возвращает расширение исходного файла в нижнем регистре
func (t Track) Ext() string {
	if i := strings.LastIndexByte(t.SourceID, '.'); i >= 0 {
		return strings.ToLower(t.SourceID[i:])
	}
	return ""
}

// FileLabel возвращает имя файла в каноническом виде
func (t Track) FileLabel() string {
	return t.Key() + t.Ext()
}

// Chapter содержит треки одной главы в порядке возрастания номера
type Chapter struct {
	Number int
	Tracks []Track
}

// Title возвращает заголовок главы
func (c Chapter) Title() string {
	return fmt.Sprintf("Chapter %d", c.Number)
}

// CountLabel возвращает подпись с количеством треков
func (c Chapter) CountLabel() string {
	if len(c.Tracks) == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", len(c.Tracks))
}

// ParseName разбирает имя файла. Возвращает false, если имя не соответствует соглашению.
func ParseName(name string) (Track, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Track{}, false
	}

	chapter, err := strconv.Atoi(m[1])
	if err != nil {
		return Track{}, false
	}
	number, err := strconv.Atoi(m[2])
	if err != nil || number < 1 {
		return Track{}, false
	}
	// Номер трека должен быть записан ровно с дополнением до двух цифр
	if fmt.Sprintf("%02d", number) != m[2] {
		return Track{}, false
	}

	return Track{Chapter: chapter, Number: number, SourceID: name}, true
}

// ParseAndGroup разбирает имена файлов и группирует их по главам.
// Неподходящие имена молча отбрасываются. Результат не зависит от порядка входных данных.
func ParseAndGroup(names []string) []Chapter {
	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		if track, ok := ParseName(name); ok {
			tracks = append(tracks, track)
		}
	}

	sort.Slice(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.SourceID < b.SourceID
	})

	var chapters []Chapter
	for _, track := range tracks {
		if n := len(chapters); n == 0 || chapters[n-1].Number != track.Chapter {
			chapters = append(chapters, Chapter{Number: track.Chapter})
		}
		current := &chapters[len(chapters)-1]
		// Дубликаты одного трека с другим расширением или регистром пропускаем
		if k := len(current.Tracks); k > 0 && current.Tracks[k-1].Number == track.Number {
			continue
		}
		current.Tracks = append(current.Tracks, track)
	}

	return chapters
}

// Catalog хранит сгруппированные главы и индекс треков по ключу
type Catalog struct {
	chapters []Chapter
	byKey    map[string]Track
}

// New создает каталог из списка имен файлов
func New(names []string) *Catalog {
	chapters := ParseAndGroup(names)
	byKey := make(map[string]Track)
	for _, chapter := range chapters {
		for _, track := range chapter.Tracks {
			byKey[track.Key()] = track
		}
	}
	return &Catalog{chapters: chapters, byKey: byKey}
}

// Chapters возвращает главы в порядке возрастания номера
func (c *Catalog) Chapters() []Chapter {
	return c.chapters
}

// Tracks возвращает все треки в порядке отображения
func (c *Catalog) Tracks() []Track {
	tracks := make([]Track, 0, len(c.byKey))
	for _, chapter := range c.chapters {
		tracks = append(tracks, chapter.Tracks...)
	}
	return tracks
}

// Len возвращает количество треков
func (c *Catalog) Len() int {
	return len(c.byKey)
}

// Lookup ищет трек по каноническому ключу
func (c *Catalog) Lookup(key string) (Track, error) {
	track, ok := c.byKey[strings.TrimSpace(key)]
	if !ok {
		return Track{}, fmt.Errorf("%w: %s", ErrTrackNotFound, key)
	}
	return track, nil
}
