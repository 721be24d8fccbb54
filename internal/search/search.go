// Package search фильтрует каталог по поисковой строке.
package search

import (
	"strings"

	"github.com/hazadus/go-chapterplay/internal/catalog"
)

// EmptyStateText - сообщение, которое показывается, когда ничего не найдено
const EmptyStateText = "Ничего не найдено"

// Expander управляет раскрытием секций
type Expander interface {
	SetExpanded(chapter int, expanded bool)
}

// Section - результат фильтрации одной главы
type Section struct {
	Chapter  int
	Matches  int
	Visible  bool
	Expanded bool
}

// Result - результат применения запроса к каталогу
type Result struct {
	Query          string // Нормализованный запрос
	Sections       []Section
	HasAnyMatch    bool
	ShowEmptyState bool

	tracks map[string]bool
}

// TrackVisible сообщает, виден ли трек с указанным ключом
func (r Result) TrackVisible(key string) bool {
	return r.tracks[key]
}

// Section возвращает результат для главы
func (r Result) Section(chapter int) (Section, bool) {
	for _, s := range r.Sections {
		if s.Chapter == chapter {
			return s, true
		}
	}
	return Section{}, false
}

// Normalize приводит запрос к виду для сравнения
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches сообщает, подходит ли трек под нормализованный запрос
func Matches(track catalog.Track, normalized string) bool {
	return strings.Contains(strings.ToLower(track.SearchKey()), normalized)
}

// Apply применяет запрос к главам и раскрывает или сворачивает секции через expander.
// Пустой запрос сворачивает все секции и показывает все треки.
func Apply(query string, chapters []catalog.Chapter, expander Expander) Result {
	q := Normalize(query)
	res := Result{
		Query:    q,
		Sections: make([]Section, 0, len(chapters)),
		tracks:   make(map[string]bool),
	}

	total := 0
	for _, ch := range chapters {
		matches := 0
		for _, t := range ch.Tracks {
			ok := Matches(t, q)
			res.tracks[t.Key()] = ok
			if ok {
				matches++
			}
		}
		total += matches

		s := Section{Chapter: ch.Number, Matches: matches}
		switch {
		case q == "":
			s.Visible = true
		case matches > 0:
			s.Visible, s.Expanded = true, true
		}
		if expander != nil {
			expander.SetExpanded(ch.Number, s.Expanded)
		}
		res.Sections = append(res.Sections, s)
	}

	res.HasAnyMatch = total > 0
	res.ShowEmptyState = q != "" && !res.HasAnyMatch
	return res
}
