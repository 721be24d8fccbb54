// Package section хранит состояние раскрытия секций глав.
package section

import (
	"log/slog"
	"sort"
)

// Listener получает новое состояние секции после его изменения
type Listener func(chapter int, expanded bool)

// Coordinator хранит признак раскрытия для каждой секции. Секции независимы:
// изменение одной не затрагивает другие. Идентификатор секции - номер главы.
type Coordinator struct {
	expanded  map[int]bool
	listeners []Listener
	logger    *slog.Logger
}

// NewCoordinator создает координатор, в котором все секции свернуты
func NewCoordinator(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		expanded: make(map[int]bool),
		logger:   logger,
	}
}

// OnChange подписывает слушателя на изменения состояния секций
func (c *Coordinator) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Expanded сообщает, раскрыта ли секция
func (c *Coordinator) Expanded(chapter int) bool {
	return c.expanded[chapter]
}

// Toggle переключает секцию и возвращает новое состояние
func (c *Coordinator) Toggle(chapter int) bool {
	next := !c.expanded[chapter]
	c.SetExpanded(chapter, next)
	return next
}

// SetExpanded явно задает состояние секции. Повторный вызов с тем же значением ничего не меняет.
func (c *Coordinator) SetExpanded(chapter int, expanded bool) {
	if c.expanded[chapter] == expanded {
		return
	}
	if expanded {
		c.expanded[chapter] = true
	} else {
		delete(c.expanded, chapter)
	}

	c.logger.Debug("секция", slog.Int("chapter", chapter), slog.Bool("expanded", expanded))
	for _, l := range c.listeners {
		l(chapter, expanded)
	}
}

// CollapseAll сворачивает все секции
func (c *Coordinator) CollapseAll() {
	for _, chapter := range c.ExpandedChapters() {
		c.SetExpanded(chapter, false)
	}
}

// ExpandedChapters возвращает номера раскрытых глав по возрастанию
func (c *Coordinator) ExpandedChapters() []int {
	chapters := make([]int, 0, len(c.expanded))
	for chapter := range c.expanded {
		chapters = append(chapters, chapter)
	}
	sort.Ints(chapters)
	return chapters
}
