// Package player содержит виджет плеера трека для TUI
package player

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-chapterplay/internal/player"
)

const (
	// PlayIcon показывается, когда трек можно запустить
	PlayIcon = "▶"
	// PauseIcon показывается, когда трек можно остановить
	PauseIcon = "⏸"

	defaultBarWidth = 30
	minBarWidth     = 10
)

var (
	iconStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00aa00"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Widget отображает кнопку, прогресс-бар и время трека
type Widget struct {
	bar progress.Model
}

// NewWidget создает виджет плеера
func NewWidget() *Widget {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultBarWidth
	return &Widget{bar: bar}
}

// SetWidth подгоняет ширину прогресс-бара под ширину строки
func (w *Widget) SetWidth(width int) {
	// Иконка, время и отступы занимают около двадцати символов
	w.bar.Width = max(minBarWidth, min(60, width-24))
}

// Icon возвращает кнопку для представления
func Icon(d player.Display) string {
	if d.ShowStop {
		return PauseIcon
	}
	return PlayIcon
}

// Time возвращает строку "M:SS / M:SS"
func Time(d player.Display) string {
	return fmt.Sprintf("%s / %s", d.Elapsed, d.Total)
}

// View отображает виджет для представления трека
func (w *Widget) View(d player.Display) string {
	return fmt.Sprintf("%s %s %s",
		iconStyle.Render(Icon(d)),
		w.bar.ViewAs(d.Percent),
		timeStyle.Render(Time(d)),
	)
}
