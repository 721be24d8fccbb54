// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/player"
	"github.com/hazadus/go-chapterplay/internal/tui/app"
	"github.com/hazadus/go-chapterplay/internal/tui/tracklist"
)

// App представляет основное TUI приложение
type App struct {
	catalog *catalog.Catalog
	coord   *player.Coordinator
	events  <-chan media.Event
	options tracklist.Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(cat *catalog.Catalog, coord *player.Coordinator, events <-chan media.Event, options tracklist.Options) *App {
	return &App{
		catalog: cat,
		coord:   coord,
		events:  events,
		options: options,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	model := app.NewMainModel(
		tracklist.NewModel(tuiApp.catalog, tuiApp.coord, tuiApp.options),
		tuiApp.coord,
		tuiApp.events,
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Закрываем контроллеры после завершения программы
	return errors.Join(err, model.Close())
}
