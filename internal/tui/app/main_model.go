// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/player"
	"github.com/hazadus/go-chapterplay/internal/tui/tracklist"
)

// MainModel представляет главную модель TUI. Все события воспроизведения
// приходят в Update сообщениями, поэтому состояние меняется в одном потоке.
type MainModel struct {
	tracklistModel *tracklist.Model
	coord          *player.Coordinator
	events         <-chan media.Event
}

// NewMainModel создает новую главную модель
func NewMainModel(list *tracklist.Model, coord *player.Coordinator, events <-chan media.Event) *MainModel {
	return &MainModel{
		tracklistModel: list,
		coord:          coord,
		events:         events,
	}
}

// Init инициализирует модель и начинает слушать события ресурсов
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.tracklistModel.Init(),
		tracklist.WaitForEvent(m.events),
	)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			m.pauseActive()
			return m, tea.Quit
		}

	case tracklist.MediaEventMsg:
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		return m, tea.Batch(cmd, tracklist.WaitForEvent(m.events))
	}

	var cmd tea.Cmd
	m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	return m.tracklistModel.View()
}

// Close останавливает воспроизведение и закрывает контроллеры
func (m *MainModel) Close() error {
	return m.coord.Close()
}

func (m *MainModel) pauseActive() {
	if ctrl := m.coord.Registry().Active(); ctrl != nil {
		ctrl.Pause()
	}
}
