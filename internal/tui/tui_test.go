// Package tui содержит тесты для TUI компонентов
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/logger"
	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/media/mediatest"
	"github.com/hazadus/go-chapterplay/internal/player"
	"github.com/hazadus/go-chapterplay/internal/tui/app"
	"github.com/hazadus/go-chapterplay/internal/tui/tracklist"
)

func newMainModel(t *testing.T, events chan media.Event) (*app.MainModel, *player.Coordinator, *mediatest.Opener) {
	t.Helper()

	cat := catalog.New([]string{"1-01.mp3", "2-01.wav"})
	opener := mediatest.NewOpener()
	coord := player.NewCoordinator(opener, "/audio", logger.NewTestLogger())
	require.NoError(t, coord.AttachAll(cat.Tracks()))

	list := tracklist.NewModel(cat, coord, tracklist.Options{SeekStep: 5, Logger: logger.NewTestLogger()})
	return app.NewMainModel(list, coord, events), coord, opener
}

func TestMainModelRoutesMediaEvents(t *testing.T) {
	events := make(chan media.Event, 1)
	model, coord, opener := newMainModel(t, events)

	// Раскрываем первую главу и запускаем трек
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	opener.Get("1-01").Resolve(nil)
	updated, _ = updated.Update(cmd())

	ctrl, _ := coord.Lookup("1-01")
	require.Equal(t, player.Playing, ctrl.State().Status)

	// Событие из канала приходит сообщением, после него ожидание продолжается
	events <- media.Event{Source: "1-01", Kind: media.Ended}
	waitCmd := tracklist.WaitForEvent(events)
	updated, next := updated.Update(waitCmd())
	assert.NotNil(t, next, "после события нужно снова ждать канал")
	assert.Equal(t, player.Ended, ctrl.State().Status)

	assert.Contains(t, updated.View(), "Chapter 1")
	require.NoError(t, model.Close())
	assert.True(t, opener.Get("1-01").Closed())
}

func TestMainModelCtrlCPausesAndQuits(t *testing.T) {
	model, coord, opener := newMainModel(t, nil)
	defer model.Close()

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	opener.Get("1-01").Resolve(nil)
	updated, _ = updated.Update(cmd())

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	ctrl, _ := coord.Lookup("1-01")
	assert.Equal(t, player.Paused, ctrl.State().Status)
	assert.False(t, opener.Get("1-01").Playing())
}

func TestMainModelInitWithoutEvents(t *testing.T) {
	model, _, _ := newMainModel(t, nil)
	defer model.Close()

	assert.Nil(t, model.Init())
}
