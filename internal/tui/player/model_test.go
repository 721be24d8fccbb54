package player

import (
	"strings"
	"testing"

	"github.com/hazadus/go-chapterplay/internal/player"
)

func TestIcon(t *testing.T) {
	tests := []struct {
		status   player.Status
		expected string
	}{
		{player.Idle, PlayIcon},
		{player.Starting, PauseIcon},
		{player.Playing, PauseIcon},
		{player.Paused, PlayIcon},
		{player.Ended, PlayIcon},
	}

	for _, tt := range tests {
		d := player.Render(player.State{Status: tt.status})
		if got := Icon(d); got != tt.expected {
			t.Errorf("Icon(%s) = %s, ожидалось %s", tt.status, got, tt.expected)
		}
	}
}

func TestTime(t *testing.T) {
	d := player.Render(player.State{Position: 65.7, Duration: 600, DurationKnown: true})
	if got := Time(d); got != "1:05 / 10:00" {
		t.Errorf("Time() = %q, ожидалось %q", got, "1:05 / 10:00")
	}

	d = player.Render(player.State{Position: 3})
	if got := Time(d); got != "0:03 / 0:00" {
		t.Errorf("Time() без длительности = %q", got)
	}
}

func TestViewContainsParts(t *testing.T) {
	w := NewWidget()
	w.SetWidth(80)

	view := w.View(player.Render(player.State{Status: player.Playing, Position: 30, Duration: 60, DurationKnown: true}))
	if !strings.Contains(view, PauseIcon) {
		t.Errorf("Ожидалась кнопка паузы в %q", view)
	}
	if !strings.Contains(view, "0:30 / 1:00") {
		t.Errorf("Ожидалось время в %q", view)
	}
}

func TestSetWidthBounds(t *testing.T) {
	w := NewWidget()

	w.SetWidth(5)
	if w.bar.Width != minBarWidth {
		t.Errorf("Ширина бара %d, ожидалась %d", w.bar.Width, minBarWidth)
	}

	w.SetWidth(500)
	if w.bar.Width != 60 {
		t.Errorf("Ширина бара %d, ожидалась 60", w.bar.Width)
	}
}
