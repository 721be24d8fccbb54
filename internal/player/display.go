package player

import (
	"math"

	"github.com/hazadus/go-chapterplay/internal/utils"
)

// Display - представление состояния трека для виджета плеера
type Display struct {
	Elapsed  string
	Total    string
	Percent  float64 // Доля прослушанного от 0 до 1
	ShowStop bool    // Вместо кнопки воспроизведения показывать паузу
}

// Render вычисляет представление по состоянию. Чистая функция.
func Render(s State) Display {
	d := Display{
		Elapsed:  utils.FormatClock(s.Position),
		Total:    "0:00",
		ShowStop: s.Status.Active(),
	}

	if s.DurationKnown {
		d.Total = utils.FormatClock(s.Duration)
		if s.Duration > 0 && validSeconds(s.Position) {
			d.Percent = math.Min(1, s.Position/s.Duration)
		}
	}

	return d
}
