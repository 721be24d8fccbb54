// Package player содержит контроллеры воспроизведения треков.
//
// На каждый трек приходится один Controller. Контроллеры регистрируются в общем
// Registry, и в любой момент не более одного из них находится в состоянии Playing.
// Все методы вызываются из одного потока обработки событий (цикла Update в TUI).
package player

import (
	"log/slog"
	"math"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/media"
)

// Status - состояние воспроизведения трека
type Status int

const (
	// Idle - трек еще не запускался
	Idle Status = iota
	// Starting - запуск запрошен, ресурс еще не подтвердил воспроизведение
	Starting
	// Playing - трек воспроизводится
	Playing
	// Paused - воспроизведение приостановлено
	Paused
	// Ended - трек доигран, позиция сброшена в начало
	Ended
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Active сообщает, показывает ли трек кнопку паузы
func (s Status) Active() bool {
	return s == Starting || s == Playing
}

// State - наблюдаемое состояние контроллера
type State struct {
	Status        Status
	Position      float64 // Секунды, не меньше нуля
	Duration      float64 // Секунды, имеет смысл при DurationKnown
	DurationKnown bool
}

// PlayRequest описывает ожидающий запуск воспроизведения.
// Хост дожидается Done и передает результат в Controller.ResolvePlay.
type PlayRequest struct {
	Key  string
	Seq  uint64
	Done <-chan error
}

// Controller управляет воспроизведением одного трека
type Controller struct {
	track    catalog.Track
	resource media.Resource
	registry *Registry
	logger   *slog.Logger

	state  State
	seq    uint64 // Номер последней активации
	closed bool
}

// NewController создает контроллер и регистрирует его в реестре
func NewController(track catalog.Track, resource media.Resource, registry *Registry, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		track:    track,
		resource: resource,
		registry: registry,
		logger:   logger.With(slog.String("track", track.Key())),
	}
	if err := registry.register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Key возвращает канонический ключ трека
func (c *Controller) Key() string {
	return c.track.Key()
}

// Track возвращает метаданные трека
func (c *Controller) Track() catalog.Track {
	return c.track
}

// State возвращает копию текущего состояния
func (c *Controller) State() State {
	return c.state
}

// Display возвращает представление состояния для отображения
func (c *Controller) Display() Display {
	return Render(c.state)
}

// Preload возвращает функцию предварительной загрузки ресурса
// или nil, если ресурс ее не поддерживает. Функцию можно вызывать из другой горутины.
func (c *Controller) Preload() func() error {
	p, ok := c.resource.(media.Preparer)
	if !ok || c.closed {
		return nil
	}
	return p.Prepare
}

// TogglePlayback переключает воспроизведение. При запуске возвращает запрос,
// результат которого нужно передать в ResolvePlay; при остановке возвращает nil.
func (c *Controller) TogglePlayback() *PlayRequest {
	if c.state.Status.Active() {
		c.Pause()
		return nil
	}
	return c.Play()
}

// Play запрашивает запуск воспроизведения. Остальные контроллеры останавливаются
// только после подтверждения запуска.
func (c *Controller) Play() *PlayRequest {
	if c.closed || c.state.Status.Active() {
		return nil
	}
	c.seq = c.registry.nextSeq()
	c.transition(Starting)
	return &PlayRequest{Key: c.Key(), Seq: c.seq, Done: c.resource.Play()}
}

// Pause останавливает воспроизведение, в том числе еще не подтвержденное
func (c *Controller) Pause() {
	if c.closed || !c.state.Status.Active() {
		return
	}
	c.halt("пауза")
}

// ResolvePlay применяет результат запроса воспроизведения
func (c *Controller) ResolvePlay(seq uint64, err error) {
	if c.closed {
		return
	}

	if seq != c.seq || c.state.Status != Starting {
		// Запрос вытеснен более поздним событием
		if err == nil && !c.state.Status.Active() {
			c.resource.Pause()
		}
		c.logger.Debug("устаревший результат запуска", slog.Uint64("seq", seq), slog.Any("error", err))
		return
	}

	if err != nil {
		c.logger.Warn("не удалось запустить воспроизведение", slog.Any("error", err))
		c.resource.Pause()
		c.transition(Paused)
		return
	}

	c.transition(Playing)
	if n := c.registry.pauseOthers(c); n > 0 {
		c.logger.Debug("остановлены другие треки", slog.Int("count", n))
	}
}

// Seek перематывает трек. Цель ограничивается диапазоном [0, длительность];
// пока длительность неизвестна или цель не является числом, перемотка игнорируется.
func (c *Controller) Seek(target float64) bool {
	if c.closed || math.IsNaN(target) || math.IsInf(target, 0) {
		return false
	}
	if !c.state.DurationKnown {
		if d, ok := c.resource.Duration(); ok && validSeconds(d) {
			c.state.Duration, c.state.DurationKnown = d, true
		} else {
			return false
		}
	}

	target = math.Max(0, math.Min(target, c.state.Duration))
	c.resource.SetPosition(target)
	c.state.Position = target
	return true
}

// SeekBy сдвигает позицию на delta секунд
func (c *Controller) SeekBy(delta float64) bool {
	return c.Seek(c.state.Position + delta)
}

// Dispatch обрабатывает событие ресурса воспроизведения
func (c *Controller) Dispatch(ev media.Event) {
	if c.closed {
		return
	}

	switch ev.Kind {
	case media.PositionChanged:
		if c.state.Status == Ended {
			return
		}
		if validSeconds(ev.Position) {
			c.state.Position = ev.Position
		}

	case media.MetadataReady:
		if validSeconds(ev.Duration) {
			c.state.Duration, c.state.DurationKnown = ev.Duration, true
		}

	case media.Started:
		if c.state.Status.Active() {
			return
		}
		c.seq = c.registry.nextSeq()
		c.transition(Playing)
		c.registry.pauseOthers(c)

	case media.Stopped:
		if c.state.Status == Playing {
			c.transition(Paused)
		}

	case media.Ended:
		c.resource.SetPosition(0)
		c.state.Position = 0
		c.transition(Ended)
	}
}

// Close останавливает трек, освобождает ресурс и удаляет контроллер из реестра
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.registry.unregister(c)
	c.state.Status = Idle
	return c.resource.Close()
}

// halt переводит контроллер в Paused и останавливает ресурс
func (c *Controller) halt(reason string) {
	c.resource.Pause()
	c.transition(Paused)
	c.logger.Debug("воспроизведение остановлено", slog.String("reason", reason))
}

func (c *Controller) transition(to Status) {
	from := c.state.Status
	c.state.Status = to
	if from != to {
		c.logger.Debug("смена состояния", slog.String("from", from.String()), slog.String("to", to.String()))
	}
}

func validSeconds(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
