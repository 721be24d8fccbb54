// Package beepaudio воспроизводит локальные mp3 и wav файлы через gopxl/beep.
package beepaudio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/hazadus/go-chapterplay/internal/media"
)

// SampleRate - частота, на которой работает выход. Потоки с другой частотой ресемплируются.
const SampleRate beep.SampleRate = 44100

const (
	defaultInterval  = 500 * time.Millisecond
	eventsBufferSize = 64
)

// Backend открывает треки и доставляет их события в общий канал
type Backend struct {
	output   Output
	interval time.Duration
	logger   *slog.Logger
	events   chan media.Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	tracks map[string]*Track
	closed bool

	initMu      sync.Mutex
	initialized bool
}

// Option настраивает Backend
type Option func(*Backend)

// WithOutput подменяет звуковой выход
func WithOutput(o Output) Option {
	return func(b *Backend) { b.output = o }
}

// WithInterval задает период отправки PositionChanged
func WithInterval(d time.Duration) Option {
	return func(b *Backend) { b.interval = d }
}

// WithLogger задает логгер
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// NewBackend создает бэкенд и запускает мониторинг позиции
func NewBackend(opts ...Option) *Backend {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Backend{
		output:   speakerOutput{},
		interval: defaultInterval,
		logger:   slog.Default(),
		events:   make(chan media.Event, eventsBufferSize),
		ctx:      ctx,
		cancel:   cancel,
		tracks:   make(map[string]*Track),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.wg.Add(1)
	go b.monitorProgress()
	return b
}

// Events возвращает канал событий всех треков. Канал закрывается в Close.
func (b *Backend) Events() <-chan media.Event {
	return b.events
}

// Open реализует media.Opener. Файл декодируется лениво, при первом обращении.
func (b *Backend) Open(key, path string) (media.Resource, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".wav" {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка доступа к файлу: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s не является файлом", path)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, media.ErrClosed
	}

	t := &Track{backend: b, key: key, path: path, ext: ext}
	b.tracks[key] = t
	return t, nil
}

// Close останавливает мониторинг, закрывает все треки и канал событий
func (b *Backend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	tracks := make([]*Track, 0, len(b.tracks))
	for _, t := range b.tracks {
		tracks = append(tracks, t)
	}
	b.mu.Unlock()

	for _, t := range tracks {
		_ = t.Close()
	}

	b.cancel()
	b.wg.Wait()
	close(b.events)
	return nil
}

// ensureOutput инициализирует звуковой выход один раз
func (b *Backend) ensureOutput() error {
	b.initMu.Lock()
	defer b.initMu.Unlock()
	if b.initialized {
		return nil
	}
	if err := b.output.Init(SampleRate); err != nil {
		return fmt.Errorf("ошибка инициализации динамиков: %w", err)
	}
	b.initialized = true
	return nil
}

// goAsync запускает fn в горутине, которую дождется Close.
// Возвращает false, если бэкенд уже закрыт.
func (b *Backend) goAsync(fn func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
	return true
}

// emit отправляет событие. PositionChanged при переполненном канале пропускается.
func (b *Backend) emit(ev media.Event) {
	if ev.Kind == media.PositionChanged {
		select {
		case b.events <- ev:
		default:
		}
		return
	}
	select {
	case b.events <- ev:
	case <-b.ctx.Done():
	}
}

func (b *Backend) forget(t *Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tracks[t.key] == t {
		delete(b.tracks, t.key)
	}
}

// monitorProgress периодически отправляет позицию воспроизводимых треков
func (b *Backend) monitorProgress() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.mu.Lock()
			tracks := make([]*Track, 0, len(b.tracks))
			for _, t := range b.tracks {
				tracks = append(tracks, t)
			}
			b.mu.Unlock()

			for _, t := range tracks {
				if pos, ok := t.playingPosition(); ok {
					b.emit(media.Event{Source: t.key, Kind: media.PositionChanged, Position: pos})
				}
			}
		}
	}
}
