package beepaudio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/hazadus/go-chapterplay/internal/media"
)

// Track - ресурс воспроизведения одного файла
type Track struct {
	backend *Backend
	key     string
	path    string
	ext     string

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	queued   bool // Поток передан в выход и еще не доигран
	playing  bool
	closed   bool
}

// Play асинхронно запускает воспроизведение
func (t *Track) Play() <-chan error {
	done := make(chan error, 1)
	if !t.backend.goAsync(func() { done <- t.start() }) {
		done <- media.ErrClosed
	}
	return done
}

// Prepare декодирует файл, не начиная воспроизведение
func (t *Track) Prepare() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return media.ErrClosed
	}
	return t.decode()
}

// Pause приостанавливает воспроизведение
func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.playing = false
	if t.ctrl == nil {
		return
	}
	out := t.backend.output
	out.Lock()
	t.ctrl.Paused = true
	out.Unlock()
}

// SetPosition перематывает трек. Позиция ограничивается длиной файла.
func (t *Track) SetPosition(seconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || math.IsNaN(seconds) {
		return
	}
	if err := t.decode(); err != nil {
		t.backend.logger.Warn("перемотка невозможна", "track", t.key, "error", err)
		return
	}

	n := t.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = max(0, min(n, t.streamer.Len()))

	out := t.backend.output
	out.Lock()
	err := t.streamer.Seek(n)
	out.Unlock()
	if err != nil {
		t.backend.logger.Warn("ошибка перемотки", "track", t.key, "error", err)
	}
}

// Position возвращает текущую позицию в секундах
func (t *Track) Position() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position()
}

// Duration возвращает длительность, если файл уже декодирован
func (t *Track) Duration() (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.streamer == nil {
		return 0, false
	}
	return t.format.SampleRate.D(t.streamer.Len()).Seconds(), true
}

// Close останавливает трек и освобождает декодер
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.playing = false
	t.backend.forget(t)

	if t.ctrl != nil {
		out := t.backend.output
		out.Lock()
		t.ctrl.Paused = true
		t.ctrl.Streamer = nil
		out.Unlock()
	}

	var err error
	if t.streamer != nil {
		err = t.streamer.Close()
		t.streamer = nil
	}
	if t.file != nil {
		if cerr := t.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = cerr
		}
		t.file = nil
	}
	return err
}

func (t *Track) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return media.ErrClosed
	}
	if err := t.decode(); err != nil {
		return err
	}
	if err := t.backend.ensureOutput(); err != nil {
		return err
	}

	out := t.backend.output
	out.Lock()
	t.ctrl.Paused = false
	out.Unlock()

	if !t.queued {
		var s beep.Streamer = t.ctrl
		if t.format.SampleRate != SampleRate {
			s = beep.Resample(4, t.format.SampleRate, SampleRate, t.ctrl)
		}
		t.queued = true
		out.Play(beep.Seq(s, beep.Callback(t.finished)))
	}
	t.playing = true
	return nil
}

// finished вызывается выходом под его блокировкой, поэтому работа уходит в горутину
func (t *Track) finished() {
	t.backend.goAsync(func() {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		t.queued = false
		t.playing = false
		t.mu.Unlock()

		t.backend.emit(media.Event{Source: t.key, Kind: media.Ended})
	})
}

// decode открывает и декодирует файл при первом обращении (вызывается под t.mu)
func (t *Track) decode() error {
	if t.streamer != nil {
		return nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch t.ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		err = media.ErrUnsupportedFormat
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("ошибка декодирования %s: %w", t.path, err)
	}

	t.file = f
	t.streamer = streamer
	t.format = format
	t.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}

	duration := format.SampleRate.D(streamer.Len()).Seconds()
	t.backend.goAsync(func() {
		t.backend.emit(media.Event{Source: t.key, Kind: media.MetadataReady, Duration: duration})
	})
	return nil
}

func (t *Track) position() float64 {
	if t.streamer == nil {
		return 0
	}
	out := t.backend.output
	out.Lock()
	n := t.streamer.Position()
	out.Unlock()
	return t.format.SampleRate.D(n).Seconds()
}

// playingPosition возвращает позицию, если трек сейчас воспроизводится
func (t *Track) playingPosition() (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing || t.closed {
		return 0, false
	}
	return t.position(), true
}
