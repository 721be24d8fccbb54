package player

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/media"
)

// Coordinator владеет реестром контроллеров и создает их для треков каталога
type Coordinator struct {
	registry *Registry
	opener   media.Opener
	dir      string
	logger   *slog.Logger
}

// NewCoordinator создает координатор. Ресурсы открываются из каталога dir.
func NewCoordinator(opener media.Opener, dir string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		registry: NewRegistry(),
		opener:   opener,
		dir:      dir,
		logger:   logger,
	}
}

// Registry возвращает реестр живых контроллеров
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Attach открывает ресурс трека и создает для него контроллер
func (c *Coordinator) Attach(track catalog.Track) (*Controller, error) {
	if existing, ok := c.registry.Lookup(track.Key()); ok {
		return existing, nil
	}

	resource, err := c.opener.Open(track.Key(), filepath.Join(c.dir, track.SourceID))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия трека %s: %w", track.Key(), err)
	}

	ctrl, err := NewController(track, resource, c.registry, c.logger)
	if err != nil {
		_ = resource.Close()
		return nil, err
	}
	return ctrl, nil
}

// AttachAll создает контроллеры для всех треков
func (c *Coordinator) AttachAll(tracks []catalog.Track) error {
	for _, track := range tracks {
		if _, err := c.Attach(track); err != nil {
			return err
		}
	}
	c.logger.Debug("контроллеры созданы", slog.Int("count", c.registry.Len()))
	return nil
}

// Detach закрывает контроллер трека. Неизвестный ключ не является ошибкой.
func (c *Coordinator) Detach(key string) error {
	ctrl, ok := c.registry.Lookup(key)
	if !ok {
		return nil
	}
	return ctrl.Close()
}

// Lookup возвращает контроллер трека
func (c *Coordinator) Lookup(key string) (*Controller, bool) {
	return c.registry.Lookup(key)
}

// Toggle переключает воспроизведение трека
func (c *Coordinator) Toggle(key string) (*PlayRequest, error) {
	ctrl, ok := c.registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrTrackNotFound, key)
	}
	return ctrl.TogglePlayback(), nil
}

// Resolve передает результат запроса воспроизведения контроллеру.
// Результаты для закрытых контроллеров отбрасываются.
func (c *Coordinator) Resolve(req *PlayRequest, err error) {
	if req == nil {
		return
	}
	if ctrl, ok := c.registry.Lookup(req.Key); ok {
		ctrl.ResolvePlay(req.Seq, err)
	}
}

// Dispatch направляет событие ресурса контроллеру по ключу источника
func (c *Coordinator) Dispatch(ev media.Event) {
	ctrl, ok := c.registry.Lookup(ev.Source)
	if !ok {
		c.logger.Debug("событие для неизвестного трека", slog.String("source", ev.Source), slog.String("kind", ev.Kind.String()))
		return
	}
	ctrl.Dispatch(ev)
}

// Close закрывает все контроллеры
func (c *Coordinator) Close() error {
	var errs []error
	for _, ctrl := range c.registry.Controllers() {
		if err := ctrl.Close(); err != nil {
			errs = append(errs, fmt.Errorf("трек %s: %w", ctrl.Key(), err))
		}
	}
	return errors.Join(errs...)
}
