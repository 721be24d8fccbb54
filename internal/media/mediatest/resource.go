// Package mediatest содержит поддельный ресурс воспроизведения для тестов.
// Запросы Play не разрешаются сами: тест решает, когда и с каким результатом.
package mediatest

import (
	"sync"

	"github.com/hazadus/go-chapterplay/internal/media"
)

// Resource - поддельная реализация media.Resource
type Resource struct {
	mu sync.Mutex

	Key      string
	Path     string
	playing  bool
	closed   bool
	position float64
	duration float64
	known    bool

	pending    []chan error
	playCalls  int
	pauseCalls int
}

// NewResource создает поддельный ресурс
func NewResource(key string) *Resource {
	return &Resource{Key: key}
}

// Play регистрирует запрос воспроизведения и возвращает неразрешенный канал
func (r *Resource) Play() <-chan error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan error, 1)
	r.playCalls++
	if r.closed {
		ch <- media.ErrClosed
		return ch
	}
	r.pending = append(r.pending, ch)
	return ch
}

// Resolve разрешает самый старый запрос Play. Возвращает false, если запросов нет.
func (r *Resource) Resolve(err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return false
	}
	ch := r.pending[0]
	r.pending = r.pending[1:]
	if err == nil {
		r.playing = true
	}
	ch <- err
	return true
}

// Pause останавливает воспроизведение
func (r *Resource) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauseCalls++
	r.playing = false
}

// SetPosition устанавливает позицию воспроизведения
func (r *Resource) SetPosition(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.position = seconds
}

// Position возвращает текущую позицию
func (r *Resource) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

// SetDuration задает длительность, которую вернет Duration
func (r *Resource) SetDuration(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duration = seconds
	r.known = true
}

// Duration возвращает длительность
func (r *Resource) Duration() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duration, r.known
}

// Close закрывает ресурс
func (r *Resource) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.playing = false
	return nil
}

// Playing сообщает, воспроизводит ли ресурс звук с точки зрения теста
func (r *Resource) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Closed сообщает, был ли ресурс закрыт
func (r *Resource) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// PlayCalls возвращает количество вызовов Play
func (r *Resource) PlayCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playCalls
}

// PauseCalls возвращает количество вызовов Pause
func (r *Resource) PauseCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pauseCalls
}

// Opener выдает поддельные ресурсы и запоминает их по ключу
type Opener struct {
	mu        sync.Mutex
	resources map[string]*Resource
	FailOpen  error
}

// NewOpener создает фабрику поддельных ресурсов
func NewOpener() *Opener {
	return &Opener{resources: make(map[string]*Resource)}
}

// Open реализует media.Opener
func (o *Opener) Open(key, path string) (media.Resource, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.FailOpen != nil {
		return nil, o.FailOpen
	}
	r := NewResource(key)
	r.Path = path
	o.resources[key] = r
	return r, nil
}

// Get возвращает ранее открытый ресурс
func (o *Opener) Get(key string) *Resource {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resources[key]
}

var (
	_ media.Resource = (*Resource)(nil)
	_ media.Opener   = (*Opener)(nil)
)
