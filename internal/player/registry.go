package player

import (
	"errors"
	"fmt"
)

// ErrDuplicateController возвращается при повторной регистрации контроллера того же трека
var ErrDuplicateController = errors.New("контроллер трека уже зарегистрирован")

// Registry хранит живые контроллеры. Через него активируемый контроллер
// останавливает остальные, поэтому в реестре есть только незакрытые контроллеры.
//
// Реестр не защищен мьютексом: все обращения происходят в одном потоке обработки событий.
type Registry struct {
	byKey map[string]*Controller
	order []*Controller
	seq   uint64
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Controller)}
}

// Lookup возвращает контроллер трека по ключу
func (r *Registry) Lookup(key string) (*Controller, bool) {
	c, ok := r.byKey[key]
	return c, ok
}

// Len возвращает количество живых контроллеров
func (r *Registry) Len() int {
	return len(r.order)
}

// Controllers возвращает контроллеры в порядке регистрации
func (r *Registry) Controllers() []*Controller {
	return append([]*Controller(nil), r.order...)
}

// Active возвращает воспроизводящий контроллер или nil
func (r *Registry) Active() *Controller {
	for _, c := range r.order {
		if c.state.Status == Playing {
			return c
		}
	}
	return nil
}

// CountPlaying возвращает число контроллеров в состоянии Playing
func (r *Registry) CountPlaying() int {
	n := 0
	for _, c := range r.order {
		if c.state.Status == Playing {
			n++
		}
	}
	return n
}

func (r *Registry) register(c *Controller) error {
	key := c.Key()
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateController, key)
	}
	r.byKey[key] = c
	r.order = append(r.order, c)
	return nil
}

func (r *Registry) unregister(c *Controller) {
	if r.byKey[c.Key()] != c {
		return
	}
	delete(r.byKey, c.Key())
	for i, item := range r.order {
		if item == c {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) nextSeq() uint64 {
	r.seq++
	return r.seq
}

// pauseOthers останавливает все контроллеры, кроме active, которые воспроизводят
// или ждут подтверждения более раннего запроса. Возвращает число остановленных.
func (r *Registry) pauseOthers(active *Controller) int {
	paused := 0
	for _, other := range r.Controllers() {
		if other == active {
			continue
		}
		switch other.state.Status {
		case Playing:
		case Starting:
			if other.seq > active.seq {
				continue
			}
		default:
			continue
		}
		other.halt("вытеснен треком " + active.Key())
		paused++
	}
	return paused
}
