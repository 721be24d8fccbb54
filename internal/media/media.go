// Package media описывает ресурс воспроизведения, которым управляет контроллер трека.
package media

import "errors"

var (
	// ErrClosed возвращается при обращении к закрытому ресурсу
	ErrClosed = errors.New("ресурс воспроизведения закрыт")

	// ErrUnsupportedFormat возвращается для файлов, которые невозможно декодировать
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат аудио")
)

// EventKind определяет тип события ресурса воспроизведения
type EventKind int

const (
	// PositionChanged - изменилась позиция воспроизведения
	PositionChanged EventKind = iota
	// MetadataReady - стала известна длительность
	MetadataReady
	// Started - воспроизведение началось не по запросу Play (например, медиаклавишей)
	Started
	// Stopped - воспроизведение остановилось не по запросу Pause
	Stopped
	// Ended - трек доигран до конца
	Ended
)

func (k EventKind) String() string {
	switch k {
	case PositionChanged:
		return "position_changed"
	case MetadataReady:
		return "metadata_ready"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Event - событие ресурса воспроизведения
type Event struct {
	Source   string // Ключ трека, к которому относится событие
	Kind     EventKind
	Position float64 // Секунды, для PositionChanged
	Duration float64 // Секунды, для MetadataReady
}

// Resource - воспроизводимый медиаресурс одного трека.
//
// Play запускает воспроизведение асинхронно: канал получает ровно одно значение,
// nil при успехе или ошибку, если ресурс отказался воспроизводить.
// Остальные методы не блокируются.
type Resource interface {
	Play() <-chan error
	Pause()
	SetPosition(seconds float64)
	Position() float64
	// Duration возвращает длительность и false, пока она неизвестна
	Duration() (float64, bool)
	Close() error
}

// Opener открывает ресурс воспроизведения для трека с указанным ключом
type Opener interface {
	Open(key, path string) (Resource, error)
}

// Preparer реализуется ресурсами, которые умеют заранее узнать длительность
// без запуска воспроизведения. Результат приходит событием MetadataReady.
type Preparer interface {
	Prepare() error
}
