package beepaudio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output - звуковой выход, в который микшируются потоки треков.
// Lock и Unlock защищают потоки, которые выход сейчас читает.
type Output interface {
	Init(sampleRate beep.SampleRate) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput - выход на звуковую карту через пакет speaker
type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate) error {
	return speaker.Init(sampleRate, sampleRate.N(time.Second/10))
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (speakerOutput) Lock() {
	speaker.Lock()
}

func (speakerOutput) Unlock() {
	speaker.Unlock()
}
