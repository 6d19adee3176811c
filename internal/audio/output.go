package audio

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the sink streamers are played on. The production implementation
// is the process-wide beep speaker.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the host's default audio device.
type SpeakerOutput struct{}

// NewSpeakerOutput returns an Output backed by beep's speaker package.
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{}
}

// Init implements Output.
func (*SpeakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

// Play implements Output.
func (*SpeakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Clear implements Output.
func (*SpeakerOutput) Clear() { speaker.Clear() }

// Lock implements Output.
func (*SpeakerOutput) Lock() { speaker.Lock() }

// Unlock implements Output.
func (*SpeakerOutput) Unlock() { speaker.Unlock() }

// Close implements Output.
func (*SpeakerOutput) Close() { speaker.Close() }
