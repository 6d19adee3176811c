package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Reporter receives user-facing playback notices.
type Reporter interface {
	Playing(path, title string)
	SongNotFound(path string)
}

type nopReporter struct{}

func (nopReporter) Playing(string, string) {}
func (nopReporter) SongNotFound(string)    {}

// Player plays a song once, blocking until it has finished.
type Player struct {
	mu       sync.Mutex
	logger   *slog.Logger
	output   Output
	reporter Reporter

	// How often playback position is logged while waiting
	statusInterval time.Duration

	// Whether the output has been initialized
	initialized bool

	// Sample rate the output was initialized with
	sampleRate beep.SampleRate

	// Audio still queued in the output buffer once the mixer has pulled
	// the last sample
	tail time.Duration
}

// NewPlayer creates a new audio player. A nil output uses the system speaker.
func NewPlayer(output Output, reporter Reporter, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if output == nil {
		output = NewSpeakerOutput()
	}
	if reporter == nil {
		reporter = nopReporter{}
	}

	return &Player{
		logger:         logger,
		output:         output,
		reporter:       reporter,
		statusInterval: time.Second,
	}
}

// SetStatusInterval sets how often playback progress is logged.
func (p *Player) SetStatusInterval(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if interval > 0 {
		p.statusInterval = interval
	}
}

// Play plays the file at path to completion. It returns once the output has
// drained the last buffered samples.
// A missing file is reported through the Reporter and is not an error.
// Supports WAV, OGG, and MP3 formats.
func (p *Player) Play(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("song file not found", "path", path)
			p.reporter.SongNotFound(path)
			return nil
		}
		return fmt.Errorf("failed to stat song file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("song path %s is a directory", path)
	}

	streamer, format, err := openSound(path)
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return err
	}

	p.mu.Lock()
	sampleRate := p.sampleRate
	interval := p.statusInterval
	tail := p.tail
	p.mu.Unlock()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(4, format.SampleRate, sampleRate, source)
	}

	done := make(chan struct{})
	p.output.Play(beep.Seq(source, beep.Callback(func() {
		close(done)
	})))

	length := format.SampleRate.D(streamer.Len()).Round(time.Second)
	p.logger.Info("playing song", "path", path, "length", length)
	p.reporter.Playing(path, TrackTitle(path))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			if err := streamer.Err(); err != nil {
				return fmt.Errorf("playback of %s failed: %w", path, err)
			}
			return p.drainTail(ctx, path, tail)
		case <-ctx.Done():
			p.output.Clear()
			p.logger.Debug("playback cancelled", "path", path)
			return ctx.Err()
		case <-ticker.C:
			p.output.Lock()
			pos := streamer.Position()
			p.output.Unlock()
			p.logger.Debug("playback in progress",
				"position", format.SampleRate.D(pos).Round(time.Second),
				"length", length)
		}
	}
}

// drainTail waits for the output to play out what it has already buffered.
func (p *Player) drainTail(ctx context.Context, path string, tail time.Duration) error {
	timer := time.NewTimer(tail)
	defer timer.Stop()

	select {
	case <-timer.C:
		p.logger.Debug("playback finished", "path", path)
		return nil
	case <-ctx.Done():
		p.output.Clear()
		return ctx.Err()
	}
}

// openSound opens and decodes a sound file, choosing the decoder by extension.
func openSound(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open song file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %q", ext)
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &fileStreamer{StreamSeekCloser: streamer, file: f}, format, nil
}

// fileStreamer closes the underlying file along with the decoder.
type fileStreamer struct {
	beep.StreamSeekCloser
	file *os.File
}

func (s *fileStreamer) Close() error {
	err := s.StreamSeekCloser.Close()
	_ = s.file.Close()
	return err
}

// ensureInitialized initializes the output if not already done.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(time.Millisecond * 100)

	if err := p.output.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.tail = sampleRate.D(bufferSize)
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// Close stops all playback and releases the output.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		p.output.Close()
		p.initialized = false
	}
	p.logger.Debug("audio player closed")
}
