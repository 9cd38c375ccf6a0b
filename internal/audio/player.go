package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Sink is where decoded sounds are played.
type Sink interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type speakerSink struct{}

func (speakerSink) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerSink) Close() { speaker.Close() }

type cachedSound struct {
	buffer  *beep.Buffer
	modTime time.Time
}

// Player decodes sound files and plays them at a shared volume. Decoded
// sounds are cached until the file's modification time changes.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	sink   Sink

	volume      float64
	rate        beep.SampleRate
	initialized bool

	cache map[string]cachedSound
}

// NewPlayer creates a Player on the system speaker.
func NewPlayer(logger *slog.Logger) *Player {
	return newPlayer(speakerSink{}, logger)
}

func newPlayer(sink Sink, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger: logger,
		sink:   sink,
		volume: 1,
		cache:  make(map[string]cachedSound),
	}
}

// SetVolume sets the linear playback volume, clamped to 0..1.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, volume))
}

// Volume returns the linear playback volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play starts playing the file at path and returns without waiting for it
// to finish.
func (p *Player) Play(path string) error {
	buffer, err := p.load(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		rate := buffer.Format().SampleRate
		if err := p.sink.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		p.rate = rate
		p.initialized = true
		p.logger.Debug("speaker initialized", "sample_rate", rate)
	}

	var s beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != p.rate {
		s = beep.Resample(4, buffer.Format().SampleRate, p.rate, s)
	}
	if p.volume < 1 {
		s = &effects.Volume{
			Streamer: s,
			Base:     10,
			Volume:   volumeExponent(p.volume),
			Silent:   p.volume == 0,
		}
	}
	p.sink.Play(s)
	return nil
}

func (p *Player) load(path string) (*beep.Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}

	p.mu.Lock()
	cached, ok := p.cache[path]
	p.mu.Unlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.buffer, nil
	}

	buffer, err := Decode(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[path] = cachedSound{buffer: buffer, modTime: info.ModTime()}
	p.mu.Unlock()
	if ok {
		p.logger.Debug("sound file changed, reloaded", "path", path)
	}
	return buffer, nil
}

// Decode reads a whole sound file into memory.
func Decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// Cached reports whether path is in the decode cache.
func (p *Player) Cached(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cache[path]
	return ok
}

// ClearCache drops all decoded sounds.
func (p *Player) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		p.sink.Close()
		p.initialized = false
	}
	clear(p.cache)
}

// volumeExponent converts a linear volume to the base-10 exponent used by
// effects.Volume.
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return -5
	}
	return math.Log10(volume)
}
