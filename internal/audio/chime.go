package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/dbus"
)

// Chime picks and plays the sound for a notification.
type Chime struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	cfg    config.AudioConfig
	sounds func(urgency int) string
}

// NewChime creates a Chime playing through player.
func NewChime(cfg *config.Config, player *Player, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chime{logger: logger, player: player}
	c.UpdateConfig(cfg)
	return c
}

// UpdateConfig applies new audio settings. Cached sounds are dropped so
// changed paths take effect.
func (c *Chime) UpdateConfig(cfg *config.Config) {
	c.mu.Lock()
	c.cfg = cfg.Audio
	c.sounds = cfg.SoundForUrgency
	c.mu.Unlock()

	c.player.SetVolume(float64(cfg.Audio.Volume) / 100)
	c.player.ClearCache()
	c.logger.Debug("audio settings updated", "enabled", cfg.Audio.Enabled, "volume", cfg.Audio.Volume)
}

// SoundFor returns the file to play for n, or "" for silence. A sound-file
// hint takes precedence over the per-urgency sounds.
func (c *Chime) SoundFor(n *dbus.DBusNotification) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.cfg.Enabled || n.SuppressSound() {
		return ""
	}
	if hint := n.SoundFile(); hint != "" {
		return config.ExpandPath(hint)
	}
	return c.sounds(n.Urgency())
}

// PlayFor plays the sound for n. Missing sound files are logged and
// otherwise ignored.
func (c *Chime) PlayFor(n *dbus.DBusNotification) error {
	path := c.SoundFor(n)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.logger.Warn("sound file not found", "path", path, "urgency", n.Urgency())
		return nil
	}
	return c.player.Play(path)
}

// Preload decodes the configured sounds ahead of the first notification.
func (c *Chime) Preload() {
	c.mu.RLock()
	enabled, sounds := c.cfg.Enabled, c.sounds
	c.mu.RUnlock()
	if !enabled {
		return
	}
	for _, urgency := range []int{config.UrgencyLow, config.UrgencyNormal, config.UrgencyCritical} {
		path := sounds(urgency)
		if path == "" {
			continue
		}
		if _, err := c.player.load(path); err != nil {
			c.logger.Warn("failed to preload sound", "urgency", urgency, "path", path, "error", err)
		}
	}
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.player.Close()
}
