// Package theme centralizes the embed colors used across the bot.
package theme

import "sync"

// Color is the int value used by discordgo.MessageEmbed.Color.
type Color = int

// Theme holds the color roles used by the bot's embeds.
type Theme struct {
	Name string

	Primary Color
	Info    Color
	Success Color
	Warning Color
	Error   Color
	Muted   Color
}

func (t *Theme) ensureDefaults() {
	if t.Primary == 0 {
		t.Primary = 0x5865F2
	}
	if t.Info == 0 {
		t.Info = 0x3B82F6
	}
	if t.Success == 0 {
		t.Success = 0x57F287
	}
	if t.Warning == 0 {
		t.Warning = 0xF59E0B
	}
	if t.Error == 0 {
		t.Error = 0xED4245
	}
	if t.Muted == 0 {
		t.Muted = 0x95A5A6
	}
}

var (
	mu      sync.RWMutex
	current = func() *Theme {
		t := &Theme{Name: "default"}
		t.ensureDefaults()
		return t
	}()
)

// Set installs a theme, filling unset roles with defaults.
func Set(t *Theme) {
	cp := *t
	cp.ensureDefaults()
	mu.Lock()
	current = &cp
	mu.Unlock()
}

// Current returns the active theme.
func Current() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Primary() Color { return Current().Primary }
func Info() Color    { return Current().Info }
func Success() Color { return Current().Success }
func Warning() Color { return Current().Warning }
func Error() Color   { return Current().Error }
func Muted() Color   { return Current().Muted }
