// internal/quiz/cooldown.go
//
// Cooldown timer for one quiz instance.
// Responsibilities:
//   - Hold the remaining-seconds counter (0 = submission allowed).
//   - Decrement it once per second until it reaches 0, then stop.
//   - Arm a one-shot fallback that force-clears the counter after the full
//     period, covering dropped ticks.
//
// Both timers are tagged with the arming generation. A new Arm replaces the
// running cooldown; ticks from earlier generations are ignored.

package quiz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CooldownPeriod is the decrement interval.
const CooldownPeriod = time.Second

type cooldownTickMsg struct {
	key string
	gen int
}

type cooldownExpiredMsg struct {
	key string
	gen int
}

func (m cooldownTickMsg) scope() string    { return m.key }
func (m cooldownExpiredMsg) scope() string { return m.key }

// Cooldown blocks guess submission while Remaining() > 0.
type Cooldown struct {
	key       string
	gen       int
	remaining int
}

// NewCooldown returns an idle cooldown scoped to the given instance key.
func NewCooldown(key string) Cooldown {
	return Cooldown{key: key}
}

// Remaining reports the seconds left.
func (c *Cooldown) Remaining() int { return c.remaining }

// Active reports whether submission is currently blocked.
func (c *Cooldown) Active() bool { return c.remaining > 0 }

// Arm starts a cooldown of the given seconds, replacing any running one.
// Non-positive values are ignored.
func (c *Cooldown) Arm(seconds int) tea.Cmd {
	if seconds <= 0 {
		return nil
	}
	c.gen++
	c.remaining = seconds
	key, gen := c.key, c.gen
	return tea.Batch(
		c.tick(),
		tea.Tick(time.Duration(seconds)*CooldownPeriod, func(time.Time) tea.Msg {
			return cooldownExpiredMsg{key: key, gen: gen}
		}),
	)
}

// Stop clears the counter and invalidates outstanding timers.
func (c *Cooldown) Stop() {
	c.gen++
	c.remaining = 0
}

// Update applies timer messages.
func (c *Cooldown) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case cooldownTickMsg:
		if msg.key != c.key || msg.gen != c.gen || c.remaining == 0 {
			return nil
		}
		c.remaining--
		if c.remaining == 0 {
			return nil
		}
		return c.tick()

	case cooldownExpiredMsg:
		if msg.key != c.key || msg.gen != c.gen {
			return nil
		}
		c.remaining = 0
	}
	return nil
}

func (c *Cooldown) tick() tea.Cmd {
	key, gen := c.key, c.gen
	return tea.Tick(CooldownPeriod, func(time.Time) tea.Msg {
		return cooldownTickMsg{key: key, gen: gen}
	})
}
