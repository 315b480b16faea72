package game

import (
	"fmt"
	"time"

	"github.com/appengine-ltd/terminal-farmer/internal/clock"
)

type DayPart int

const (
	Morning DayPart = iota
	Afternoon
	Evening
	Night
)

const dayPartCount = 4

var dayPartNames = [...]string{"morning", "afternoon", "evening", "night"}

func (p DayPart) String() string {
	if p < Morning || p > Night {
		return "unknown"
	}
	return dayPartNames[p]
}

// Greeting is the header salutation for the part of day.
func (p DayPart) Greeting() string {
	switch p {
	case Morning:
		return "Good morning"
	case Afternoon:
		return "Good afternoon"
	case Evening:
		return "Good evening"
	default:
		return "Good night"
	}
}

// PartDurations are per-part lengths in minutes of real time.
type PartDurations struct {
	Morning   int `yaml:"morning" validate:"gte=1"`
	Afternoon int `yaml:"afternoon" validate:"gte=1"`
	Evening   int `yaml:"evening" validate:"gte=1"`
	Night     int `yaml:"night" validate:"gte=1"`
}

func (d PartDurations) For(p DayPart) time.Duration {
	var minutes int
	switch p {
	case Morning:
		minutes = d.Morning
	case Afternoon:
		minutes = d.Afternoon
	case Evening:
		minutes = d.Evening
	default:
		minutes = d.Night
	}
	return time.Duration(minutes) * time.Minute
}

// SeasonalDurations holds the part lengths for each season.
type SeasonalDurations struct {
	Spring PartDurations `yaml:"spring"`
	Summer PartDurations `yaml:"summer"`
	Autumn PartDurations `yaml:"autumn"`
	Winter PartDurations `yaml:"winter"`
}

// ForSeason returns the part lengths for s. Summer days run long with a short
// evening; winter evenings run long.
func (sd SeasonalDurations) ForSeason(s Season) PartDurations {
	switch s {
	case SeasonSummer:
		return sd.Summer
	case SeasonWinter:
		return sd.Winter
	case SeasonAutumn:
		return sd.Autumn
	default:
		return sd.Spring
	}
}

// DayCycle steps through morning→afternoon→evening→night on real elapsed time.
// It is polled: nothing happens until Update is called.
type DayCycle struct {
	clk        clock.Clock
	table      SeasonalDurations
	season     func() Season
	part       DayPart
	lastUpdate time.Time
	durations  PartDurations
}

func NewDayCycle(clk clock.Clock, table SeasonalDurations, season func() Season) *DayCycle {
	d := &DayCycle{
		clk:        clk,
		table:      table,
		season:     season,
		part:       Morning,
		lastUpdate: clk.Now(),
	}
	d.durations = table.ForSeason(season())
	return d
}

func (d *DayCycle) Part() DayPart {
	return d.part
}

func (d *DayCycle) IsNight() bool {
	return d.part == Night
}

func (d *DayCycle) LastUpdate() time.Time {
	return d.lastUpdate
}

func (d *DayCycle) Durations() PartDurations {
	return d.durations
}

// Remaining is how long until the current part ends, never negative.
func (d *DayCycle) Remaining() time.Duration {
	left := d.durations.For(d.part) - d.clk.Now().Sub(d.lastUpdate)
	if left < 0 {
		return 0
	}
	return left
}

// Update advances at most one part when the current part's duration has
// elapsed since the last transition.
func (d *DayCycle) Update() (string, bool) {
	now := d.clk.Now()
	if now.Sub(d.lastUpdate) < d.durations.For(d.part) {
		return "", false
	}
	d.step(now)
	return fmt.Sprintf("Part of the day changed: %s!", displayName(d.part.String())), true
}

// Skip jumps straight to the next part, as a nap does.
func (d *DayCycle) Skip() DayPart {
	d.step(d.clk.Now())
	return d.part
}

func (d *DayCycle) step(now time.Time) {
	d.part = (d.part + 1) % dayPartCount
	d.lastUpdate = now
	d.durations = d.table.ForSeason(d.season())
}

func (d *DayCycle) restore(part DayPart, lastUpdate time.Time) {
	if part < Morning || part > Night {
		part = Morning
	}
	d.part = part
	d.lastUpdate = lastUpdate
	d.durations = d.table.ForSeason(d.season())
}
