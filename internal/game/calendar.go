package game

// Season is derived from the day counter in fixed 30-day blocks.
type Season int

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

const daysPerSeason = 30

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

func (s Season) String() string {
	if s < SeasonSpring || s > SeasonWinter {
		return "unknown"
	}
	return seasonNames[s]
}

// SeasonForDay maps a 1-based day to its season, cycling spring→winter.
func SeasonForDay(day int) Season {
	if day < 1 {
		day = 1
	}
	return Season(((day - 1) / daysPerSeason) % 4)
}

// Calendar is the day counter. It starts at 1 and only moves forward through
// advanceDay.
type Calendar struct {
	day int
}

func NewCalendar() *Calendar {
	return &Calendar{day: 1}
}

func (c *Calendar) Day() int {
	return c.day
}

func (c *Calendar) Season() Season {
	return SeasonForDay(c.day)
}

func (c *Calendar) advance() {
	c.day++
}
