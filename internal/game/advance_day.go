package game

// AdvanceDay moves the calendar forward one day. Nothing changes when the
// player is too tired. A fossil find ends the day early, skipping crop
// unlocks and the world event.
func (s *State) AdvanceDay() Outcome {
	if err := s.player.TryUseStamina(s.balance.AdvanceDayStamina); err != nil {
		return decline(err, "You're too tired to start a new day.")
	}

	s.calendar.advance()
	day := s.calendar.Day()
	if s.weather.Update() {
		s.log.Debug("weather rolled", "weather", string(s.weather.Current()))
	}
	s.dayCycle.restore(Morning, s.clk.Now())
	s.log.Debug("day advanced", "day", day, "season", s.calendar.Season().String())

	if s.player.HasFarmdex && day%2 == 0 && s.rng.Float64() < s.balance.FossilChance {
		if msg, ok := s.discoverFossil(); ok {
			// One-day flags expire on every day advance, fossil days included.
			s.resetDaily()
			s.log.Debug("fossil found", "day", day, "count", len(s.player.FossilsFound))
			return succeed(msg)
		}
	}

	var unlockMsg string
	for _, u := range s.balance.DayUnlocks {
		if u.Day != day {
			continue
		}
		if msg, ok := s.crops.Unlock(u.Crop); ok && unlockMsg == "" {
			unlockMsg = msg
		}
	}

	s.resetDaily()

	ev, fired := s.events.Update(day)
	if fired {
		s.log.Debug("event fired", "event", string(ev.Key), "day", day, "declined", ev.Message == "")
	}

	switch {
	case unlockMsg != "":
		return succeed(unlockMsg)
	case fired:
		return succeed(ev.Message)
	}
	return succeed("")
}
