package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAdvanceDayRejectedWhenTired(t *testing.T) {
	s, clk := newTestState(t)
	_ = s.Plant("wheat", 0)
	s.Player().Stamina = 0.9
	before, _ := s.Encode()

	out := s.AdvanceDay()
	if out.OK || !errors.Is(out.Err, ErrNotEnoughStamina) {
		t.Fatalf("expected rejection, got %+v", out)
	}
	after, _ := s.Encode()
	if string(before) != string(after) {
		t.Fatalf("expected state byte-for-byte unchanged")
	}
	if s.Calendar().Day() != 1 || !clk.Now().Equal(testStart) {
		t.Fatalf("expected day 1, got %d", s.Calendar().Day())
	}
}

func TestAdvanceDayCostsStaminaAndResetsDayPart(t *testing.T) {
	s, clk := newTestState(t)
	clk.Advance(3 * time.Minute)
	s.Tick()
	clk.Advance(3 * time.Minute)
	s.Tick()
	if s.DayCycle().Part() != Evening {
		t.Fatalf("expected evening before advancing, got %s", s.DayCycle().Part())
	}

	out := s.AdvanceDay()
	if !out.OK {
		t.Fatalf("expected day to advance")
	}
	if s.Calendar().Day() != 2 || s.Player().Stamina != 4 {
		t.Fatalf("expected day 2 with 4 stamina, got day %d stamina %.1f", s.Calendar().Day(), s.Player().Stamina)
	}
	if s.DayCycle().Part() != Morning || !s.DayCycle().LastUpdate().Equal(clk.Now()) {
		t.Fatalf("expected a fresh morning")
	}
}

func TestDayUnlocksHappenOnce(t *testing.T) {
	s, _ := newTestState(t)
	var messages []string
	for s.Calendar().Day() < 12 {
		out := s.AdvanceDay()
		if out.Message != "" {
			messages = append(messages, out.Message)
		}
		s.Player().FullRestore()
	}

	if len(messages) != 2 || messages[0] != "NEW CROP UNLOCKED: Corn!" || messages[1] != "NEW CROP UNLOCKED: Pumpkin!" {
		t.Fatalf("unexpected unlock messages %v", messages)
	}
	names := s.Crops().UnlockedNames()
	if strings.Join(names, ",") != "wheat,corn,pumpkin" {
		t.Fatalf("expected wheat,corn,pumpkin got %v", names)
	}
}

func TestAdvanceDayResetsOneDayFlags(t *testing.T) {
	s, _ := newTestState(t)
	s.Events().Trigger(EventInflatedMarket)
	s.Events().Trigger(EventPerfectFishingDay)
	s.Events().Trigger(EventLazyDay)

	if s.Player().MaxStamina != 3 || s.Player().Stamina != 3 || !s.LazyDayActive() {
		t.Fatalf("expected lazy day to cut max stamina to 3, got %.1f/%d", s.Player().Stamina, s.Player().MaxStamina)
	}

	s.AdvanceDay()

	if s.MarketInflated() || s.FishingBonusActive() || s.LazyDayActive() {
		t.Fatalf("expected every one-day flag cleared")
	}
	if s.Player().MaxStamina != 5 {
		t.Fatalf("expected max stamina refunded to 5, got %d", s.Player().MaxStamina)
	}
	if s.Player().Stamina != 2 {
		t.Fatalf("expected stamina untouched by the refund, got %.1f", s.Player().Stamina)
	}
}

func TestUnlockMessageWinsOverEvent(t *testing.T) {
	s, _ := newTestState(t, func(b *Balance) { b.EventChance = 1 })

	for s.Calendar().Day() < 2 {
		s.AdvanceDay()
		s.Player().FullRestore()
	}
	out := s.AdvanceDay()
	if !out.OK || out.Message != "NEW CROP UNLOCKED: Corn!" {
		t.Fatalf("expected the unlock message on day 3, got %+v", out)
	}
	if s.Events().LastEventDay() != 3 {
		t.Fatalf("expected the event to fire on day 3 as well, got day %d", s.Events().LastEventDay())
	}
	if !s.Crops().IsUnlocked("corn") {
		t.Fatalf("expected corn unlocked")
	}
}

func TestFossilDayShortCircuits(t *testing.T) {
	s, _ := newTestState(t, func(b *Balance) {
		b.FossilChance = 1
		b.DayUnlocks = []DayUnlock{{Day: 2, Crop: "corn"}}
	})
	s.Player().HasFarmdex = true
	s.Events().Trigger(EventInflatedMarket)

	out := s.AdvanceDay()
	if !strings.HasPrefix(out.Message, "NEW FOSSIL DISCOVERED: ") {
		t.Fatalf("expected a fossil, got %q", out.Message)
	}
	if len(s.Player().FossilsFound) != 1 {
		t.Fatalf("expected one fossil recorded")
	}
	if s.Crops().IsUnlocked("corn") {
		t.Fatalf("expected the crop unlock skipped on a fossil day")
	}
	if s.MarketInflated() {
		t.Fatalf("expected one-day flags cleared on a fossil day too")
	}
}

func TestFossilsOnlyOnEvenDaysAndCapped(t *testing.T) {
	s, _ := newTestState(t, func(b *Balance) {
		b.FossilChance = 1
		b.FossilCap = 2
	})
	s.Player().HasFarmdex = true

	for s.Calendar().Day() < 10 {
		s.AdvanceDay()
		s.Player().FullRestore()
		found := len(s.Player().FossilsFound)
		if s.Calendar().Day() == 3 && found != 1 {
			t.Fatalf("expected one fossil by day 3, got %d", found)
		}
	}
	view := s.Farmdex()
	if len(view.Found) != 2 || view.Total != 2 || view.Undiscovered != 0 {
		t.Fatalf("expected the cap to hold at 2, got %+v", view)
	}
	if view.Found[0] == view.Found[1] {
		t.Fatalf("expected distinct fossils")
	}
}
