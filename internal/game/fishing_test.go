package game

import (
	"errors"
	"strings"
	"testing"
)

func fishingState(t *testing.T) *State {
	t.Helper()
	s, _ := newTestState(t)
	s.Player().Money = 6666
	if out := s.BuyItem("fishing_rod"); !out.OK {
		t.Fatalf("buy rod: %s", out.Message)
	}
	return s
}

func TestFishNeedsRod(t *testing.T) {
	s, _ := newTestState(t)
	out := s.Fish()
	if out.OK || !errors.Is(out.Err, ErrFishingLocked) {
		t.Fatalf("expected fishing locked, got %+v", out)
	}
	if s.Player().Stamina != 5 {
		t.Fatalf("expected no stamina spent")
	}
}

func TestFishSpendsStaminaAndCatches(t *testing.T) {
	s := fishingState(t)
	out := s.Fish()
	if !out.OK || !strings.HasPrefix(out.Message, "You caught a ") {
		t.Fatalf("expected a catch, got %+v", out)
	}
	if s.Player().Stamina != 3 {
		t.Fatalf("expected 2 stamina spent, got %.1f", s.Player().Stamina)
	}
	if len(s.Fishing().Caught()) != 1 {
		t.Fatalf("expected one fish in the bucket")
	}
}

func TestFishRefusedWhenTired(t *testing.T) {
	s := fishingState(t)
	s.Player().Stamina = 1.9
	out := s.Fish()
	if out.OK || out.Message != "Not enough stamina to fish." {
		t.Fatalf("expected refusal, got %+v", out)
	}
	if s.Player().Stamina != 1.9 || len(s.Fishing().Caught()) != 0 {
		t.Fatalf("expected nothing to change")
	}
}

func TestSellAllFish(t *testing.T) {
	s := fishingState(t)
	s.Fishing().Add(Fish{Name: "Salmon", Value: 40})
	s.Fishing().Add(Fish{Name: "Tuna", Value: 50})

	out := s.SellFish()
	if out.Message != "Sold all fish for $90!" {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if s.Player().Money != 90 {
		t.Fatalf("expected money 90, got %d", s.Player().Money)
	}
	if len(s.Fishing().Caught()) != 0 {
		t.Fatalf("expected the bucket emptied")
	}

	empty := s.SellFish()
	if empty.OK || empty.Message != "You have no fish to sell." {
		t.Fatalf("expected nothing to sell, got %+v", empty)
	}
}

func TestSellWithBonusTruncatesPerFish(t *testing.T) {
	s := fishingState(t)
	s.Events().Trigger(EventPerfectFishingDay)
	s.Fishing().Add(Fish{Name: "Odd", Value: 45})
	s.Fishing().Add(Fish{Name: "Odd", Value: 45})

	s.SellFish()
	// int(67.5) twice, not int(135).
	if s.Player().Money != 134 {
		t.Fatalf("expected 134, got %d", s.Player().Money)
	}
}

func TestSellFishTooDarkWithoutLantern(t *testing.T) {
	s, clk := newTestState(t)
	s.Player().Money = 6666
	if out := s.BuyItem("fishing_rod"); !out.OK {
		t.Fatalf("buy rod: %s", out.Message)
	}
	s.Player().Money = 0
	s.Fishing().Add(Fish{Name: "Salmon", Value: 40})
	advanceToNight(t, s, clk)

	out := s.SellFish()
	if out.OK || !errors.Is(out.Err, ErrTooDark) {
		t.Fatalf("expected too dark to sell, got %+v", out)
	}
	if s.Player().Money != 0 || len(s.Fishing().Caught()) != 1 {
		t.Fatalf("expected the fish kept")
	}

	s.Player().HasLantern = true
	if out := s.SellFish(); !out.OK || s.Player().Money != 40 {
		t.Fatalf("expected a lantern to allow selling, got %+v", out)
	}
}
