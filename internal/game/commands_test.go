package game

import (
	"strings"
	"testing"
)

func TestExecuteCommandPlantUsesOneBasedPlots(t *testing.T) {
	s, _ := newTestState(t)

	res := s.ExecuteCommand("plant wheat 3")
	if !res.Handled || !res.OK || res.Message != "Planted Wheat in plot 3." {
		t.Fatalf("unexpected result %+v", res)
	}
	if c, _ := s.Farm().Status(2); c == nil || c.Name != "wheat" {
		t.Fatalf("expected wheat in the third plot")
	}

	res = s.ExecuteCommand("plant wheat")
	if res.Message != "Planted Wheat in plot 1." {
		t.Fatalf("expected the first empty plot, got %q", res.Message)
	}

	if res := s.ExecuteCommand("plant wheat 0"); res.OK || res.Message != "Invalid plot number." {
		t.Fatalf("expected plot 0 refused, got %+v", res)
	}
}

func TestExecuteCommandJoinsMultiWordNames(t *testing.T) {
	s, _ := newTestState(t)
	s.Crops().Unlock("lazy_ghost")

	res := s.ExecuteCommand("plant lazy ghost")
	if !res.OK || res.Message != "Planted Lazy Ghost in plot 1." {
		t.Fatalf("unexpected result %+v", res)
	}

	s.Player().Money = 100
	res = s.ExecuteCommand("buy eggplant seed")
	if !res.OK || !s.Crops().IsUnlocked("eggplant") {
		t.Fatalf("expected eggplant bought, got %+v", res)
	}
}

func TestPlantMenuTagsRareCrops(t *testing.T) {
	s, _ := newTestState(t)
	s.Crops().Unlock("lazy_ghost")

	res := s.ExecuteCommand("plant")
	if res.Message != "Plant what? Unlocked: wheat, lazy_ghost [Rare]." {
		t.Fatalf("unexpected menu %q", res.Message)
	}
}

func TestExecuteCommandNextAnnouncesDay(t *testing.T) {
	s, _ := newTestState(t)
	res := s.ExecuteCommand("next")
	if !res.OK || res.Message != "Day 2 begins." {
		t.Fatalf("unexpected result %+v", res)
	}
	res = s.ExecuteCommand("next")
	if res.Message != "NEW CROP UNLOCKED: Corn!" {
		t.Fatalf("expected the corn unlock on day 3, got %q", res.Message)
	}
}

func TestExecuteCommandQueries(t *testing.T) {
	s, _ := newTestState(t)

	status := s.ExecuteCommand("status")
	if !strings.HasPrefix(status.Message, "Day 1 (spring, morning, sunny). Money $50. Hearts 5.0/5.") {
		t.Fatalf("unexpected status %q", status.Message)
	}

	shop := s.ExecuteCommand("shop").Message
	for _, key := range []string{"eggplant_seed", "fishing_rod", "small_expansion"} {
		if !strings.Contains(shop, key) {
			t.Fatalf("expected %s in the shop listing %q", key, shop)
		}
	}

	if res := s.ExecuteCommand("farmdex"); !strings.Contains(res.Message, "scanner") {
		t.Fatalf("expected the scanner hint, got %q", res.Message)
	}
	s.Player().HasFarmdex = true
	if res := s.ExecuteCommand("farmdex"); res.Message != "Farmdex: 0/50 fossils found." {
		t.Fatalf("unexpected farmdex %q", res.Message)
	}
}

func TestExecuteCommandUnknown(t *testing.T) {
	s, _ := newTestState(t)
	for _, raw := range []string{"", "   ", "dance", "save", "quit"} {
		if res := s.ExecuteCommand(raw); res.Handled {
			t.Fatalf("expected %q to be left to the caller", raw)
		}
	}
	if res := s.ExecuteCommand("buy"); !res.Handled || res.OK {
		t.Fatalf("expected a bare buy to ask what to buy, got %+v", res)
	}
}

func TestBuyRoutesToTheRightCatalog(t *testing.T) {
	s, _ := newTestState(t)
	s.Player().Money = 10000

	if out := s.Buy("hammock"); !out.OK || !s.Player().CanSleepAnytime {
		t.Fatalf("expected the hammock bought, got %+v", out)
	}
	if out := s.Buy("large_expansion"); !out.OK || s.Farm().Size() != 25 {
		t.Fatalf("expected the large expansion, got %+v", out)
	}
	if out := s.Buy("spaceship"); out.OK || out.Message != "Invalid item." {
		t.Fatalf("expected an unknown key refused, got %+v", out)
	}
	if len(s.ShopKeys()) != 12 {
		t.Fatalf("expected 12 shop keys, got %d", len(s.ShopKeys()))
	}
}
