package game

import (
	"strings"
	"testing"
)

type fakeHost struct {
	occupied     int
	damaged      int
	bonuses      []float64
	money        int
	stamina      float64
	maxStamina   int
	fish         []Fish
	unlocked     []string
	inflated     bool
	fishingBonus bool
	lazyPenalty  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{money: 250, stamina: 3, maxStamina: 5}
}

func (h *fakeHost) DamageRandomCrop() (string, bool) {
	if h.occupied == 0 {
		return "", false
	}
	h.occupied--
	h.damaged++
	return "A storm came! Some crops were damaged.", true
}

func (h *fakeHost) ApplyGrowthBonus(percent float64) string {
	h.bonuses = append(h.bonuses, percent)
	return "Sunny day bonus! Crops grow faster today."
}

func (h *fakeHost) EarnMoney(amount int) { h.money += amount }

func (h *fakeHost) StealMoney(limit int) int {
	stolen := min(limit, h.money)
	h.money -= stolen
	return stolen
}

func (h *fakeHost) RestoreStamina(amount float64) {
	h.stamina = min(float64(h.maxStamina), h.stamina+amount)
}

func (h *fakeHost) ReduceMaxStamina(by, floor int) int {
	target := max(floor, h.maxStamina-by)
	removed := h.maxStamina - target
	h.maxStamina = target
	return max(0, removed)
}

func (h *fakeHost) AddCaughtFish(f Fish) { h.fish = append(h.fish, f) }

func (h *fakeHost) UnlockCrop(name string) (string, bool) {
	h.unlocked = append(h.unlocked, name)
	return "", true
}

func (h *fakeHost) SetMarketInflated()     { h.inflated = true }
func (h *fakeHost) SetFishingBonus()       { h.fishingBonus = true }
func (h *fakeHost) SetLazyDay(penalty int) { h.lazyPenalty = penalty }
func (h *fakeHost) SkyFish() Fish          { return Fish{Name: "Skyfish", Value: 150} }
func (h *fakeHost) SpiritCrop() string     { return "lazy_ghost" }

func TestEventCatalogHasFourteenEvents(t *testing.T) {
	if got := len(EventKeys()); got != 14 {
		t.Fatalf("expected 14 events, got %d", got)
	}
}

func TestEventEngineFiresAtMostOncePerDay(t *testing.T) {
	host := newFakeHost()
	engine := NewEventEngine(host, 1.0, seededRNG(11))

	if _, fired := engine.Update(4); !fired {
		t.Fatalf("expected an event with chance 1")
	}
	for i := 0; i < 20; i++ {
		if _, fired := engine.Update(4); fired {
			t.Fatalf("expected no second event on day 4")
		}
	}
	if engine.LastEventDay() != 4 {
		t.Fatalf("expected last event day 4, got %d", engine.LastEventDay())
	}
	if _, fired := engine.Update(5); !fired {
		t.Fatalf("expected an event on a new day")
	}
}

func TestEventEngineZeroChanceNeverFires(t *testing.T) {
	engine := NewEventEngine(newFakeHost(), 0, seededRNG(11))
	for day := 1; day <= 100; day++ {
		if _, fired := engine.Update(day); fired {
			t.Fatalf("expected no events with chance 0, fired on day %d", day)
		}
	}
}

func TestEventEffects(t *testing.T) {
	tests := []struct {
		key    EventKey
		setup  func(*fakeHost)
		check  func(*testing.T, *fakeHost)
		prefix string
	}{
		{
			key:   EventStorm,
			setup: func(h *fakeHost) { h.occupied = 2 },
			check: func(t *testing.T, h *fakeHost) {
				if h.damaged != 1 {
					t.Fatalf("expected one damaged plot, got %d", h.damaged)
				}
			},
			prefix: "A storm came!",
		},
		{
			key: EventSunnyBonus,
			check: func(t *testing.T, h *fakeHost) {
				if len(h.bonuses) != 1 || h.bonuses[0] != 20 {
					t.Fatalf("expected a 20%% bonus, got %v", h.bonuses)
				}
			},
			prefix: "Sunny day bonus!",
		},
		{
			key: EventFoundMoney,
			check: func(t *testing.T, h *fakeHost) {
				if h.money < 260 || h.money > 300 {
					t.Fatalf("expected 10..50 found, money=%d", h.money)
				}
			},
			prefix: "You found money on the ground!",
		},
		{
			key: EventFoundEnergy,
			check: func(t *testing.T, h *fakeHost) {
				if h.stamina != 4 {
					t.Fatalf("expected +1 stamina, got %.1f", h.stamina)
				}
			},
			prefix: "You found an energy drink!",
		},
		{
			key: EventFishRain,
			check: func(t *testing.T, h *fakeHost) {
				if len(h.fish) != 1 || h.fish[0].Name != "Skyfish" {
					t.Fatalf("expected a Skyfish, got %v", h.fish)
				}
			},
			prefix: "A mysterious rain dropped a Skyfish",
		},
		{
			key:   EventPlague,
			setup: func(h *fakeHost) { h.occupied = 3 },
			check: func(t *testing.T, h *fakeHost) {
				if h.damaged != 2 {
					t.Fatalf("expected two damage attempts to land, got %d", h.damaged)
				}
			},
			prefix: "A mysterious plague",
		},
		{
			key: EventSpiritFarmer,
			check: func(t *testing.T, h *fakeHost) {
				if len(h.unlocked) != 1 || h.unlocked[0] != "lazy_ghost" {
					t.Fatalf("expected lazy_ghost unlocked, got %v", h.unlocked)
				}
			},
			prefix: "A benevolent spirit gifted you a Lazy Ghost Seed!",
		},
		{
			key: EventLazyDay,
			check: func(t *testing.T, h *fakeHost) {
				if h.maxStamina != 3 || h.lazyPenalty != 2 {
					t.Fatalf("expected max 3 and penalty 2, got max=%d penalty=%d", h.maxStamina, h.lazyPenalty)
				}
			},
			prefix: "You feel extremely lazy today...",
		},
		{
			key: EventStarryNight,
			check: func(t *testing.T, h *fakeHost) {
				if len(h.bonuses) != 1 || h.bonuses[0] != 100 {
					t.Fatalf("expected a 100%% bonus, got %v", h.bonuses)
				}
			},
			prefix: "A starry night!",
		},
		{
			key: EventInflatedMarket,
			check: func(t *testing.T, h *fakeHost) {
				if !h.inflated {
					t.Fatalf("expected market inflated")
				}
			},
			prefix: "Prices have doubled today!",
		},
		{
			key: EventNightRobbery,
			check: func(t *testing.T, h *fakeHost) {
				if h.money != 150 {
					t.Fatalf("expected 100 stolen, money=%d", h.money)
				}
			},
			prefix: "Thieves stole $100",
		},
		{
			key: EventPerfectFishingDay,
			check: func(t *testing.T, h *fakeHost) {
				if !h.fishingBonus {
					t.Fatalf("expected fishing bonus")
				}
			},
			prefix: "The fish are biting!",
		},
		{
			key: EventRichPatron,
			check: func(t *testing.T, h *fakeHost) {
				if h.money != 750 {
					t.Fatalf("expected +500, money=%d", h.money)
				}
			},
			prefix: "Your charm paid off.",
		},
		{
			key: EventSugarDaddy,
			check: func(t *testing.T, h *fakeHost) {
				if h.money != 3250 {
					t.Fatalf("expected +3000, money=%d", h.money)
				}
			},
			prefix: "Farm life is tough",
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			host := newFakeHost()
			if tc.setup != nil {
				tc.setup(host)
			}
			engine := NewEventEngine(host, 1, seededRNG(5))
			msg, ok := engine.Trigger(tc.key)
			if !ok {
				t.Fatalf("expected %s to act", tc.key)
			}
			if !strings.HasPrefix(msg, tc.prefix) {
				t.Fatalf("expected message starting %q, got %q", tc.prefix, msg)
			}
			tc.check(t, host)
		})
	}
}

func TestEventsDeclineWithoutTargets(t *testing.T) {
	host := newFakeHost()
	engine := NewEventEngine(host, 1, seededRNG(5))
	if _, ok := engine.Trigger(EventStorm); ok {
		t.Fatalf("expected storm to decline on an empty farm")
	}
	if _, ok := engine.Trigger(EventPlague); ok {
		t.Fatalf("expected plague to decline on an empty farm")
	}

	host.maxStamina = 1
	if _, ok := engine.Trigger(EventLazyDay); ok {
		t.Fatalf("expected lazy day to decline at max stamina 1")
	}
	if host.lazyPenalty != 0 {
		t.Fatalf("expected no lazy penalty recorded, got %d", host.lazyPenalty)
	}
}

func TestRobberyNeverStealsMoreThanHeld(t *testing.T) {
	host := newFakeHost()
	host.money = 30
	engine := NewEventEngine(host, 1, seededRNG(5))
	msg, _ := engine.Trigger(EventNightRobbery)
	if host.money != 0 || msg != "Thieves stole $30 from your farm during the night!" {
		t.Fatalf("expected $30 stolen, money=%d msg=%q", host.money, msg)
	}
}

// The lucky egg is recorded on the player but the event roll ignores it.
func TestLuckyEggHasNoEffectOnEvents(t *testing.T) {
	tune := func(b *Balance) { b.EventChance = 0.4 }
	plain, _ := newTestState(t, tune)
	lucky, _ := newTestState(t, tune)
	lucky.Player().EventBonus = eventBonusLuckyEgg

	for i := 0; i < 40; i++ {
		a := plain.AdvanceDay()
		b := lucky.AdvanceDay()
		if a.Message != b.Message {
			t.Fatalf("day %d: expected identical outcomes, got %q vs %q", i+2, a.Message, b.Message)
		}
		plain.Player().FullRestore()
		lucky.Player().FullRestore()
	}
	if plain.Events().LastEventDay() != lucky.Events().LastEventDay() {
		t.Fatalf("expected identical event history")
	}
}
