package game

import (
	"fmt"
	"math/rand/v2"
)

// EventHost is the narrow slice of the game that world events may touch.
type EventHost interface {
	DamageRandomCrop() (string, bool)
	ApplyGrowthBonus(percent float64) string
	EarnMoney(amount int)
	StealMoney(limit int) int
	RestoreStamina(amount float64)
	ReduceMaxStamina(by, floor int) int
	AddCaughtFish(f Fish)
	UnlockCrop(name string) (string, bool)
	SetMarketInflated()
	SetFishingBonus()
	SetLazyDay(penalty int)
	SkyFish() Fish
	SpiritCrop() string
}

type EventKey string

const (
	EventStorm             EventKey = "storm"
	EventSunnyBonus        EventKey = "sunny_bonus"
	EventFoundMoney        EventKey = "found_money"
	EventFoundEnergy       EventKey = "found_energy"
	EventFishRain          EventKey = "fish_rain"
	EventPlague            EventKey = "plague"
	EventSpiritFarmer      EventKey = "spirit_farmer"
	EventLazyDay           EventKey = "lazy_day"
	EventStarryNight       EventKey = "starry_night"
	EventInflatedMarket    EventKey = "inflated_market"
	EventNightRobbery      EventKey = "night_robbery"
	EventPerfectFishingDay EventKey = "perfect_fishing_day"
	EventRichPatron        EventKey = "rich_patron"
	EventSugarDaddy        EventKey = "sugar_daddy"
)

const (
	sunnyBonusPercent  = 20
	starryBonusPercent = 100
	foundMoneyMin      = 10
	foundMoneyMax      = 50
	robberyLimit       = 100
	patronReward       = 500
	marriageReward     = 3000
	lazyDayPenalty     = 2
	lazyDayFloor       = 1
	plagueAttempts     = 2
)

// eventFunc returns the event's message, or false when it declines to act.
type eventFunc func(h EventHost, rng *rand.Rand) (string, bool)

type worldEvent struct {
	key  EventKey
	fire eventFunc
}

var worldEvents = []worldEvent{
	{EventStorm, func(h EventHost, _ *rand.Rand) (string, bool) {
		return h.DamageRandomCrop()
	}},
	{EventSunnyBonus, func(h EventHost, _ *rand.Rand) (string, bool) {
		return h.ApplyGrowthBonus(sunnyBonusPercent), true
	}},
	{EventFoundMoney, func(h EventHost, rng *rand.Rand) (string, bool) {
		amount := foundMoneyMin + rng.IntN(foundMoneyMax-foundMoneyMin+1)
		h.EarnMoney(amount)
		return fmt.Sprintf("You found money on the ground! (+%s)", money(amount)), true
	}},
	{EventFoundEnergy, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.RestoreStamina(1)
		return "You found an energy drink! (+1 heart)", true
	}},
	{EventFishRain, func(h EventHost, _ *rand.Rand) (string, bool) {
		fish := h.SkyFish()
		h.AddCaughtFish(fish)
		return fmt.Sprintf("A mysterious rain dropped a %s into your bucket! (+%s)", fish.Name, money(fish.Value)), true
	}},
	{EventPlague, func(h EventHost, _ *rand.Rand) (string, bool) {
		damaged := 0
		for i := 0; i < plagueAttempts; i++ {
			if _, ok := h.DamageRandomCrop(); ok {
				damaged++
			}
		}
		if damaged == 0 {
			return "", false
		}
		return "A mysterious plague destroyed some crops!", true
	}},
	{EventSpiritFarmer, func(h EventHost, _ *rand.Rand) (string, bool) {
		crop := h.SpiritCrop()
		h.UnlockCrop(crop)
		return fmt.Sprintf("A benevolent spirit gifted you a %s Seed!", displayName(crop)), true
	}},
	{EventLazyDay, func(h EventHost, _ *rand.Rand) (string, bool) {
		removed := h.ReduceMaxStamina(lazyDayPenalty, lazyDayFloor)
		if removed == 0 {
			return "", false
		}
		h.SetLazyDay(removed)
		return fmt.Sprintf("You feel extremely lazy today... (-%d Max Hearts)", removed), true
	}},
	{EventStarryNight, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.ApplyGrowthBonus(starryBonusPercent)
		return "A starry night! Your crops shot up overnight.", true
	}},
	{EventInflatedMarket, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.SetMarketInflated()
		return "Prices have doubled today! (Inflated Market)", true
	}},
	{EventNightRobbery, func(h EventHost, _ *rand.Rand) (string, bool) {
		stolen := h.StealMoney(robberyLimit)
		return fmt.Sprintf("Thieves stole %s from your farm during the night!", money(stolen)), true
	}},
	{EventPerfectFishingDay, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.SetFishingBonus()
		return "The fish are biting! (+50% fish value today!)", true
	}},
	{EventRichPatron, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.EarnMoney(patronReward)
		return fmt.Sprintf("Your charm paid off. A rich old farmer who just loves your crops appears. 💖 (+%s)", money(patronReward)), true
	}},
	{EventSugarDaddy, func(h EventHost, _ *rand.Rand) (string, bool) {
		h.EarnMoney(marriageReward)
		return fmt.Sprintf("Farm life is tough… unless you marry rich! 💍 (+%s)", money(marriageReward)), true
	}},
}

// EventKeys lists the catalog in roll order.
func EventKeys() []EventKey {
	keys := make([]EventKey, len(worldEvents))
	for i, e := range worldEvents {
		keys[i] = e.key
	}
	return keys
}

// EventResult describes a fired event. Message is empty when the event declined.
type EventResult struct {
	Key     EventKey
	Message string
}

// EventEngine fires at most one random world event per day.
type EventEngine struct {
	host         EventHost
	rng          *rand.Rand
	chance       float64
	lastEventDay int
}

func NewEventEngine(host EventHost, chance float64, rng *rand.Rand) *EventEngine {
	return &EventEngine{host: host, rng: rng, chance: chance}
}

func (e *EventEngine) LastEventDay() int {
	return e.lastEventDay
}

// Update rolls for an event on day. The roll is always consumed; the event
// only fires when it succeeds and no event has fired for day yet.
func (e *EventEngine) Update(day int) (EventResult, bool) {
	if e.rng.Float64() >= e.chance || e.lastEventDay == day {
		return EventResult{}, false
	}
	e.lastEventDay = day
	ev := worldEvents[e.rng.IntN(len(worldEvents))]
	msg, _ := ev.fire(e.host, e.rng)
	return EventResult{Key: ev.key, Message: msg}, true
}

// Trigger fires a specific event immediately, ignoring the chance roll and the
// once-per-day limit.
func (e *EventEngine) Trigger(key EventKey) (string, bool) {
	for _, ev := range worldEvents {
		if ev.key == key {
			return ev.fire(e.host, e.rng)
		}
	}
	return "", false
}

func (e *EventEngine) restore(lastEventDay int) {
	e.lastEventDay = lastEventDay
}
