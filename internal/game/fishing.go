package game

import (
	"fmt"
	"math/rand/v2"
)

type Fish struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Value int    `json:"value" yaml:"value" validate:"gt=0"`
}

// FishingSystem holds the catch until it is sold.
type FishingSystem struct {
	player  *Player
	catalog []Fish
	cost    float64
	bonus   func() float64
	rng     *rand.Rand
	caught  []Fish
}

// NewFishingSystem wires fishing to the player it charges and pays. bonus
// returns the sale multiplier in effect right now.
func NewFishingSystem(player *Player, catalog []Fish, cost float64, bonus func() float64, rng *rand.Rand) *FishingSystem {
	return &FishingSystem{
		player:  player,
		catalog: append([]Fish(nil), catalog...),
		cost:    cost,
		bonus:   bonus,
		rng:     rng,
	}
}

func (f *FishingSystem) Caught() []Fish {
	return append([]Fish(nil), f.caught...)
}

func (f *FishingSystem) Add(fish Fish) {
	f.caught = append(f.caught, fish)
}

// Fish spends stamina and lands one uniformly random fish.
func (f *FishingSystem) Fish() Outcome {
	if err := f.player.TryUseStamina(f.cost); err != nil {
		return decline(err, "Not enough stamina to fish.")
	}
	fish := f.catalog[f.rng.IntN(len(f.catalog))]
	f.Add(fish)
	return succeed(fmt.Sprintf("You caught a %s worth %s!", fish.Name, money(fish.Value)))
}

// SellAll credits the player with the catch value, truncating the bonus per fish.
func (f *FishingSystem) SellAll() Outcome {
	if len(f.caught) == 0 {
		return decline(nil, "You have no fish to sell.")
	}
	multiplier := 1.0
	if f.bonus != nil {
		multiplier = f.bonus()
	}
	total := 0
	for _, fish := range f.caught {
		total += int(float64(fish.Value) * multiplier)
	}
	f.player.EarnMoney(total)
	f.caught = nil
	return succeed(fmt.Sprintf("Sold all fish for %s!", money(total)))
}

func (f *FishingSystem) restore(caught []Fish) {
	f.caught = append([]Fish(nil), caught...)
}
