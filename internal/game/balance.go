package game

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DayUnlock grants Crop when the calendar reaches Day.
type DayUnlock struct {
	Day  int    `yaml:"day" validate:"gte=1"`
	Crop string `yaml:"crop" validate:"required"`
}

// Balance holds every tunable number and catalog in the game.
type Balance struct {
	StartingMoney      int      `yaml:"starting_money" validate:"gte=0"`
	StartingMaxStamina int      `yaml:"starting_max_stamina" validate:"gte=1"`
	FarmSize           int      `yaml:"farm_size" validate:"gte=1"`
	StartingCrops      []string `yaml:"starting_crops" validate:"min=1,dive,required"`

	HarvestStamina    float64 `yaml:"harvest_stamina" validate:"gte=0"`
	AdvanceDayStamina float64 `yaml:"advance_day_stamina" validate:"gte=0"`
	FishingStamina    float64 `yaml:"fishing_stamina" validate:"gte=0"`
	NapStamina        float64 `yaml:"nap_stamina" validate:"gte=0"`

	EventChance         float64 `yaml:"event_chance" validate:"gte=0,lte=1"`
	WeatherChangeChance float64 `yaml:"weather_change_chance" validate:"gte=0,lte=1"`
	FossilChance        float64 `yaml:"fossil_chance" validate:"gte=0,lte=1"`
	FossilCap           int     `yaml:"fossil_cap" validate:"gte=0"`
	// RestoreHoursPerHeart is how many offline hours restore one heart on load.
	RestoreHoursPerHeart   float64 `yaml:"restore_hours_per_heart" validate:"gt=0"`
	FishingBonusMultiplier float64 `yaml:"fishing_bonus_multiplier" validate:"gte=1"`
	InflationMultiplier    int     `yaml:"inflation_multiplier" validate:"gte=1"`

	DayUnlocks []DayUnlock       `yaml:"day_unlocks" validate:"dive"`
	SpiritCrop string            `yaml:"spirit_crop" validate:"required"`
	Crops      []Crop            `yaml:"crops" validate:"min=1,dive"`
	Fish       []Fish            `yaml:"fish" validate:"min=1,dive"`
	FishRain   Fish              `yaml:"fish_rain"`
	Seeds      []SeedOffer       `yaml:"seeds" validate:"dive"`
	Items      []ItemOffer       `yaml:"items" validate:"dive"`
	Expansions []ExpansionOffer  `yaml:"expansions" validate:"dive"`
	DayParts   SeasonalDurations `yaml:"day_parts"`
	Fossils    []string          `yaml:"fossils" validate:"dive,required"`
}

func DefaultBalance() Balance {
	uniform := PartDurations{Morning: 3, Afternoon: 3, Evening: 3, Night: 3}
	return Balance{
		StartingMoney:      50,
		StartingMaxStamina: 5,
		FarmSize:           9,
		StartingCrops:      []string{"wheat"},

		HarvestStamina:    0.5,
		AdvanceDayStamina: 1.0,
		FishingStamina:    2.0,
		NapStamina:        1.0,

		EventChance:            0.4,
		WeatherChangeChance:    0.2,
		FossilChance:           0.75,
		FossilCap:              50,
		RestoreHoursPerHeart:   2,
		FishingBonusMultiplier: 1.5,
		InflationMultiplier:    2,

		DayUnlocks: []DayUnlock{{Day: 3, Crop: "corn"}, {Day: 7, Crop: "pumpkin"}},
		SpiritCrop: "lazy_ghost",
		Crops: []Crop{
			{Name: "wheat", Cost: 10, GrowthTime: 10, Value: 20, Color: "yellow", StaminaCost: 0.5},
			{Name: "corn", Cost: 20, GrowthTime: 20, Value: 45, Color: "bright_yellow", StaminaCost: 0.5},
			{Name: "pumpkin", Cost: 40, GrowthTime: 40, Value: 100, Color: "orange", StaminaCost: 1.0},
			{Name: "carrot", Cost: 15, GrowthTime: 12, Value: 25, Color: "orange", StaminaCost: 0.5},
			{Name: "eggplant", Cost: 35, GrowthTime: 30, Value: 70, Color: "purple", StaminaCost: 1.0},
			{Name: "blueberry", Cost: 60, GrowthTime: 35, Value: 90, Color: "blue", StaminaCost: 1.0},
			{Name: "lazy_ghost", Cost: 0, GrowthTime: 30, Value: 100, Color: "white", StaminaCost: 0, Rare: true},
		},
		Fish: []Fish{
			{Name: "Salmon", Value: 40},
			{Name: "Tuna", Value: 50},
			{Name: "Golden Fish", Value: 100},
			{Name: "Skyfish", Value: 150},
		},
		FishRain: Fish{Name: "Skyfish", Value: 150},
		Seeds: []SeedOffer{
			{Key: "eggplant_seed", Crop: "eggplant", Price: 80},
			{Key: "blueberry_seed", Crop: "blueberry", Price: 120},
		},
		Items: []ItemOffer{
			{Key: "farmdex_scanner", Price: 300, Effect: EffectUnlockFarmdex},
			{Key: "fishing_rod", Price: 6666, Effect: EffectUnlockFishing},
			{Key: "golden_hat", Price: 3333, Effect: EffectCosmetic},
			{Key: "lucky_egg", Price: 5000, Effect: EffectEventChance},
			{Key: "balatro_card", Price: 7777, Effect: EffectIncreaseMaxStamina},
			{Key: "lantern", Price: 5000, Effect: EffectNightWork},
			{Key: "hammock", Price: 2000, Effect: EffectSleepAnywhere},
		},
		Expansions: []ExpansionOffer{
			{Key: "small_expansion", Plots: 12, Price: 500},
			{Key: "medium_expansion", Plots: 16, Price: 1500},
			{Key: "large_expansion", Plots: 25, Price: 3000},
		},
		DayParts: SeasonalDurations{
			Spring: uniform,
			Summer: PartDurations{Morning: 4, Afternoon: 4, Evening: 2, Night: 3},
			Autumn: uniform,
			Winter: PartDurations{Morning: 3, Afternoon: 3, Evening: 4, Night: 3},
		},
		Fossils: defaultFossils(),
	}
}

// LoadBalance reads a YAML tuning file over the defaults. Keys missing from
// the file keep their default value.
func LoadBalance(path string) (Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Balance{}, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Balance{}, fmt.Errorf("parse balance file %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return Balance{}, fmt.Errorf("balance file %s: %w", path, err)
	}
	return b, nil
}

// Validate checks field ranges and that every catalog reference resolves.
func (b Balance) Validate() error {
	if err := validator.New().Struct(b); err != nil {
		return err
	}

	crops := make(map[string]bool, len(b.Crops))
	for _, c := range b.Crops {
		if crops[c.Name] {
			return fmt.Errorf("duplicate crop: %s", c.Name)
		}
		crops[c.Name] = true
	}
	for _, name := range b.StartingCrops {
		if !crops[name] {
			return fmt.Errorf("starting crop not in catalog: %s", name)
		}
	}
	for _, u := range b.DayUnlocks {
		if !crops[u.Crop] {
			return fmt.Errorf("day %d unlock not in catalog: %s", u.Day, u.Crop)
		}
	}
	if !crops[b.SpiritCrop] {
		return fmt.Errorf("spirit crop not in catalog: %s", b.SpiritCrop)
	}
	for _, s := range b.Seeds {
		if !crops[s.Crop] {
			return fmt.Errorf("seed %s unlocks unknown crop %s", s.Key, s.Crop)
		}
	}
	if b.FishRain.Name == "" || b.FishRain.Value <= 0 {
		return fmt.Errorf("fish rain catch must have a name and a positive value")
	}
	for _, e := range b.Expansions {
		if e.Plots <= b.FarmSize {
			return fmt.Errorf("expansion %s does not grow a %d plot farm", e.Key, b.FarmSize)
		}
	}
	return nil
}
