package game

import (
	"fmt"
	"slices"
)

type ItemEffect string

const (
	EffectUnlockFishing      ItemEffect = "unlock_fishing"
	EffectUnlockFarmdex      ItemEffect = "unlock_farmdex"
	EffectCosmetic           ItemEffect = "cosmetic"
	EffectEventChance        ItemEffect = "increase_event_chance"
	EffectIncreaseMaxStamina ItemEffect = "increase_max_stamina"
	EffectNightWork          ItemEffect = "unlock_night_work"
	EffectSleepAnywhere      ItemEffect = "sleep_anywhere"
)

const maxStaminaUpgrade = 4

type SeedOffer struct {
	Key   string `yaml:"key" validate:"required"`
	Crop  string `yaml:"crop" validate:"required"`
	Price int    `yaml:"price" validate:"gt=0"`
}

type ItemOffer struct {
	Key    string     `yaml:"key" validate:"required"`
	Price  int        `yaml:"price" validate:"gt=0"`
	Effect ItemEffect `yaml:"effect" validate:"oneof=unlock_fishing unlock_farmdex cosmetic increase_event_chance increase_max_stamina unlock_night_work sleep_anywhere"`
}

// ExpansionOffer grows the farm to Plots plots.
type ExpansionOffer struct {
	Key   string `yaml:"key" validate:"required"`
	Plots int    `yaml:"plots" validate:"gt=0"`
	Price int    `yaml:"price" validate:"gt=0"`
}

// Merchant sells seed unlocks, one-time items and farm expansions. It only
// trades in the morning.
type Merchant struct {
	player          *Player
	crops           *CropSystem
	farm            *Farm
	seeds           []SeedOffer
	items           []ItemOffer
	expansions      []ExpansionOffer
	inflated        func() bool
	inflation       int
	fishingUnlocked bool
	bought          []string
}

type MerchantDeps struct {
	Player *Player
	Crops  *CropSystem
	Farm   *Farm
	// Inflated reports whether prices are multiplied today.
	Inflated func() bool
}

func NewMerchant(deps MerchantDeps, b Balance) *Merchant {
	return &Merchant{
		player:     deps.Player,
		crops:      deps.Crops,
		farm:       deps.Farm,
		inflated:   deps.Inflated,
		inflation:  b.InflationMultiplier,
		seeds:      slices.Clone(b.Seeds),
		items:      slices.Clone(b.Items),
		expansions: slices.Clone(b.Expansions),
	}
}

func (m *Merchant) IsAvailable(part DayPart) bool {
	return part == Morning
}

func (m *Merchant) Seeds() []SeedOffer {
	return slices.Clone(m.seeds)
}

func (m *Merchant) Items() []ItemOffer {
	return slices.Clone(m.items)
}

func (m *Merchant) Expansions() []ExpansionOffer {
	return slices.Clone(m.expansions)
}

func (m *Merchant) FishingUnlocked() bool {
	return m.fishingUnlocked
}

// ExpansionsBought lists purchased expansion keys in purchase order.
func (m *Merchant) ExpansionsBought() []string {
	return slices.Clone(m.bought)
}

// Price applies today's inflation to a base price.
func (m *Merchant) Price(base int) int {
	if m.inflated != nil && m.inflated() {
		return base * m.inflation
	}
	return base
}

func (m *Merchant) seed(key string) (SeedOffer, bool) {
	for _, s := range m.seeds {
		if s.Key == key {
			return s, true
		}
	}
	return SeedOffer{}, false
}

func (m *Merchant) item(key string) (ItemOffer, bool) {
	for _, it := range m.items {
		if it.Key == key {
			return it, true
		}
	}
	return ItemOffer{}, false
}

func (m *Merchant) expansion(key string) (ExpansionOffer, bool) {
	for _, e := range m.expansions {
		if e.Key == key {
			return e, true
		}
	}
	return ExpansionOffer{}, false
}

func (m *Merchant) hasSeed(key string) bool {
	_, ok := m.seed(key)
	return ok
}

func (m *Merchant) hasItem(key string) bool {
	_, ok := m.item(key)
	return ok
}

func (m *Merchant) hasExpansion(key string) bool {
	_, ok := m.expansion(key)
	return ok
}

// BuySeed unlocks a crop permanently. An already unlocked crop costs nothing.
func (m *Merchant) BuySeed(key string) Outcome {
	seed, ok := m.seed(key)
	if !ok {
		return decline(fmt.Errorf("%w: %s", ErrUnknownItem, key), "Invalid seed.")
	}
	if _, known := m.crops.Crop(seed.Crop); !known {
		return decline(fmt.Errorf("%w: %s", ErrUnknownCrop, seed.Crop), "Invalid seed.")
	}
	if m.crops.IsUnlocked(seed.Crop) {
		return decline(ErrAlreadyOwned, fmt.Sprintf("%s is already unlocked.", displayName(seed.Crop)))
	}
	if err := m.player.TrySpendMoney(m.Price(seed.Price)); err != nil {
		return decline(err, "Not enough money.")
	}
	msg, _ := m.crops.Unlock(seed.Crop)
	return succeed(msg)
}

// Owns reports whether the one-time item behind key has already been bought.
func (m *Merchant) Owns(key string) bool {
	it, ok := m.item(key)
	if !ok {
		return false
	}
	p := m.player
	switch it.Effect {
	case EffectUnlockFishing:
		return m.fishingUnlocked
	case EffectUnlockFarmdex:
		return p.HasFarmdex
	case EffectCosmetic:
		return p.BoughtHat
	case EffectEventChance:
		return p.EventBonus == eventBonusLuckyEgg
	case EffectIncreaseMaxStamina:
		return p.StaminaUpgraded
	case EffectNightWork:
		return p.HasLantern
	case EffectSleepAnywhere:
		return p.CanSleepAnytime
	}
	return false
}

// BuyItem applies a one-time item. Items are never sold twice.
func (m *Merchant) BuyItem(key string) Outcome {
	it, ok := m.item(key)
	if !ok {
		return decline(fmt.Errorf("%w: %s", ErrUnknownItem, key), "Invalid item.")
	}
	if m.Owns(key) {
		return decline(ErrAlreadyOwned, "You already own this item.")
	}
	if err := m.player.TrySpendMoney(m.Price(it.Price)); err != nil {
		return decline(err, "Not enough money.")
	}

	p := m.player
	switch it.Effect {
	case EffectUnlockFishing:
		m.fishingUnlocked = true
		return succeed("You bought a fishing rod! Fishing is now available.")
	case EffectEventChance:
		p.EventBonus = eventBonusLuckyEgg
		return succeed("You feel luckier already... (+Event Chance)")
	case EffectIncreaseMaxStamina:
		p.StaminaUpgraded = true
		p.RaiseMaxStamina(maxStaminaUpgrade)
		p.FullRestore()
		return succeed(fmt.Sprintf("Your soul feels stronger... (+%d Max Stamina)", maxStaminaUpgrade))
	case EffectCosmetic:
		p.BoughtHat = true
		return succeed("Cosmetic item? In a CLI game? Bro... you deserved to lose that money. I'm sorry.")
	case EffectNightWork:
		p.HasLantern = true
		return succeed("You bought a lantern! Now you can work through the night.")
	case EffectUnlockFarmdex:
		p.HasFarmdex = true
		return succeed("Every two days, you have a 75% chance to discover a buried fossil! Help the local museum build the greatest dinosaur collection in history!")
	case EffectSleepAnywhere:
		p.CanSleepAnytime = true
		return succeed("You bought a hammock! Now you can sleep whenever you like.")
	}
	return succeed("Item purchased.")
}

// BuyExpansion grows the farm. Each expansion sells once and only if it adds plots.
func (m *Merchant) BuyExpansion(key string) Outcome {
	exp, ok := m.expansion(key)
	if !ok {
		return decline(fmt.Errorf("%w: %s", ErrUnknownItem, key), "Invalid expansion.")
	}
	if slices.Contains(m.bought, key) || exp.Plots <= m.farm.Size() {
		return decline(ErrAlreadyOwned, "Your farm is already that big.")
	}
	if err := m.player.TrySpendMoney(m.Price(exp.Price)); err != nil {
		return decline(err, "Not enough money.")
	}
	m.farm.Expand(exp.Plots)
	m.bought = append(m.bought, key)
	return succeed(fmt.Sprintf("Your farm now has %d plots!", exp.Plots))
}

func (m *Merchant) restore(fishingUnlocked bool, bought []string) {
	m.fishingUnlocked = fishingUnlocked
	m.bought = m.bought[:0]
	for _, key := range bought {
		if _, ok := m.expansion(key); ok && !slices.Contains(m.bought, key) {
			m.bought = append(m.bought, key)
		}
	}
}
