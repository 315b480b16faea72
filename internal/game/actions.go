package game

import "fmt"

func (s *State) canWork() bool {
	return !s.dayCycle.IsNight() || s.player.HasLantern
}

func tooDark() Outcome {
	return decline(ErrTooDark, "It's too dark to work. You need a lantern.")
}

// Plant sows cropName in the plot at index (0-based). Every check runs before
// anything is spent.
func (s *State) Plant(cropName string, index int) Outcome {
	if !s.canWork() {
		return tooDark()
	}
	crop, ok := s.crops.Crop(cropName)
	if !ok {
		return decline(fmt.Errorf("%w: %s", ErrUnknownCrop, cropName), "Unknown crop.")
	}
	if !s.crops.IsUnlocked(cropName) {
		return decline(fmt.Errorf("%w: %s", ErrCropLocked, cropName), fmt.Sprintf("You haven't unlocked %s yet.", displayName(cropName)))
	}
	if !s.player.HasStamina(crop.StaminaCost) {
		return decline(ErrNotEnoughStamina, "Not enough stamina to plant.")
	}
	if !s.player.CanAfford(crop.Cost) {
		return decline(ErrNotEnoughMoney, "Not enough money.")
	}
	if err := s.farm.Plant(index, crop); err != nil {
		if _, inRange := s.farm.Plot(index); !inRange {
			return decline(err, "Invalid plot number.")
		}
		return decline(err, "That plot is already occupied.")
	}
	s.player.SpendMoney(crop.Cost)
	s.player.UseStamina(crop.StaminaCost)
	return succeed(fmt.Sprintf("Planted %s in plot %d.", displayName(cropName), index+1))
}

// Harvest collects every ready plot. No stamina is spent when nothing is ready.
func (s *State) Harvest() Outcome {
	if !s.canWork() {
		return tooDark()
	}
	if !s.player.HasStamina(s.balance.HarvestStamina) {
		return decline(ErrNotEnoughStamina, "Not enough stamina to harvest.")
	}
	if s.farm.ReadyCount() == 0 {
		return decline(nil, "Nothing ready to harvest yet!")
	}
	total := s.farm.HarvestReady()
	s.player.EarnMoney(total)
	s.player.UseStamina(s.balance.HarvestStamina)
	return succeed(fmt.Sprintf("Harvested crops worth %s!", money(total)))
}

// Sleep ends the day. Stamina is refilled even when the player was too tired
// for the day to advance.
func (s *State) Sleep() Outcome {
	if !s.dayCycle.IsNight() && !s.player.CanSleepAnytime {
		return decline(ErrSleepDaytime, "You can only sleep at night.")
	}
	out := s.AdvanceDay()
	s.player.FullRestore()
	s.player.LastSleepTime = s.clk.Now()
	if out.Message == "" {
		return succeed("You slept like a baby. A new day begins!")
	}
	return succeed(out.Message)
}

// Nap restores a little stamina and skips to the next part of the day.
func (s *State) Nap() Outcome {
	s.player.RestoreStamina(s.balance.NapStamina)
	part := s.dayCycle.Skip()
	return succeed(fmt.Sprintf("You took a nap. It's now %s.", part))
}

func (s *State) Fish() Outcome {
	if !s.merchant.FishingUnlocked() {
		return decline(ErrFishingLocked, "You need a fishing rod first.")
	}
	if !s.canWork() {
		return tooDark()
	}
	return s.fishing.Fish()
}

func (s *State) SellFish() Outcome {
	if !s.merchant.FishingUnlocked() {
		return decline(ErrFishingLocked, "You need a fishing rod first.")
	}
	if !s.canWork() {
		return tooDark()
	}
	return s.fishing.SellAll()
}

func (s *State) merchantClosed() (Outcome, bool) {
	if s.merchant.IsAvailable(s.dayCycle.Part()) {
		return Outcome{}, false
	}
	return decline(ErrMerchantClosed, "The merchant only trades in the morning."), true
}

func (s *State) BuySeed(key string) Outcome {
	if out, closed := s.merchantClosed(); closed {
		return out
	}
	return s.merchant.BuySeed(key)
}

func (s *State) BuyItem(key string) Outcome {
	if out, closed := s.merchantClosed(); closed {
		return out
	}
	return s.merchant.BuyItem(key)
}

func (s *State) BuyExpansion(key string) Outcome {
	if out, closed := s.merchantClosed(); closed {
		return out
	}
	return s.merchant.BuyExpansion(key)
}
