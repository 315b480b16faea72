package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandResult is what a text command produced. Handled=false means the
// command was not recognised at all.
type CommandResult struct {
	Handled bool
	OK      bool
	Message string
}

func fromOutcome(out Outcome) CommandResult {
	return CommandResult{Handled: true, OK: out.OK, Message: out.Message}
}

const helpText = "Commands: status, plant <crop> [plot], harvest, next, sleep, nap, fish, sell, shop, buy <item>, farmdex, save, new game, quit."

// ExecuteCommand runs one canonical command line such as "plant wheat 3".
// Plot numbers are 1-based. Session commands (save, quit) belong to the caller.
func (s *State) ExecuteCommand(raw string) CommandResult {
	fields := strings.Fields(strings.TrimSpace(strings.ToLower(raw)))
	if len(fields) == 0 {
		return CommandResult{Handled: false}
	}

	switch fields[0] {
	case "help", "commands":
		return CommandResult{Handled: true, OK: true, Message: helpText}
	case "status":
		return CommandResult{Handled: true, OK: true, Message: s.statusLine()}
	case "plant":
		return s.executePlantCommand(fields[1:])
	case "harvest":
		return fromOutcome(s.Harvest())
	case "next":
		out := s.AdvanceDay()
		if out.OK && out.Message == "" {
			out.Message = fmt.Sprintf("Day %d begins.", s.calendar.Day())
		}
		return fromOutcome(out)
	case "sleep":
		return fromOutcome(s.Sleep())
	case "nap":
		return fromOutcome(s.Nap())
	case "fish":
		return fromOutcome(s.Fish())
	case "sell":
		return fromOutcome(s.SellFish())
	case "shop":
		return CommandResult{Handled: true, OK: true, Message: s.shopLine()}
	case "buy":
		if len(fields) < 2 {
			return CommandResult{Handled: true, Message: "Buy what? Try shop to see the offers."}
		}
		return fromOutcome(s.Buy(strings.Join(fields[1:], "_")))
	case "farmdex":
		return CommandResult{Handled: true, OK: true, Message: s.farmdexLine()}
	default:
		return CommandResult{Handled: false}
	}
}

func (s *State) plantMenu() string {
	labels := make([]string, 0, len(s.crops.unlocked))
	for _, c := range s.crops.Unlocked() {
		labels = append(labels, c.MenuLabel())
	}
	return "Plant what? Unlocked: " + strings.Join(labels, ", ") + "."
}

func (s *State) executePlantCommand(args []string) CommandResult {
	if len(args) == 0 {
		return CommandResult{Handled: true, Message: s.plantMenu()}
	}
	index := -1
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
		if n < 1 {
			return CommandResult{Handled: true, Message: "Invalid plot number."}
		}
		index = n - 1
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return CommandResult{Handled: true, Message: s.plantMenu()}
	}
	crop := strings.Join(args, "_")
	if index < 0 {
		index = s.firstEmptyPlot()
		if index < 0 {
			return CommandResult{Handled: true, Message: "Every plot is already occupied."}
		}
	}
	return fromOutcome(s.Plant(crop, index))
}

func (s *State) firstEmptyPlot() int {
	for i, p := range s.farm.plots {
		if p.IsEmpty() {
			return i
		}
	}
	return -1
}

// Buy routes a shop key to the seed, item or expansion catalog.
func (s *State) Buy(key string) Outcome {
	switch {
	case s.merchant.hasSeed(key):
		return s.BuySeed(key)
	case s.merchant.hasItem(key):
		return s.BuyItem(key)
	case s.merchant.hasExpansion(key):
		return s.BuyExpansion(key)
	}
	return decline(fmt.Errorf("%w: %s", ErrUnknownItem, key), "Invalid item.")
}

func (s *State) statusLine() string {
	p := s.player
	return fmt.Sprintf("Day %d (%s, %s, %s). Money %s. Hearts %.1f/%d. %d/%d plots planted, %d ready.",
		s.calendar.Day(),
		s.calendar.Season(),
		s.dayCycle.Part(),
		s.weather.Current(),
		money(p.Money),
		p.Stamina,
		p.MaxStamina,
		s.farm.OccupiedCount(),
		s.farm.Size(),
		s.farm.ReadyCount(),
	)
}

func (s *State) shopLine() string {
	m := s.merchant
	parts := make([]string, 0, len(m.seeds)+len(m.items)+len(m.expansions))
	for _, seed := range m.seeds {
		parts = append(parts, fmt.Sprintf("%s %s", seed.Key, money(m.Price(seed.Price))))
	}
	for _, it := range m.items {
		if m.Owns(it.Key) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", it.Key, money(m.Price(it.Price))))
	}
	for _, e := range m.expansions {
		if e.Plots <= s.farm.Size() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d plots) %s", e.Key, e.Plots, money(m.Price(e.Price))))
	}
	prefix := "Merchant"
	if !m.IsAvailable(s.dayCycle.Part()) {
		prefix = "Merchant (back in the morning)"
	}
	if s.daily.marketInflated {
		prefix += " [prices doubled today]"
	}
	return prefix + ": " + strings.Join(parts, ", ") + "."
}

func (s *State) farmdexLine() string {
	if !s.player.HasFarmdex {
		return "You need a Farmdex scanner to hunt fossils."
	}
	view := s.Farmdex()
	if len(view.Found) == 0 {
		return fmt.Sprintf("Farmdex: 0/%d fossils found.", view.Total)
	}
	return fmt.Sprintf("Farmdex: %d/%d fossils found: %s.", len(view.Found), view.Total, strings.Join(view.Found, ", "))
}

// ShopKeys lists everything the merchant stocks, for command completion.
func (s *State) ShopKeys() []string {
	m := s.merchant
	keys := make([]string, 0, len(m.seeds)+len(m.items)+len(m.expansions))
	for _, seed := range m.seeds {
		keys = append(keys, seed.Key)
	}
	for _, it := range m.items {
		keys = append(keys, it.Key)
	}
	for _, e := range m.expansions {
		keys = append(keys, e.Key)
	}
	return keys
}
