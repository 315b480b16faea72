package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/appengine-ltd/terminal-farmer/internal/clock"
)

// Options configures a new game. Zero values pick sensible defaults.
type Options struct {
	Clock clock.Clock
	// Seed drives every random roll. 0 seeds from the current time.
	Seed    int64
	Balance *Balance
	Logger  *slog.Logger
	GameID  uuid.UUID
}

// dailyFlags are one-day effects cleared at the start of every advanceDay.
type dailyFlags struct {
	marketInflated bool
	fishingBonus   bool
	// lazyDayPenalty is the max stamina to hand back at the next day advance.
	lazyDayPenalty int
}

// State is the aggregate root of a game and the unit of persistence.
type State struct {
	id      uuid.UUID
	clk     clock.Clock
	rng     *rand.Rand
	log     *slog.Logger
	balance Balance

	player   *Player
	farm     *Farm
	crops    *CropSystem
	weather  *WeatherSystem
	calendar *Calendar
	dayCycle *DayCycle
	events   *EventEngine
	merchant *Merchant
	fishing  *FishingSystem
	daily    dailyFlags
}

func New(opts Options) (*State, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	balance := DefaultBalance()
	if opts.Balance != nil {
		balance = *opts.Balance
		if err := balance.Validate(); err != nil {
			return nil, fmt.Errorf("invalid balance: %w", err)
		}
	}
	if opts.GameID == uuid.Nil {
		opts.GameID = uuid.New()
	}

	s := &State{
		id:      opts.GameID,
		clk:     opts.Clock,
		rng:     seededRNG(opts.Seed),
		balance: balance,
	}
	s.log = opts.Logger.With("game_id", s.id.String())
	s.build()
	return s, nil
}

func (s *State) build() {
	b := s.balance
	now := s.clk.Now()
	s.player = NewPlayer(b.StartingMoney, b.StartingMaxStamina, now)
	s.farm = NewFarm(b.FarmSize, s.clk, s.rng)
	s.crops = NewCropSystem(b.Crops, b.StartingCrops)
	s.weather = NewWeatherSystem(b.WeatherChangeChance, s.rng)
	s.calendar = NewCalendar()
	s.dayCycle = NewDayCycle(s.clk, b.DayParts, s.calendar.Season)
	s.events = NewEventEngine(eventHost{s}, b.EventChance, s.rng)
	s.merchant = NewMerchant(MerchantDeps{
		Player:   s.player,
		Crops:    s.crops,
		Farm:     s.farm,
		Inflated: func() bool { return s.daily.marketInflated },
	}, b)
	s.fishing = NewFishingSystem(s.player, b.Fish, b.FishingStamina, s.fishMultiplier, s.rng)
	s.daily = dailyFlags{}
}

// Reset starts a brand-new game in place. The game ID is kept.
func (s *State) Reset() {
	s.build()
	s.log.Info("game reset")
}

func (s *State) ID() uuid.UUID {
	return s.id
}

func (s *State) Balance() Balance {
	return s.balance
}

func (s *State) Player() *Player {
	return s.player
}

func (s *State) Farm() *Farm {
	return s.farm
}

func (s *State) Crops() *CropSystem {
	return s.crops
}

func (s *State) Weather() *WeatherSystem {
	return s.weather
}

func (s *State) Calendar() *Calendar {
	return s.calendar
}

func (s *State) DayCycle() *DayCycle {
	return s.dayCycle
}

func (s *State) Events() *EventEngine {
	return s.events
}

func (s *State) Merchant() *Merchant {
	return s.merchant
}

func (s *State) Fishing() *FishingSystem {
	return s.fishing
}

func (s *State) MarketInflated() bool {
	return s.daily.marketInflated
}

func (s *State) FishingBonusActive() bool {
	return s.daily.fishingBonus
}

func (s *State) LazyDayActive() bool {
	return s.daily.lazyDayPenalty > 0
}

// Tick polls the day-part cycle. The UI calls it before each render.
func (s *State) Tick() (string, bool) {
	msg, changed := s.dayCycle.Update()
	if changed {
		s.log.Debug("day part changed", "part", s.dayCycle.Part().String())
	}
	return msg, changed
}

func (s *State) fishMultiplier() float64 {
	if s.daily.fishingBonus {
		return s.balance.FishingBonusMultiplier
	}
	return 1.0
}

func (s *State) resetDaily() {
	s.daily.marketInflated = false
	s.daily.fishingBonus = false
	if s.daily.lazyDayPenalty > 0 {
		s.player.RaiseMaxStamina(s.daily.lazyDayPenalty)
		s.daily.lazyDayPenalty = 0
	}
}

// eventHost exposes just what world events may change.
type eventHost struct {
	s *State
}

func (h eventHost) DamageRandomCrop() (string, bool) {
	return h.s.farm.DamageRandomCrop()
}

func (h eventHost) ApplyGrowthBonus(percent float64) string {
	return h.s.farm.ApplyGrowthBonus(percent)
}

func (h eventHost) EarnMoney(amount int) {
	h.s.player.EarnMoney(amount)
}

func (h eventHost) StealMoney(limit int) int {
	stolen := min(limit, h.s.player.Money)
	h.s.player.SpendMoney(stolen)
	return stolen
}

func (h eventHost) RestoreStamina(amount float64) {
	h.s.player.RestoreStamina(amount)
}

func (h eventHost) ReduceMaxStamina(by, floor int) int {
	return h.s.player.ReduceMaxStamina(by, floor)
}

func (h eventHost) AddCaughtFish(f Fish) {
	h.s.fishing.Add(f)
}

func (h eventHost) UnlockCrop(name string) (string, bool) {
	return h.s.crops.Unlock(name)
}

func (h eventHost) SetMarketInflated() {
	h.s.daily.marketInflated = true
}

func (h eventHost) SetFishingBonus() {
	h.s.daily.fishingBonus = true
}

func (h eventHost) SetLazyDay(penalty int) {
	h.s.daily.lazyDayPenalty += penalty
}

func (h eventHost) SkyFish() Fish {
	return h.s.balance.FishRain
}

func (h eventHost) SpiritCrop() string {
	return h.s.balance.SpiritCrop
}
