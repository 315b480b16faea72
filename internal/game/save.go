package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/google/uuid"
)

const saveFormatVersion = 2

// SaveStore is where encoded games live. ReadSave returns an error wrapping
// fs.ErrNotExist when nothing has been saved yet.
type SaveStore interface {
	ReadSave(ctx context.Context) ([]byte, error)
	WriteSave(ctx context.Context, data []byte) error
}

// Optional fields are pointers so a missing value can be told apart from a
// zero value and given its documented default.
type saveFile struct {
	FormatVersion  int                  `json:"formatVersion"`
	GameID         string               `json:"gameId,omitempty"`
	SavedAt        time.Time            `json:"savedAt"`
	Player         *playerRecord        `json:"player"`
	Farm           *farmRecord          `json:"farm"`
	CropSystem     *cropSystemRecord    `json:"cropSystem"`
	WeatherSystem  *weatherSystemRecord `json:"weatherSystem"`
	TimeSystem     *timeSystemRecord    `json:"timeSystem"`
	DayCycleSystem *dayCycleRecord      `json:"dayCycleSystem,omitempty"`
	Merchant       merchantRecord       `json:"merchant"`
	Fishing        fishingRecord        `json:"fishing"`
	Events         eventsRecord         `json:"events"`
	Daily          dailyRecord          `json:"daily"`
}

type playerRecord struct {
	Money           int        `json:"money"`
	Stamina         *float64   `json:"stamina,omitempty"`
	MaxStamina      *int       `json:"maxStamina,omitempty"`
	LastSleepTime   *time.Time `json:"lastSleepTime,omitempty"`
	HasFarmdex      bool       `json:"hasFarmdex"`
	FossilsFound    []string   `json:"fossilsFound"`
	CanSleepAnytime bool       `json:"canSleepAnytime"`
	HasLantern      bool       `json:"hasLantern,omitempty"`
	BoughtHat       bool       `json:"boughtHat,omitempty"`
	EventBonus      string     `json:"eventBonus,omitempty"`
	StaminaUpgraded *bool      `json:"staminaUpgraded,omitempty"`
}

type plotRecord struct {
	Crop      Crop       `json:"crop"`
	PlantedAt *time.Time `json:"plantedAt,omitempty"`
}

type farmRecord struct {
	Plots []*plotRecord `json:"plots"`
}

type cropSystemRecord struct {
	UnlockedCrops []string `json:"unlockedCrops"`
}

type weatherSystemRecord struct {
	CurrentWeather Weather `json:"currentWeather"`
}

type timeSystemRecord struct {
	Day int `json:"day"`
}

type dayCycleRecord struct {
	CurrentPartIndex int       `json:"currentPartIndex"`
	LastUpdateTime   time.Time `json:"lastUpdateTime"`
}

type merchantRecord struct {
	FishingUnlocked bool     `json:"fishingUnlocked"`
	Expansions      []string `json:"expansions,omitempty"`
}

type fishingRecord struct {
	Caught []Fish `json:"caught,omitempty"`
}

type eventsRecord struct {
	LastEventDay int `json:"lastEventDay,omitempty"`
}

type dailyRecord struct {
	MarketInflated bool `json:"marketInflated,omitempty"`
	FishingBonus   bool `json:"fishingBonus,omitempty"`
	LazyDayPenalty int  `json:"lazyDayPenalty,omitempty"`
}

// Encode serialises the whole game.
func (s *State) Encode() ([]byte, error) {
	p := s.player
	stamina := p.Stamina
	maxStamina := p.MaxStamina
	lastSleep := p.LastSleepTime
	upgraded := p.StaminaUpgraded

	plots := make([]*plotRecord, 0, s.farm.Size())
	for _, plot := range s.farm.Plots() {
		if plot.IsEmpty() {
			plots = append(plots, nil)
			continue
		}
		plantedAt := plot.PlantedAt
		plots = append(plots, &plotRecord{Crop: *plot.Crop, PlantedAt: &plantedAt})
	}

	payload := saveFile{
		FormatVersion: saveFormatVersion,
		GameID:        s.id.String(),
		SavedAt:       s.clk.Now().UTC(),
		Player: &playerRecord{
			Money:           p.Money,
			Stamina:         &stamina,
			MaxStamina:      &maxStamina,
			LastSleepTime:   &lastSleep,
			HasFarmdex:      p.HasFarmdex,
			FossilsFound:    append([]string{}, p.FossilsFound...),
			CanSleepAnytime: p.CanSleepAnytime,
			HasLantern:      p.HasLantern,
			BoughtHat:       p.BoughtHat,
			EventBonus:      p.EventBonus,
			StaminaUpgraded: &upgraded,
		},
		Farm:          &farmRecord{Plots: plots},
		CropSystem:    &cropSystemRecord{UnlockedCrops: s.crops.UnlockedNames()},
		WeatherSystem: &weatherSystemRecord{CurrentWeather: s.weather.Current()},
		TimeSystem:    &timeSystemRecord{Day: s.calendar.Day()},
		DayCycleSystem: &dayCycleRecord{
			CurrentPartIndex: int(s.dayCycle.Part()),
			LastUpdateTime:   s.dayCycle.LastUpdate(),
		},
		Merchant: merchantRecord{
			FishingUnlocked: s.merchant.FishingUnlocked(),
			Expansions:      s.merchant.ExpansionsBought(),
		},
		Fishing: fishingRecord{Caught: s.fishing.Caught()},
		Events:  eventsRecord{LastEventDay: s.events.LastEventDay()},
		Daily: dailyRecord{
			MarketInflated: s.daily.marketInflated,
			FishingBonus:   s.daily.fishingBonus,
			LazyDayPenalty: s.daily.lazyDayPenalty,
		},
	}
	return json.MarshalIndent(payload, "", "  ")
}

// Decode builds a game from saved data. Missing optional fields take their
// defaults; a missing section or an impossible value is ErrCorruptSave.
func Decode(data []byte, opts Options) (*State, error) {
	var payload saveFile
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if err := payload.check(); err != nil {
		return nil, err
	}
	if opts.GameID == uuid.Nil && payload.GameID != "" {
		id, err := uuid.Parse(payload.GameID)
		if err != nil {
			return nil, fmt.Errorf("%w: game id: %v", ErrCorruptSave, err)
		}
		opts.GameID = id
	}

	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	s.apply(payload)
	return s, nil
}

func (f saveFile) check() error {
	switch {
	case f.FormatVersion > saveFormatVersion:
		return fmt.Errorf("%w: format version %d is newer than %d", ErrCorruptSave, f.FormatVersion, saveFormatVersion)
	case f.Player == nil:
		return fmt.Errorf("%w: missing player", ErrCorruptSave)
	case f.Farm == nil || len(f.Farm.Plots) == 0:
		return fmt.Errorf("%w: missing farm", ErrCorruptSave)
	case f.CropSystem == nil:
		return fmt.Errorf("%w: missing crop system", ErrCorruptSave)
	case f.WeatherSystem == nil:
		return fmt.Errorf("%w: missing weather", ErrCorruptSave)
	case f.TimeSystem == nil || f.TimeSystem.Day < 1:
		return fmt.Errorf("%w: missing or invalid day", ErrCorruptSave)
	case f.Player.Money < 0:
		return fmt.Errorf("%w: negative money", ErrCorruptSave)
	case f.Player.MaxStamina != nil && *f.Player.MaxStamina < 1:
		return fmt.Errorf("%w: max stamina below 1", ErrCorruptSave)
	}
	return nil
}

func (s *State) apply(f saveFile) {
	now := s.clk.Now()

	p := s.player
	rec := f.Player
	p.Money = rec.Money
	p.MaxStamina = s.balance.StartingMaxStamina
	if rec.MaxStamina != nil {
		p.MaxStamina = *rec.MaxStamina
	}
	p.Stamina = float64(p.MaxStamina)
	if rec.Stamina != nil {
		p.Stamina = *rec.Stamina
	}
	p.clampStamina()
	p.LastSleepTime = now
	if rec.LastSleepTime != nil {
		p.LastSleepTime = *rec.LastSleepTime
	}
	p.HasFarmdex = rec.HasFarmdex
	p.FossilsFound = append([]string(nil), rec.FossilsFound...)
	p.CanSleepAnytime = rec.CanSleepAnytime
	p.HasLantern = rec.HasLantern
	p.BoughtHat = rec.BoughtHat
	p.EventBonus = rec.EventBonus
	if rec.StaminaUpgraded != nil {
		p.StaminaUpgraded = *rec.StaminaUpgraded
	} else {
		// Saves from before the flag existed only had the card as a source of extra hearts.
		p.StaminaUpgraded = p.MaxStamina > s.balance.StartingMaxStamina
	}

	plots := make([]Plot, len(f.Farm.Plots))
	for i, pr := range f.Farm.Plots {
		if pr == nil || pr.Crop.Name == "" || pr.PlantedAt == nil {
			continue
		}
		crop := pr.Crop
		plots[i] = Plot{Crop: &crop, PlantedAt: *pr.PlantedAt}
	}
	s.farm.restore(plots)

	if names := f.CropSystem.UnlockedCrops; len(names) > 0 {
		if dropped := s.crops.restoreUnlocked(names); len(dropped) > 0 {
			s.log.Warn("dropped unknown crops from save", "crops", dropped)
		}
	}
	s.weather.restore(f.WeatherSystem.CurrentWeather)
	s.calendar.day = f.TimeSystem.Day
	if dc := f.DayCycleSystem; dc != nil {
		s.dayCycle.restore(DayPart(dc.CurrentPartIndex), dc.LastUpdateTime)
	} else {
		s.dayCycle.restore(Morning, now)
	}
	s.merchant.restore(f.Merchant.FishingUnlocked, f.Merchant.Expansions)
	s.fishing.restore(f.Fishing.Caught)
	s.events.restore(f.Events.LastEventDay)
	s.daily = dailyFlags{
		marketInflated: f.Daily.MarketInflated,
		fishingBonus:   f.Daily.FishingBonus,
		lazyDayPenalty: max(0, f.Daily.LazyDayPenalty),
	}
}

// restoreOffline hands back one heart per RestoreHoursPerHeart since the
// player last slept, never past max stamina.
func (s *State) restoreOffline() float64 {
	p := s.player
	hours := s.clk.Now().Sub(p.LastSleepTime).Hours()
	restore := min(math.Floor(hours/s.balance.RestoreHoursPerHeart), float64(p.MaxStamina)-p.Stamina)
	if restore <= 0 {
		return 0
	}
	p.RestoreStamina(restore)
	return restore
}

// Save encodes the game and hands it to store. In-memory state is never
// touched, whatever the outcome.
func (s *State) Save(ctx context.Context, store SaveStore) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := store.WriteSave(ctx, data); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	s.log.Debug("game saved", "bytes", len(data))
	return nil
}

// Load restores a saved game, applying offline stamina restore. Any problem
// with the save yields a fresh game and loaded=false. err is only set when a
// fresh game cannot be built from opts either.
func Load(ctx context.Context, store SaveStore, opts Options) (state *State, loaded bool, err error) {
	data, readErr := store.ReadSave(ctx)
	if readErr == nil {
		state, readErr = Decode(data, opts)
	}
	if readErr == nil {
		if restored := state.restoreOffline(); restored > 0 {
			state.log.Debug("offline stamina restored", "hearts", restored)
		}
		state.log.Info("game loaded", "day", state.calendar.Day())
		return state, true, nil
	}

	state, err = New(opts)
	if err != nil {
		return nil, false, err
	}
	if errors.Is(readErr, fs.ErrNotExist) {
		state.log.Info("no save found, starting a new game")
	} else {
		state.log.Warn("save could not be loaded, starting a new game", "error", readErr)
	}
	return state, false, nil
}
