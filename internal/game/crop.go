package game

import (
	"fmt"
	"time"
)

// Crop is an immutable catalog entry. Name is its identity.
type Crop struct {
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Cost        int     `json:"cost" yaml:"cost" validate:"gte=0"`
	GrowthTime  int     `json:"growthTime" yaml:"growth_time" validate:"gt=0"`
	Value       int     `json:"value" yaml:"value" validate:"gte=0"`
	Color       string  `json:"color" yaml:"color"`
	StaminaCost float64 `json:"staminaCost" yaml:"stamina_cost" validate:"gte=0"`
	Rare        bool    `json:"rare,omitempty" yaml:"rare"`
}

// GrowthDuration is the crop's grow time as a duration.
func (c Crop) GrowthDuration() time.Duration {
	return time.Duration(c.GrowthTime) * time.Second
}

// MenuLabel is how the crop is listed to the player, with rare crops tagged.
func (c Crop) MenuLabel() string {
	if c.Rare {
		return c.Name + " [Rare]"
	}
	return c.Name
}

// CropSystem holds the static catalog and the ordered list of unlocked crop names.
type CropSystem struct {
	catalog  map[string]Crop
	order    []string
	unlocked []string
}

func NewCropSystem(catalog []Crop, starting []string) *CropSystem {
	cs := &CropSystem{catalog: make(map[string]Crop, len(catalog))}
	for _, crop := range catalog {
		if _, dup := cs.catalog[crop.Name]; dup {
			continue
		}
		cs.catalog[crop.Name] = crop
		cs.order = append(cs.order, crop.Name)
	}
	for _, name := range starting {
		cs.Unlock(name)
	}
	return cs
}

func (cs *CropSystem) Crop(name string) (Crop, bool) {
	crop, ok := cs.catalog[name]
	return crop, ok
}

// Catalog lists every known crop in catalog order.
func (cs *CropSystem) Catalog() []Crop {
	out := make([]Crop, 0, len(cs.order))
	for _, name := range cs.order {
		out = append(out, cs.catalog[name])
	}
	return out
}

func (cs *CropSystem) IsUnlocked(name string) bool {
	for _, n := range cs.unlocked {
		if n == name {
			return true
		}
	}
	return false
}

// Unlock appends name to the unlocked list. It returns false when the crop is
// unknown or already unlocked, so repeated unlocks never duplicate entries.
func (cs *CropSystem) Unlock(name string) (string, bool) {
	if _, ok := cs.catalog[name]; !ok || cs.IsUnlocked(name) {
		return "", false
	}
	cs.unlocked = append(cs.unlocked, name)
	return fmt.Sprintf("NEW CROP UNLOCKED: %s!", displayName(name)), true
}

// UnlockedNames returns the unlocked crop names in unlock order.
func (cs *CropSystem) UnlockedNames() []string {
	return append([]string(nil), cs.unlocked...)
}

// Unlocked returns the unlocked crops in unlock order.
func (cs *CropSystem) Unlocked() []Crop {
	out := make([]Crop, 0, len(cs.unlocked))
	for _, name := range cs.unlocked {
		out = append(out, cs.catalog[name])
	}
	return out
}

// restoreUnlocked replaces the unlocked list from a save, dropping names the
// catalog does not know. It returns the dropped names.
func (cs *CropSystem) restoreUnlocked(names []string) []string {
	cs.unlocked = cs.unlocked[:0]
	var dropped []string
	for _, name := range names {
		if _, ok := cs.Unlock(name); !ok && !cs.IsUnlocked(name) {
			dropped = append(dropped, name)
		}
	}
	return dropped
}
