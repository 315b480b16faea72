package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/appengine-ltd/terminal-farmer/internal/clock"
)

// Farm is a fixed-size ordered sequence of plots. It only ever grows, and
// plot indices stay stable across growth.
type Farm struct {
	plots []Plot
	clk   clock.Clock
	rng   *rand.Rand
}

func NewFarm(size int, clk clock.Clock, rng *rand.Rand) *Farm {
	if size < 0 {
		size = 0
	}
	return &Farm{plots: make([]Plot, size), clk: clk, rng: rng}
}

func (f *Farm) Size() int {
	return len(f.plots)
}

// Plots returns a copy of every plot.
func (f *Farm) Plots() []Plot {
	out := make([]Plot, len(f.plots))
	copy(out, f.plots)
	return out
}

func (f *Farm) Plot(index int) (Plot, bool) {
	if index < 0 || index >= len(f.plots) {
		return Plot{}, false
	}
	return f.plots[index], true
}

// Plant puts crop into the plot at index. Out-of-range indices and occupied
// plots are refused without mutation.
func (f *Farm) Plant(index int, crop Crop) error {
	if index < 0 || index >= len(f.plots) {
		return fmt.Errorf("%w: %d", ErrInvalidPlot, index+1)
	}
	if !f.plots[index].IsEmpty() {
		return fmt.Errorf("%w: %d", ErrPlotOccupied, index+1)
	}
	f.plots[index].plant(crop, f.clk.Now())
	return nil
}

// HarvestReady empties every ready plot and returns the summed value.
func (f *Farm) HarvestReady() int {
	now := f.clk.Now()
	total := 0
	for i := range f.plots {
		total += f.plots[i].Harvest(now)
	}
	return total
}

// ReadyCount counts plots that would be harvested right now.
func (f *Farm) ReadyCount() int {
	now := f.clk.Now()
	n := 0
	for _, p := range f.plots {
		if !p.IsEmpty() && p.IsReady(now) {
			n++
		}
	}
	return n
}

func (f *Farm) OccupiedCount() int {
	n := 0
	for _, p := range f.plots {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}

// Status reports the crop and growth progress of one plot, or (nil, 0) for an
// empty plot or a bad index.
func (f *Farm) Status(index int) (*Crop, float64) {
	p, ok := f.Plot(index)
	if !ok || p.IsEmpty() {
		return nil, 0
	}
	c := *p.Crop
	return &c, p.Progress(f.clk.Now())
}

// DamageRandomCrop clears one uniformly chosen occupied plot.
func (f *Farm) DamageRandomCrop() (string, bool) {
	occupied := make([]int, 0, len(f.plots))
	for i, p := range f.plots {
		if !p.IsEmpty() {
			occupied = append(occupied, i)
		}
	}
	if len(occupied) == 0 {
		return "", false
	}
	f.plots[occupied[f.rng.IntN(len(occupied))]].clear()
	return "A storm came! Some crops were damaged.", true
}

// ApplyGrowthBonus moves every planting time earlier by percent of that crop's
// grow time. Progress stays clamped, so large bonuses simply make crops ready.
func (f *Farm) ApplyGrowthBonus(percent float64) string {
	for i := range f.plots {
		p := &f.plots[i]
		if p.IsEmpty() || p.PlantedAt.IsZero() {
			continue
		}
		shift := time.Duration(float64(p.Crop.GrowthDuration()) * percent / 100)
		p.PlantedAt = p.PlantedAt.Add(-shift)
	}
	return "Sunny day bonus! Crops grow faster today."
}

// Expand grows the farm to size plots. Shrinking is refused.
func (f *Farm) Expand(size int) bool {
	if size <= len(f.plots) {
		return false
	}
	f.plots = append(f.plots, make([]Plot, size-len(f.plots))...)
	return true
}

func (f *Farm) restore(plots []Plot) {
	f.plots = plots
}
