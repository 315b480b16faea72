package game

import "time"

// Plot is one unit of farmland. PlantedAt is set iff Crop is set.
type Plot struct {
	Crop      *Crop
	PlantedAt time.Time
}

func (p Plot) IsEmpty() bool {
	return p.Crop == nil
}

// Progress is the clamped fraction of the crop's grow time elapsed at now.
func (p Plot) Progress(now time.Time) float64 {
	if p.IsEmpty() || p.PlantedAt.IsZero() {
		return 0
	}
	if p.Crop.GrowthTime <= 0 {
		return 1
	}
	elapsed := now.Sub(p.PlantedAt).Seconds()
	return clampFloat(elapsed/float64(p.Crop.GrowthTime), 0, 1)
}

func (p Plot) IsReady(now time.Time) bool {
	return p.Progress(now) >= 1.0
}

func (p *Plot) plant(crop Crop, now time.Time) {
	c := crop
	p.Crop = &c
	p.PlantedAt = now
}

// Harvest returns the crop value and empties the plot when it is ready.
// An empty or unready plot yields 0 and is left untouched.
func (p *Plot) Harvest(now time.Time) int {
	if p.IsEmpty() || !p.IsReady(now) {
		return 0
	}
	value := p.Crop.Value
	p.clear()
	return value
}

func (p *Plot) clear() {
	p.Crop = nil
	p.PlantedAt = time.Time{}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
