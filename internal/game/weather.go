package game

import "math/rand/v2"

type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherRainy  Weather = "rainy"
	WeatherCloudy Weather = "cloudy"
	WeatherWindy  Weather = "windy"
)

var weatherTypes = []Weather{WeatherSunny, WeatherRainy, WeatherCloudy, WeatherWindy}

func (w Weather) Valid() bool {
	for _, t := range weatherTypes {
		if t == w {
			return true
		}
	}
	return false
}

// WeatherSystem is a cosmetic label re-rolled once per day.
type WeatherSystem struct {
	current      Weather
	changeChance float64
	rng          *rand.Rand
}

func NewWeatherSystem(changeChance float64, rng *rand.Rand) *WeatherSystem {
	return &WeatherSystem{current: WeatherSunny, changeChance: changeChance, rng: rng}
}

func (w *WeatherSystem) Current() Weather {
	return w.current
}

// Update re-rolls the weather with changeChance. A re-roll may land on the
// same weather.
func (w *WeatherSystem) Update() bool {
	if w.rng.Float64() >= w.changeChance {
		return false
	}
	w.current = weatherTypes[w.rng.IntN(len(weatherTypes))]
	return true
}

func (w *WeatherSystem) restore(current Weather) {
	if !current.Valid() {
		current = WeatherSunny
	}
	w.current = current
}
