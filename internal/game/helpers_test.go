package game

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/appengine-ltd/terminal-farmer/internal/clock"
)

var testStart = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// newTestState builds a game with world events and weather changes switched
// off so each test controls every roll it cares about.
func newTestState(t *testing.T, tune ...func(*Balance)) (*State, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(testStart)
	b := DefaultBalance()
	b.EventChance = 0
	b.WeatherChangeChance = 0
	for _, fn := range tune {
		fn(&b)
	}
	s, err := New(Options{Clock: clk, Seed: 42, Balance: &b})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s, clk
}

type memStore struct {
	data     []byte
	readErr  error
	writeErr error
}

func (m *memStore) ReadSave(context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, fs.ErrNotExist
	}
	return m.data, nil
}

func (m *memStore) WriteSave(_ context.Context, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}
