package game

import (
	"fmt"
	"time"
)

const eventBonusLuckyEgg = "lucky_egg"

// Player carries money, stamina and the unlock flags bought or earned during play.
//
// SpendMoney and UseStamina keep the caller-must-check contract: they do not
// guard against going negative. Game code goes through TrySpendMoney and
// TryUseStamina, which refuse instead.
type Player struct {
	Money           int
	Stamina         float64
	MaxStamina      int
	LastSleepTime   time.Time
	HasFarmdex      bool
	FossilsFound    []string
	CanSleepAnytime bool
	HasLantern      bool
	BoughtHat       bool
	StaminaUpgraded bool
	// EventBonus is recorded when the lucky egg is bought. Nothing reads it yet.
	EventBonus string
}

func NewPlayer(money, maxStamina int, now time.Time) *Player {
	return &Player{
		Money:         money,
		Stamina:       float64(maxStamina),
		MaxStamina:    maxStamina,
		LastSleepTime: now,
	}
}

func (p *Player) CanAfford(amount int) bool {
	return p.Money >= amount
}

func (p *Player) SpendMoney(amount int) {
	p.Money -= amount
}

func (p *Player) TrySpendMoney(amount int) error {
	if amount < 0 {
		return fmt.Errorf("negative spend: %d", amount)
	}
	if !p.CanAfford(amount) {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughMoney, amount, p.Money)
	}
	p.SpendMoney(amount)
	return nil
}

func (p *Player) EarnMoney(amount int) {
	p.Money += amount
}

func (p *Player) HasStamina(amount float64) bool {
	return p.Stamina >= amount
}

func (p *Player) UseStamina(amount float64) {
	p.Stamina -= amount
}

func (p *Player) TryUseStamina(amount float64) error {
	if !p.HasStamina(amount) {
		return fmt.Errorf("%w: need %.1f, have %.1f", ErrNotEnoughStamina, amount, p.Stamina)
	}
	p.UseStamina(amount)
	return nil
}

// RestoreStamina adds amount, never exceeding MaxStamina.
func (p *Player) RestoreStamina(amount float64) {
	p.Stamina = min(float64(p.MaxStamina), p.Stamina+amount)
}

func (p *Player) FullRestore() {
	p.Stamina = float64(p.MaxStamina)
}

// ReduceMaxStamina lowers MaxStamina by up to by, never below floor, and clamps
// current stamina down. It returns how much was actually removed.
func (p *Player) ReduceMaxStamina(by, floor int) int {
	target := max(floor, p.MaxStamina-by)
	removed := p.MaxStamina - target
	if removed <= 0 {
		return 0
	}
	p.MaxStamina = target
	p.clampStamina()
	return removed
}

func (p *Player) RaiseMaxStamina(by int) {
	p.MaxStamina += by
	p.clampStamina()
}

func (p *Player) clampStamina() {
	if p.Stamina > float64(p.MaxStamina) {
		p.Stamina = float64(p.MaxStamina)
	}
	if p.Stamina < 0 {
		p.Stamina = 0
	}
}

func (p *Player) hasFossil(name string) bool {
	for _, f := range p.FossilsFound {
		if f == name {
			return true
		}
	}
	return false
}
