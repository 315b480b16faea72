package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/appengine-ltd/terminal-farmer/internal/game"
)

const (
	gridColumns = 3
	cellWidth   = 28
	barWidth    = 10
)

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	heartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	readyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle().Width(cellWidth)
)

// cropColors maps catalog color names to terminal colors.
var cropColors = map[string]lipgloss.Color{
	"yellow":        lipgloss.Color("3"),
	"bright_yellow": lipgloss.Color("11"),
	"orange":        lipgloss.Color("208"),
	"purple":        lipgloss.Color("5"),
	"blue":          lipgloss.Color("4"),
	"white":         lipgloss.Color("15"),
	"green":         lipgloss.Color("2"),
	"red":           lipgloss.Color("1"),
}

func cropStyle(color string) lipgloss.Style {
	if c, ok := cropColors[color]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return green
}

func (m farmModel) View() string {
	if m.quitting {
		return green.Render("See you tomorrow, farmer.") + "\n"
	}

	rule := border.Render(strings.Repeat("-", gridColumns*cellWidth))
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n" + rule + "\n")
	b.WriteString(m.farmGrid())
	b.WriteString("\n" + rule + "\n")
	b.WriteString(m.seeds() + "\n")
	if flags := m.flags(); flags != "" {
		b.WriteString(flags + "\n")
	}
	for _, msg := range m.messages {
		b.WriteString(green.Render(msg) + "\n")
	}
	b.WriteString("\n" + dimGreen.Render("1 plant  2 harvest  3 next day  4 sleep  5 nap  6 fish  7 sell  8 shop  9 farmdex  esc save+quit") + "\n")
	b.WriteString(brightGreen.Render("> "+m.input) + brightGreen.Render("_") + "\n")
	return b.String()
}

func (m farmModel) header() string {
	s := m.state
	dc := s.DayCycle()
	title := brightGreen.Render("TERMINAL FARMER")
	if m.cfg.Version != "" {
		title += dimGreen.Render("  v" + m.cfg.Version)
	}
	when := fmt.Sprintf("%s! Day %d, %s %s, %s. %s left.",
		dc.Part().Greeting(),
		s.Calendar().Day(),
		s.Calendar().Season(),
		dc.Part(),
		s.Weather().Current(),
		formatRemaining(dc.Remaining()),
	)
	p := s.Player()
	purse := fmt.Sprintf("Money $%s   Hearts %s %.1f/%d", humanize.Comma(int64(p.Money)), hearts(p.Stamina, p.MaxStamina), p.Stamina, p.MaxStamina)
	return title + "\n" + green.Render(when) + "\n" + green.Render(purse)
}

// hearts draws one symbol per max stamina point, with a half heart for .5.
func hearts(stamina float64, maxStamina int) string {
	full := int(math.Floor(stamina))
	half := stamina-float64(full) >= 0.5
	var b strings.Builder
	for i := 0; i < maxStamina; i++ {
		switch {
		case i < full:
			b.WriteString("♥")
		case i == full && half:
			b.WriteString("❥")
		default:
			b.WriteString("♡")
		}
	}
	return heartStyle.Render(b.String())
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

func (m farmModel) farmGrid() string {
	farm := m.state.Farm()
	rows := make([]string, 0, (farm.Size()+gridColumns-1)/gridColumns)
	var row []string
	for i := 0; i < farm.Size(); i++ {
		row = append(row, cellStyle.Render(plotCell(farm, i)))
		if len(row) == gridColumns || i == farm.Size()-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func plotCell(farm *game.Farm, i int) string {
	label := dimGreen.Render(fmt.Sprintf("[%d]", i+1))
	crop, progress := farm.Status(i)
	if crop == nil {
		return label + " " + dimGreen.Render("empty")
	}
	name := cropStyle(crop.Color).Render(displayCrop(crop.Name))
	if progress >= 1 {
		return label + " " + name + " " + readyStyle.Render("READY")
	}
	return label + " " + name + " " + progressBar(progress)
}

func progressBar(progress float64) string {
	filled := int(progress * barWidth)
	return green.Render(strings.Repeat("█", filled)) + dimGreen.Render(strings.Repeat("░", barWidth-filled))
}

func displayCrop(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func (m farmModel) seeds() string {
	unlocked := m.state.Crops().Unlocked()
	out := make([]string, 0, len(unlocked))
	for _, c := range unlocked {
		label := displayCrop(c.Name) + " $" + humanize.Comma(int64(c.Cost))
		if c.Rare {
			label += " " + flagStyle.Render("[Rare]")
		}
		out = append(out, cropStyle(c.Color).Render(label))
	}
	return dimGreen.Render("Seeds: ") + strings.Join(out, "  ")
}

func (m farmModel) flags() string {
	var out []string
	if m.state.MarketInflated() {
		out = append(out, "[prices doubled]")
	}
	if m.state.FishingBonusActive() {
		out = append(out, "[fish biting]")
	}
	if m.state.LazyDayActive() {
		out = append(out, "[lazy day]")
	}
	if m.state.DayCycle().IsNight() && !m.state.Player().HasLantern {
		out = append(out, "[too dark to work]")
	}
	if len(out) == 0 {
		return ""
	}
	return flagStyle.Render(strings.Join(out, " "))
}
