package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/terminal-farmer/internal/game"
	"github.com/appengine-ltd/terminal-farmer/internal/parser"
)

const maxMessages = 6

// Answers to the new game question. The parser never produces these verbs.
const (
	answerYes = "yes"
	answerNo  = "no"
)

var confirmReset = parser.ClarifyQuestion{
	Prompt:  "Start a new game? This farm will be lost.",
	Options: []parser.Intent{{Verb: answerYes}, {Verb: answerNo}},
}

var errSavingDisabled = errors.New("saving is disabled")

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	State     *game.State
	// Store receives saves. Saving is disabled when nil.
	Store  game.SaveStore
	Logger *slog.Logger
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	m := newFarmModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type clockTickMsg struct {
	at time.Time
}

// menuShortcuts maps the number keys to commands while the input line is empty.
var menuShortcuts = map[string]string{
	"1": "plant",
	"2": "harvest",
	"3": "next",
	"4": "sleep",
	"5": "nap",
	"6": "fish",
	"7": "sell",
	"8": "shop",
	"9": "farmdex",
}

type farmModel struct {
	cfg    AppConfig
	state  *game.State
	parser *parser.Parser
	log    *slog.Logger

	input      string
	messages   []string
	pending    *parser.ClarifyQuestion
	confirming bool
	lastEntity string
	quitting   bool
}

func newFarmModel(cfg AppConfig) farmModel {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := farmModel{
		cfg:    cfg,
		state:  cfg.State,
		parser: parser.New(),
		log:    log,
	}
	m.push(fmt.Sprintf("%s, farmer! Type help for commands.", m.state.DayCycle().Part().Greeting()))
	return m
}

func (m farmModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{at: t}
	})
}

func (m farmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		if text, changed := m.state.Tick(); changed {
			m.push(text)
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m farmModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "" {
			return m, nil
		}
		return m.submit(line)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		key := string(msg.Runes)
		if m.input == "" {
			if m.pending != nil && len(m.pending.Options) > 0 {
				if idx, ok := optionIndex(key, len(m.pending.Options)); ok {
					choice := m.pending.Options[idx]
					m.pending = nil
					return m.run(choice)
				}
			}
			if cmd, ok := menuShortcuts[key]; ok {
				if cmd == "plant" {
					m.input = "plant "
					return m, nil
				}
				return m.submit(cmd)
			}
		}
		m.input += key
	}
	return m, nil
}

func optionIndex(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	return idx, idx < n
}

func (m farmModel) parseContext() parser.ParseContext {
	return parser.ParseContext{
		Crops:      m.state.Crops().UnlockedNames(),
		Shop:       m.state.ShopKeys(),
		LastEntity: m.lastEntity,
	}
}

func (m farmModel) submit(line string) (tea.Model, tea.Cmd) {
	m.pending = nil
	if m.confirming {
		// Anything but a yes keeps the farm.
		switch strings.ToLower(line) {
		case "y", answerYes:
			return m.run(parser.Intent{Verb: answerYes})
		default:
			return m.run(parser.Intent{Verb: answerNo})
		}
	}
	intent := m.parser.Parse(m.parseContext(), line)
	if intent.Clarify != nil {
		return m.ask(intent.Clarify), nil
	}
	return m.run(intent)
}

func (m farmModel) ask(q *parser.ClarifyQuestion) farmModel {
	if len(q.Options) == 0 {
		m.push(q.Prompt)
		return m
	}
	opts := make([]string, 0, len(q.Options))
	for i, opt := range q.Options {
		opts = append(opts, fmt.Sprintf("%d) %s", i+1, parser.IntentToCommandString(opt)))
	}
	m.push(q.Prompt + " " + strings.Join(opts, "  "))
	m.pending = q
	return m
}

func (m farmModel) run(intent parser.Intent) (tea.Model, tea.Cmd) {
	if m.confirming {
		m.confirming = false
		if intent.Verb == answerYes {
			m.state.Reset()
			m.lastEntity = ""
			m.push("A fresh farm awaits. Good luck!")
		} else {
			m.push("Reset cancelled. Your farm is safe.")
		}
		return m, nil
	}

	switch intent.Verb {
	case "quit":
		return m.quit()
	case "save":
		switch err := m.save(); {
		case errors.Is(err, errSavingDisabled):
			m.push("Saving is disabled.")
		case err != nil:
			m.push(fmt.Sprintf("Save failed: %v", err))
		default:
			m.push("Game saved.")
		}
		return m, nil
	case "new game":
		q := confirmReset
		m = m.ask(&q)
		m.confirming = true
		return m, nil
	}

	if len(intent.Args) > 0 {
		m.lastEntity = intent.Args[0]
	}
	command := parser.IntentToCommandString(intent)
	res := m.state.ExecuteCommand(command)
	if !res.Handled {
		m.push("I don't know how to do that. Type help for commands.")
		return m, nil
	}
	if res.Message != "" {
		m.push(res.Message)
	}
	m.log.Debug("command", "command", command, "ok", res.OK)
	return m, nil
}

func (m farmModel) quit() (tea.Model, tea.Cmd) {
	if err := m.save(); err != nil && !errors.Is(err, errSavingDisabled) {
		m.log.Error("autosave failed", "error", err)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m farmModel) save() error {
	if m.cfg.Store == nil {
		return errSavingDisabled
	}
	return m.state.Save(context.Background(), m.cfg.Store)
}

func (m *farmModel) push(text string) {
	m.messages = append(m.messages, text)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}
