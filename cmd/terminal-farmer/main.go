package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/appengine-ltd/terminal-farmer/internal/config"
	"github.com/appengine-ltd/terminal-farmer/internal/game"
	"github.com/appengine-ltd/terminal-farmer/internal/logger"
	"github.com/appengine-ltd/terminal-farmer/internal/store"
	"github.com/appengine-ltd/terminal-farmer/internal/ui"
	"github.com/appengine-ltd/terminal-farmer/internal/update"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showVersion bool
		checkUpdate bool
		newGame     bool
		listSlots   bool
		deleteSave  bool
		savePath    string
		saveSlot    string
		balancePath string
		backend     string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&checkUpdate, "check-update", false, "check GitHub for a newer release and exit")
	flag.BoolVar(&newGame, "new", false, "start a new game, ignoring any existing save")
	flag.StringVar(&savePath, "save", "", "save file path (overrides FARMER_SAVE_PATH)")
	flag.StringVar(&saveSlot, "slot", "", "save slot name (overrides FARMER_SAVE_SLOT)")
	flag.BoolVar(&listSlots, "slots", false, "list save slots and exit")
	flag.BoolVar(&deleteSave, "delete-save", false, "delete the save in the selected slot and exit")
	flag.StringVar(&balancePath, "balance", "", "YAML balance file (overrides FARMER_BALANCE_FILE)")
	flag.StringVar(&backend, "backend", "", "save backend: json or sqlite (overrides FARMER_SAVE_BACKEND)")
	flag.Int64Var(&seed, "seed", 0, "random seed, 0 for time based (overrides FARMER_SEED)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Terminal Farmer %s (%s) %s\n", version, commit, date)
		return nil
	}
	if checkUpdate {
		msg, err := update.NewChecker().Check(context.Background(), version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		fmt.Println(msg)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg, savePath, saveSlot, balancePath, backend, seed)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logger.Open(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closeLog()
	log = log.With("version", version)

	balance, err := game.LoadBalance(cfg.BalanceFile)
	if err != nil {
		return err
	}

	saves, err := store.Open(cfg.SaveBackend, cfg.SavePath, cfg.SaveSlot)
	if err != nil {
		return err
	}
	defer saves.Close()

	switch {
	case listSlots:
		return printSlots(context.Background(), os.Stdout, saves, time.Now())
	case deleteSave:
		if err := saves.DeleteSave(context.Background()); err != nil {
			return err
		}
		log.Info("save deleted", "slot", cfg.SaveSlot)
		fmt.Printf("Deleted save slot %q.\n", cfg.SaveSlot)
		return nil
	}

	state, err := loadGame(context.Background(), saves, newGame, game.Options{
		Seed:    cfg.Seed,
		Balance: &balance,
		Logger:  log,
	}, log)
	if err != nil {
		return err
	}

	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		State:     state,
		Store:     saves,
		Logger:    log,
	})
	return app.Run()
}

func applyFlags(cfg *config.Config, savePath, saveSlot, balancePath, backend string, seed int64) {
	if backend != "" {
		cfg.SetBackend(backend)
	}
	if savePath != "" {
		cfg.SavePath = savePath
	}
	if saveSlot != "" {
		cfg.SaveSlot = saveSlot
	}
	if balancePath != "" {
		cfg.BalanceFile = balancePath
	}
	if seed != 0 {
		cfg.Seed = seed
	}
}

func loadGame(ctx context.Context, saves game.SaveStore, fresh bool, opts game.Options, log *slog.Logger) (*game.State, error) {
	if fresh {
		log.Info("starting a new game on request")
		return game.New(opts)
	}
	state, _, err := game.Load(ctx, saves, opts)
	return state, err
}

func printSlots(ctx context.Context, w io.Writer, saves store.Store, now time.Time) error {
	slots, err := saves.Slots(ctx)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, "No saves yet.")
		return err
	}
	for _, s := range slots {
		if _, err := fmt.Fprintf(w, "%-16s %-10s saved %s\n", s.Slot, humanize.Bytes(uint64(s.Size)), humanize.RelTime(s.SavedAt, now, "ago", "from now")); err != nil {
			return err
		}
	}
	return nil
}
