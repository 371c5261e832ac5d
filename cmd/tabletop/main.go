// Command tabletop opens a virtual card table.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/tabletop"
)

var (
	flagWidth       int
	flagHeight      int
	flagTitle       string
	flagAssets      string
	flagCards       string
	flagBack        string
	flagLayout      string
	flagScript      string
	flagScreenshots string
	flagLogLevel    string
	flagDebug       bool
)

var rootCmd = &cobra.Command{
	Use:   "tabletop",
	Short: "A virtual tabletop for card games",
	Long: `Open a table with a deck, a discard table, two racks and a counter.

Controls:
  Left drag       - Move cards, or select with a rectangle
  Right click     - Flip a card (or every selected card)
  Wheel           - Rotate the selection
  M               - Move mode (drag decks, racks, tables, counters)
  Z               - Zoom the selected card
  C               - Connect mode (deck -> holder, table -> discard deck)
  S / D           - Shuffle / deal the selected deck
  F / R           - Flip / rotate the selection
  V               - Copy the selection
  Delete          - Delete the selection
  Enter           - Edit the selected text
  Escape          - Cancel
  F12             - Screenshot`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&flagWidth, "width", envInt("TABLETOP_WIDTH", 1280), "window width")
	f.IntVar(&flagHeight, "height", envInt("TABLETOP_HEIGHT", 800), "window height")
	f.StringVar(&flagTitle, "title", envOr("TABLETOP_TITLE", "Tabletop"), "window title")
	f.StringVar(&flagAssets, "assets", envOr("TABLETOP_ASSETS", ""), "root directory for image paths")
	f.StringVar(&flagCards, "cards", envOr("TABLETOP_CARDS", ""), "directory of card face images to put in the deck")
	f.StringVar(&flagBack, "back", envOr("TABLETOP_BACK", ""), "card back image")
	f.StringVar(&flagLayout, "layout", envOr("TABLETOP_LAYOUT", ""), "tab-separated initial card layout")
	f.StringVar(&flagScript, "script", envOr("TABLETOP_SCRIPT", ""), "JSON input script to play, then exit")
	f.StringVar(&flagScreenshots, "screenshots", envOr("TABLETOP_SCREENSHOTS", "screenshots"), "screenshot directory")
	f.StringVar(&flagLogLevel, "log-level", envOr("TABLETOP_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	f.BoolVar(&flagDebug, "debug", envBool("TABLETOP_DEBUG", false), "debug checks and overlay")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(envOr(key, "")); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(envOr(key, "")); err == nil {
		return b
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func run(cmd *cobra.Command, _ []string) error {
	level, err := parseLogLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := tabletop.DefaultConfig()
	cfg.ScreenWidth = flagWidth
	cfg.ScreenHeight = flagHeight
	cfg.Title = flagTitle
	cfg.ScreenshotDir = flagScreenshots
	cfg.Logger = logger
	cfg.Debug = flagDebug

	var script *tabletop.Script
	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if script, err = tabletop.LoadScript(data); err != nil {
			return err
		}
		cfg.QuitAfterScript = true
	}

	scene := tabletop.NewScene(cfg)
	scene.SetLoader(tabletop.NewFileLoader(flagAssets))
	if err := setup(scene, cfg); err != nil {
		return err
	}
	if script != nil {
		scene.SetScript(script)
	}
	logger.Info("starting", "width", cfg.ScreenWidth, "height", cfg.ScreenHeight, "cards", len(scene.Cards()))
	return tabletop.Run(scene)
}

// setup lays out the default table: a deck with its discard table in the
// middle, a rack at the top and bottom edges and a counter on the right.
func setup(s *tabletop.Scene, cfg tabletop.Config) error {
	w, h := float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)

	deck := s.LoadDeck("", tabletop.Vec2{X: w/2 - 200, Y: h / 2})
	discard := s.LoadDeck("", tabletop.Vec2{X: w/2 + 200, Y: h / 2})
	table := s.LoadTable("", tabletop.Vec2{X: w / 2, Y: h / 2})
	top := s.LoadRack("", tabletop.Vec2{X: w / 2, Y: tabletop.RackSize.Y/2 + 10})
	bottom := s.LoadRack("", tabletop.Vec2{X: w / 2, Y: h - tabletop.RackSize.Y/2 - 30})
	s.LoadCounter("", tabletop.Vec2{X: w - 120, Y: h / 2})
	s.AddText("Table", tabletop.Vec2{X: 120, Y: 40})

	table.SetDiscardDeck(discard)
	deck.ConnectHolder(bottom)
	deck.ConnectHolder(top)

	if flagLayout != "" {
		f, err := os.Open(flagLayout)
		if err != nil {
			return fmt.Errorf("open layout: %w", err)
		}
		defer f.Close()
		specs, err := tabletop.ParseLayout(f)
		if err != nil {
			return err
		}
		s.Populate(specs)
	}
	if flagCards != "" {
		cards := s.LoadCardSet(flagCards, flagBack, deck.Position())
		deck.AddCards(cards, deck.Position())
		deck.Shuffle()
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
