package tabletop

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyBindings maps controller commands to keys.
type KeyBindings struct {
	MoveMode    ebiten.Key
	Zoom        ebiten.Key
	ConnectMode ebiten.Key
	Delete      []ebiten.Key
	Copy        ebiten.Key
	Shuffle     ebiten.Key
	Deal        ebiten.Key
	Flip        ebiten.Key
	Rotate      ebiten.Key
	Edit        ebiten.Key
	Cancel      ebiten.Key
	Screenshot  ebiten.Key
}

// DefaultKeyBindings returns the stock key map.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		MoveMode:    ebiten.KeyM,
		Zoom:        ebiten.KeyZ,
		ConnectMode: ebiten.KeyC,
		Delete:      []ebiten.Key{ebiten.KeyDelete, ebiten.KeyBackspace},
		Copy:        ebiten.KeyV,
		Shuffle:     ebiten.KeyS,
		Deal:        ebiten.KeyD,
		Flip:        ebiten.KeyF,
		Rotate:      ebiten.KeyR,
		Edit:        ebiten.KeyEnter,
		Cancel:      ebiten.KeyEscape,
		Screenshot:  ebiten.KeyF12,
	}
}

// Config holds the scene's tunables.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	Title        string

	ZoomScale              float64 // scale of a zoomed card
	CopyOffset             Vec2    // where a copy lands relative to its original
	DealDelay              float64 // seconds between smooth-deal hand-offs
	ConnectionHitThreshold float64 // pixels from a connection line that count as a hit
	MoveDuration           float64 // zoom in/out duration
	ScrollRotation         float64 // degrees per wheel notch
	KeyRotation            float64 // degrees per rotate key press

	ScreenshotDir   string
	QuitAfterScript bool // stop the game loop once an attached script is done
	Keys            KeyBindings
	Logger          *slog.Logger
	Debug           bool
}

// DefaultConfig returns a Config with the stock settings.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:            1280,
		ScreenHeight:           800,
		Title:                  "Tabletop",
		ZoomScale:              3,
		CopyOffset:             Vec2{20, 20},
		DealDelay:              0.15,
		ConnectionHitThreshold: 8,
		MoveDuration:           0.3,
		ScrollRotation:         15,
		KeyRotation:            90,
		ScreenshotDir:          "screenshots",
		Keys:                   DefaultKeyBindings(),
	}
}
