package tabletop

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	s := g.scene
	if s.cfg.QuitAfterScript && s.script != nil && s.script.Done() && len(s.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return s.Update()
}

func (g *game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

func (g *game) Layout(_, _ int) (int, int) {
	return g.scene.cfg.ScreenWidth, g.scene.cfg.ScreenHeight
}

// Run opens a window sized from the scene's Config and runs the scene until
// the window is closed. The scene is closed on return.
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
func Run(scene *Scene) error {
	cfg := scene.cfg
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer scene.Close()
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
