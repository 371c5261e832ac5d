package tabletop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var colorBackground = color.RGBA{0x1e, 0x3a, 0x28, 0xff}

// drawCommand is a single draw instruction emitted during scene traversal.
type drawCommand struct {
	node      *Node
	transform [6]float64
}

// labelFace is the face every label is drawn with. Its glyphs are 7x13.
var labelFace = text.NewGoXFace(basicfont.Face7x13)

// whitePixel is a 1x1 white image for solid fills, created on first use.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		// The centre pixel is never blended with transparent edges when
		// scaled with linear filtering.
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// traverse walks the tree depth-first in ZIndex order and emits a command for
// every visible node that paints something. A hidden node hides its subtree.
func traverse(n *Node, parent [6]float64, out []drawCommand) []drawCommand {
	if !n.Visible || n.disposed {
		return out
	}
	m := multiplyAffine(parent, computeLocalTransform(n))
	if n.Type != NodeTypeContainer {
		out = append(out, drawCommand{node: n, transform: m})
	}
	for _, c := range n.SortedChildren() {
		out = traverse(c, m, out)
	}
	return out
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the table, then the connect-mode lines, the marquee and the
// status line, then captures any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	screen.Fill(colorBackground)
	s.commands = traverse(s.root, identityTransform, s.commands[:0])
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.node.Type {
		case NodeTypeSprite:
			drawSprite(screen, cmd.node, cmd.transform)
		case NodeTypeOutline:
			drawOutline(screen, cmd.node, cmd.transform)
		case NodeTypeLabel:
			drawLabel(screen, cmd.node, cmd.transform)
		}
	}
	s.drawOverlays(screen)
	s.drawStatus(screen)
	s.flushScreenshots(screen)
}

func drawSprite(dst *ebiten.Image, n *Node, m [6]float64) {
	img := n.Image
	if img == nil {
		img = solidImage()
	}
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	op.GeoM.Translate(-n.Width/2, -n.Height/2)
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleWithColor(n.Color.RGBA())
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}

func drawOutline(dst *ebiten.Image, n *Node, m [6]float64) {
	hw, hh := n.Width/2, n.Height/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var pts [4][2]float32
	for i, c := range corners {
		x, y := transformPoint(m, c[0], c[1])
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	clr := n.Color.RGBA()
	w := float32(n.StrokeWidth)
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		vector.StrokeLine(dst, a[0], a[1], b[0], b[1], w, clr, true)
	}
}

func drawLabel(dst *ebiten.Image, n *Node, m [6]float64) {
	if n.Text == "" {
		return
	}
	w, h := text.Measure(n.Text, labelFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleWithColor(n.Color.RGBA())
	text.Draw(dst, n.Text, labelFace, op)
}

func (s *Scene) drawOverlays(dst *ebiten.Image) {
	if s.mode == ModeConnect {
		for _, c := range s.Connections() {
			clr := ColorConnection
			if c.Discard {
				clr = ColorDiscard
			}
			drawLink(dst, c.From, c.To, clr.RGBA())
		}
		if from, to, ok := s.LinkLine(); ok {
			drawLink(dst, from, to, ColorHighlight.RGBA())
		}
	}
	if r, ok := s.Marquee(); ok {
		fill := ColorSelection
		fill.A = 0.2
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height)
		vector.DrawFilledRect(dst, x, y, w, h, fill.RGBA(), false)
		vector.StrokeRect(dst, x, y, w, h, 1, ColorSelection.RGBA(), false)
	}
}

func drawLink(dst *ebiten.Image, from, to Vec2, clr color.RGBA) {
	vector.StrokeLine(dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 3, clr, true)
	vector.DrawFilledCircle(dst, float32(to.X), float32(to.Y), 5, clr, true)
}

// StatusLine describes the scene state shown in the bottom-left corner.
func (s *Scene) StatusLine() string {
	move := "off"
	if s.moveMode {
		move = "on"
	}
	return fmt.Sprintf("mode: %s  move: %s  selected: %d  cards: %d",
		s.mode, move, len(s.selected), len(s.cards))
}

func (s *Scene) drawStatus(dst *ebiten.Image) {
	line := s.StatusLine()
	if s.cfg.Debug {
		line += fmt.Sprintf("  fps: %.1f  tps: %.1f  transitions: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), s.anim.Len())
	}
	ebitenutil.DebugPrintAt(dst, line, 8, dst.Bounds().Dy()-20)
}
