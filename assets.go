package tabletop

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// TextureLoader resolves an asset path to an image.
type TextureLoader interface {
	Load(path string) (*ebiten.Image, error)
}

// FileLoader loads images from disk relative to Root and caches them by
// path, so every card sharing a back shares one image.
type FileLoader struct {
	Root  string
	cache map[string]*ebiten.Image
}

// NewFileLoader returns a loader rooted at root. An empty root resolves paths
// against the working directory.
func NewFileLoader(root string) *FileLoader {
	return &FileLoader{Root: root, cache: make(map[string]*ebiten.Image)}
}

// Load implements TextureLoader. Errors wrap ErrMissingAsset.
func (l *FileLoader) Load(path string) (*ebiten.Image, error) {
	if img, ok := l.cache[path]; ok {
		return img, nil
	}
	full := path
	if l.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.Root, path)
	}
	img, _, err := ebitenutil.NewImageFromFile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingAsset, full, err)
	}
	if l.cache == nil {
		l.cache = make(map[string]*ebiten.Image)
	}
	l.cache[path] = img
	return img, nil
}

// isImageFile reports whether name has a supported image extension.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// ListImages returns the image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAsset, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// labelFromPath turns "assets/cards/ace_spades.png" into "ace_spades".
func labelFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// --- Scene loaders ---

// loadImage resolves path with the scene's loader. An empty path means "no
// image" and is not an error.
func (s *Scene) loadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, nil
	}
	if s.loader == nil {
		s.loader = NewFileLoader("")
	}
	return s.loader.Load(path)
}

// loadImages resolves every path, logging the first failure.
func (s *Scene) loadImages(kind Kind, paths ...string) ([]*ebiten.Image, bool) {
	imgs := make([]*ebiten.Image, len(paths))
	for i, p := range paths {
		img, err := s.loadImage(p)
		if err != nil {
			s.log.Warn("skipping object", "kind", kind, "path", p, "err", err)
			return nil, false
		}
		imgs[i] = img
	}
	return imgs, true
}

// LoadCard creates a face-down card at pos and adds it to the scene. It
// returns nil, after logging, if either image fails to load.
func (s *Scene) LoadCard(front, back string, pos Vec2) *Card {
	imgs, ok := s.loadImages(KindCard, front, back)
	if !ok {
		return nil
	}
	c := NewCard(imgs[0], imgs[1])
	c.Label = labelFromPath(front)
	c.SetPosition(pos)
	s.Add(c)
	return c
}

// LoadCardSet creates one card per image in dir, all sharing back, stacked at
// pos. Files that fail to load are skipped.
func (s *Scene) LoadCardSet(dir, back string, pos Vec2) []*Card {
	paths, err := ListImages(dir)
	if err != nil {
		s.log.Warn("card set", "dir", dir, "err", err)
		return nil
	}
	var cards []*Card
	for _, p := range paths {
		if filepath.Clean(p) == filepath.Clean(back) {
			continue
		}
		if c := s.LoadCard(p, back, pos); c != nil {
			cards = append(cards, c)
		}
	}
	s.log.Info("card set loaded", "dir", dir, "cards", len(cards))
	return cards
}

// LoadRack creates a rack at pos. img may be empty for a plain rack.
func (s *Scene) LoadRack(img string, pos Vec2) *Rack {
	imgs, ok := s.loadImages(KindRack, img)
	if !ok {
		return nil
	}
	r := NewRack(imgs[0])
	r.SetPosition(pos)
	s.Add(r)
	return r
}

// LoadTable creates a table at pos. img may be empty for a plain table.
func (s *Scene) LoadTable(img string, pos Vec2) *Table {
	imgs, ok := s.loadImages(KindTable, img)
	if !ok {
		return nil
	}
	t := NewTable(imgs[0])
	t.SetPosition(pos)
	s.Add(t)
	return t
}

// LoadDeck creates a deck at pos. img may be empty for a plain deck.
func (s *Scene) LoadDeck(img string, pos Vec2) *Deck {
	imgs, ok := s.loadImages(KindDeck, img)
	if !ok {
		return nil
	}
	d := NewDeck()
	d.SetImage(imgs[0])
	d.SetPosition(pos)
	s.Add(d)
	return d
}

// LoadCounter creates a counter at pos. img may be empty.
func (s *Scene) LoadCounter(img string, pos Vec2) *Counter {
	imgs, ok := s.loadImages(KindCounter, img)
	if !ok {
		return nil
	}
	c := NewCounter(imgs[0])
	c.SetPosition(pos)
	s.Add(c)
	return c
}

// LoadToken creates a token at pos. img may be empty.
func (s *Scene) LoadToken(img string, pos Vec2) *Token {
	imgs, ok := s.loadImages(KindToken, img)
	if !ok {
		return nil
	}
	t := NewToken(imgs[0])
	t.SetPosition(pos)
	s.Add(t)
	return t
}

// AddText creates a text object at pos reading str.
func (s *Scene) AddText(str string, pos Vec2) *Text {
	t := NewText()
	t.SetText(str)
	t.SetPosition(pos)
	s.Add(t)
	return t
}
