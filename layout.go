package tabletop

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// layoutFields is the number of tab-separated columns in a layout line.
const layoutFields = 9

// CardSpec is one card of an initial layout.
type CardSpec struct {
	ID       string
	X, Y     float64
	Front    string
	Back     string
	Width    float64
	Height   float64
	Rotation float64 // degrees
	FaceUp   bool
}

// ParseLayout reads a tab-separated layout:
//
//	id  x  y  front  back  width  height  rotation  faceUp(0|1)
//
// Blank lines and lines starting with '#' are skipped. Errors wrap
// ErrBadLayout and name the offending line.
func ParseLayout(r io.Reader) ([]CardSpec, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = layoutFields
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var specs []CardSpec
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadLayout, err)
		}
		line, _ := cr.FieldPos(0)
		spec, err := parseCardSpec(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadLayout, line, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseCardSpec(rec []string) (CardSpec, error) {
	var nums [5]float64
	for i, col := range [...]int{1, 2, 5, 6, 7} {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return CardSpec{}, fmt.Errorf("column %d: %w", col+1, err)
		}
		nums[i] = v
	}
	var faceUp bool
	switch strings.TrimSpace(rec[8]) {
	case "1":
		faceUp = true
	case "0":
	default:
		return CardSpec{}, fmt.Errorf("column 9: face must be 0 or 1, got %q", rec[8])
	}
	return CardSpec{
		ID:       strings.TrimSpace(rec[0]),
		X:        nums[0],
		Y:        nums[1],
		Front:    strings.TrimSpace(rec[3]),
		Back:     strings.TrimSpace(rec[4]),
		Width:    nums[2],
		Height:   nums[3],
		Rotation: nums[4],
		FaceUp:   faceUp,
	}, nil
}

// Populate creates a card for every spec. Cards whose images fail to load are
// skipped and logged. It returns the cards created, in spec order.
func (s *Scene) Populate(specs []CardSpec) []*Card {
	cards := make([]*Card, 0, len(specs))
	for _, sp := range specs {
		c := s.LoadCard(sp.Front, sp.Back, Vec2{sp.X, sp.Y})
		if c == nil {
			continue
		}
		if sp.ID != "" {
			c.Label = sp.ID
		}
		if sp.Width > 0 && sp.Height > 0 {
			c.resize(sp.Width, sp.Height)
		}
		c.SetRotation(sp.Rotation)
		c.SetFaceUp(sp.FaceUp)
		cards = append(cards, c)
	}
	s.log.Debug("layout populated", "cards", len(cards), "specs", len(specs))
	return cards
}
