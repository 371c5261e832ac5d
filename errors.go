package tabletop

import "errors"

var (
	// ErrMissingAsset is returned when an image cannot be loaded.
	ErrMissingAsset = errors.New("missing asset")
	// ErrBadLayout is returned for malformed layout files.
	ErrBadLayout = errors.New("bad layout")
	// ErrBadScript is returned for malformed input scripts.
	ErrBadScript = errors.New("bad script")
)
