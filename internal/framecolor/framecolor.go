// Package framecolor reduces a decoded RGB24 frame to one representative
// color.
package framecolor

import (
	"errors"
	"fmt"
	"slices"

	"videocolors/internal/colortrack"
)

// Mode names a color extraction strategy.
type Mode string

const (
	// ModeMean averages each channel over the whole frame.
	ModeMean Mode = "mean"

	// ModeDominant clusters pixels with k-means and returns the centroid of
	// the most populated cluster.
	ModeDominant Mode = "dominant"
)

// ErrEmptyFrame is returned for frames without pixels or with a buffer that
// does not match the frame size.
var ErrEmptyFrame = errors.New("framecolor: empty or malformed frame")

// ValidModes returns the supported mode names.
func ValidModes() []Mode {
	return []Mode{ModeMean, ModeDominant}
}

// IsValidMode reports whether m names a supported mode.
func IsValidMode(m Mode) bool {
	return slices.Contains(ValidModes(), m)
}

// New returns the extractor registered under mode.
func New(mode Mode) (colortrack.ColorExtractor, error) {
	switch mode {
	case ModeMean, "":
		return Mean{}, nil
	case ModeDominant:
		return NewDominant(), nil
	default:
		return nil, fmt.Errorf("unknown color mode: %s (valid modes: %v)", mode, ValidModes())
	}
}

func checkFrame(f colortrack.Frame) (int, error) {
	n := f.Width * f.Height
	if n <= 0 || len(f.Pix) < n*3 {
		return 0, fmt.Errorf("%w: %dx%d with %d bytes", ErrEmptyFrame, f.Width, f.Height, len(f.Pix))
	}
	return n, nil
}

// Mean averages the R, G and B channels. Averages are truncated to 8 bits.
type Mean struct{}

func (Mean) Extract(f colortrack.Frame) (colortrack.RGB8, error) {
	n, err := checkFrame(f)
	if err != nil {
		return colortrack.RGB8{}, err
	}
	var r, g, b uint64
	for i := 0; i < n*3; i += 3 {
		r += uint64(f.Pix[i])
		g += uint64(f.Pix[i+1])
		b += uint64(f.Pix[i+2])
	}
	total := uint64(n)
	return colortrack.RGB8{R: uint8(r / total), G: uint8(g / total), B: uint8(b / total)}, nil
}
