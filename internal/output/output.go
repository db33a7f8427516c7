// Package output writes a ColorTrack to disk. The format follows the
// destination's extension.
package output

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"videocolors/internal/colortrack"
)

// ErrEmptyTrack is returned when an image is requested for an empty track.
var ErrEmptyTrack = errors.New("output: cannot render an empty track")

// Format is a serialization of a ColorTrack.
type Format string

const (
	FormatJSON  Format = "json"
	FormatImage Format = "image"
	FormatHex   Format = "hex"
)

// FormatFor picks the format from the file extension. Unknown extensions
// get JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return FormatImage
	case ".txt", ".hex":
		return FormatHex
	default:
		return FormatJSON
	}
}

// DefaultPath appends .json to the input path.
func DefaultPath(input string) string {
	return input + ".json"
}

// Document is the JSON layout: {"colors": [[r,g,b], ...]}.
type Document struct {
	Colors colortrack.ColorTrack `json:"colors"`
}

// Options tunes image output. Zero values mean one column per second and a
// height of 100 pixels.
type Options struct {
	Width  int
	Height int
}

// Write serializes track to path.
func Write(track colortrack.ColorTrack, path string, opts Options) error {
	switch FormatFor(path) {
	case FormatImage:
		return WriteImage(track, path, opts)
	case FormatHex:
		return WriteHex(track, path)
	default:
		return WriteJSON(track, path)
	}
}

// WriteJSON writes the track as a JSON document.
func WriteJSON(track colortrack.ColorTrack, path string) error {
	if track == nil {
		track = colortrack.ColorTrack{}
	}
	data, err := json.Marshal(Document{Colors: track})
	if err != nil {
		return fmt.Errorf("encode colors: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a document written by WriteJSON.
func ReadJSON(path string) (colortrack.ColorTrack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.Colors, nil
}

// WriteHex writes one #rrggbb line per color.
func WriteHex(track colortrack.ColorTrack, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, c := range track {
		fmt.Fprintln(w, c.Hex())
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Barcode renders the track as vertical stripes, one per second, scaled to
// the requested size without blending neighbours.
func Barcode(track colortrack.ColorTrack, opts Options) (image.Image, error) {
	if len(track) == 0 {
		return nil, ErrEmptyTrack
	}
	strip := imaging.New(len(track), 1, color.NRGBA{})
	for x, c := range track {
		strip.SetNRGBA(x, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = len(track)
	}
	if height <= 0 {
		height = 100
	}
	return imaging.Resize(strip, width, height, imaging.NearestNeighbor), nil
}

// WriteImage saves the barcode in the format implied by the extension.
func WriteImage(track colortrack.ColorTrack, path string, opts Options) error {
	img, err := Barcode(track, opts)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
