// Package synthetic provides an in-memory video whose frame colors are a pure
// function of the frame index. It is used to exercise pipelines without
// ffmpeg.
package synthetic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"videocolors/internal/colortrack"
)

var (
	// ErrInjected is returned at the configured failure points.
	ErrInjected = errors.New("synthetic: injected failure")

	// ErrConcurrentUse is returned when two goroutines use one decoder at once.
	ErrConcurrentUse = errors.New("synthetic: decoder used concurrently")

	// ErrEndOfStream is returned when the cursor moves past the last frame.
	ErrEndOfStream = errors.New("synthetic: end of stream")
)

// ColorAt is the color of frame i.
func ColorAt(i int) colortrack.RGB8 {
	return colortrack.RGB8{R: uint8(i), G: uint8(i >> 8), B: uint8(i*7 + 3)}
}

// Video describes the synthetic stream and its failure points.
type Video struct {
	FrameRate  float64
	FrameCount int
	Width      int
	Height     int

	// FailReadAt makes Read fail when the cursor is at this index (-1 = never).
	FailReadAt int
	// FailSeekAt makes Seek to this index fail (-1 = never).
	FailSeekAt int
	// FailOpen makes every Open fail.
	FailOpen bool

	opened atomic.Int32
	mu     sync.Mutex
	live   map[*Decoder]struct{}
}

// NewVideo returns a 2x2 video that never fails.
func NewVideo(frameRate float64, frameCount int) *Video {
	return &Video{
		FrameRate:  frameRate,
		FrameCount: frameCount,
		Width:      2,
		Height:     2,
		FailReadAt: -1,
		FailSeekAt: -1,
	}
}

// Opened returns how many decoders have been opened so far.
func (v *Video) Opened() int { return int(v.opened.Load()) }

// Live returns how many decoders are open right now.
func (v *Video) Live() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.live)
}

// Open implements colortrack.Opener. The path is ignored.
func (v *Video) Open(ctx context.Context, _ string) (colortrack.Decoder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.FailOpen {
		return nil, fmt.Errorf("open: %w", ErrInjected)
	}
	v.opened.Add(1)
	d := &Decoder{video: v}
	v.mu.Lock()
	if v.live == nil {
		v.live = make(map[*Decoder]struct{})
	}
	v.live[d] = struct{}{}
	v.mu.Unlock()
	return d, nil
}

// Decoder is a cursor over a Video.
type Decoder struct {
	video  *Video
	cursor int
	busy   atomic.Bool
	closed bool
	Reads  int
	Skips  int
}

func (d *Decoder) enter() error {
	if !d.busy.CompareAndSwap(false, true) {
		return ErrConcurrentUse
	}
	if d.closed {
		d.busy.Store(false)
		return errors.New("synthetic: decoder closed")
	}
	return nil
}

func (d *Decoder) leave() { d.busy.Store(false) }

func (d *Decoder) Info() colortrack.StreamInfo {
	return colortrack.StreamInfo{
		FrameRate:  d.video.FrameRate,
		FrameCount: d.video.FrameCount,
		Width:      d.video.Width,
		Height:     d.video.Height,
	}
}

func (d *Decoder) Seek(index int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	if index == d.video.FailSeekAt {
		return fmt.Errorf("seek %d: %w", index, ErrInjected)
	}
	if index < 0 || index > d.video.FrameCount {
		return fmt.Errorf("seek %d: %w", index, ErrEndOfStream)
	}
	d.cursor = index
	return nil
}

func (d *Decoder) Skip() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	if d.cursor >= d.video.FrameCount {
		return ErrEndOfStream
	}
	d.cursor++
	d.Skips++
	return nil
}

func (d *Decoder) Read() (colortrack.Frame, error) {
	if err := d.enter(); err != nil {
		return colortrack.Frame{}, err
	}
	defer d.leave()
	if d.cursor >= d.video.FrameCount {
		return colortrack.Frame{}, ErrEndOfStream
	}
	if d.cursor == d.video.FailReadAt {
		return colortrack.Frame{}, fmt.Errorf("read %d: %w", d.cursor, ErrInjected)
	}
	c := ColorAt(d.cursor)
	n := d.video.Width * d.video.Height
	pix := make([]byte, 0, n*3)
	for range n {
		pix = append(pix, c.R, c.G, c.B)
	}
	d.cursor++
	d.Reads++
	return colortrack.Frame{Width: d.video.Width, Height: d.video.Height, Pix: pix}, nil
}

func (d *Decoder) Close() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	d.closed = true
	d.video.mu.Lock()
	delete(d.video.live, d)
	d.video.mu.Unlock()
	return nil
}

// FirstPixel is a color extractor returning the color of the top-left pixel.
var FirstPixel = colortrack.ExtractorFunc(func(f colortrack.Frame) (colortrack.RGB8, error) {
	if len(f.Pix) < 3 {
		return colortrack.RGB8{}, errors.New("synthetic: empty frame")
	}
	return colortrack.RGB8{R: f.Pix[0], G: f.Pix[1], B: f.Pix[2]}, nil
})
